package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wadhifa/jobscout/internal/engine"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave is the secondary web-search backend, tried when the primary
// yields nothing usable.
type Brave struct {
	token    string
	endpoint string
	hc       *http.Client
}

// NewBrave returns a Brave client, or nil when no subscription token is
// configured.
func NewBrave(token string, hc *http.Client) *Brave {
	if token == "" {
		return nil
	}
	return &Brave{token: token, endpoint: braveEndpoint, hc: hc}
}

func (b *Brave) Name() string { return "brave" }

// braveResponse is the subset of the Brave Search wire shape we read.
type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age"`
	PageAge     string `json:"page_age"`
}

// Search issues one query and maps the web results into JobResults.
func (b *Brave) Search(ctx context.Context, query, lang string) ([]engine.JobResult, error) {
	u, err := url.Parse(b.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("country", "kw")
	q.Set("search_lang", lang)
	q.Set("count", "20")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Subscription-Token", b.token)
	req.Header.Set("Accept", "application/json")

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		return b.hc.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave: status %d", resp.StatusCode)
	}

	var data braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("brave: decode: %w", err)
	}

	results := make([]engine.JobResult, 0, len(data.Web.Results))
	for _, r := range data.Web.Results {
		if r.URL == "" {
			continue
		}
		age := r.Age
		if age == "" {
			age = r.PageAge
		}
		results = append(results, mapHit(r.Title, r.URL, r.Description, age))
	}
	return results, nil
}
