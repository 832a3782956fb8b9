// Package providers holds the thin clients behind engine.Provider: two
// interchangeable web-search backends plus the platform's own postings
// table. Each backend gets its own response DTOs with tolerant parsing —
// unknown or missing fields default instead of erroring — so the pipeline
// never sees a provider's wire shape.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wadhifa/jobscout/internal/engine"
)

const serperEndpoint = "https://google.serper.dev/search"

// Serper is the primary web-search backend (Google results via serper.dev).
type Serper struct {
	apiKey   string
	endpoint string
	hc       *http.Client
}

// NewSerper returns a Serper client, or nil when no API key is configured —
// an absent credential means the provider is skipped, not an error.
func NewSerper(apiKey string, hc *http.Client) *Serper {
	if apiKey == "" {
		return nil
	}
	return &Serper{apiKey: apiKey, endpoint: serperEndpoint, hc: hc}
}

func (s *Serper) Name() string { return "serper" }

// serperResponse is the subset of the serper.dev wire shape we read.
type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
}

// Search issues one query and maps the organic hits into JobResults.
func (s *Serper) Search(ctx context.Context, query, lang string) ([]engine.JobResult, error) {
	payload, err := json.Marshal(map[string]any{
		"q":   query,
		"gl":  "kw",
		"hl":  lang,
		"num": 20,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		return s.hc.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: status %d", resp.StatusCode)
	}

	var data serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("serper: decode: %w", err)
	}

	results := make([]engine.JobResult, 0, len(data.Organic))
	for _, o := range data.Organic {
		if o.Link == "" {
			continue
		}
		results = append(results, mapHit(o.Title, o.Link, o.Snippet, o.Date))
	}
	return results, nil
}

// mapHit normalizes one raw hit, inferring company and location from the
// title/snippet pattern rules.
func mapHit(title, link, snippet, date string) engine.JobResult {
	title = engine.CleanHTML(title)
	snippet = engine.CleanHTML(snippet)
	return engine.JobResult{
		Title:    title,
		URL:      link,
		Source:   engine.HostOf(link),
		Snippet:  snippet,
		Company:  engine.InferCompany(title, snippet),
		Location: engine.InferLocation(title, snippet),
		PostedAt: date,
	}
}
