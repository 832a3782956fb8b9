package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// scrapeLimiter keeps detail-page fetches polite toward the job boards.
var scrapeLimiter = rate.NewLimiter(rate.Limit(5), 5)

// maxFetchBytes bounds how much of a page body is read before stripping.
const maxFetchBytes = 2 << 20

var wsRe = regexp.MustCompile(`\s+`)

// FetchPageText downloads a posting page and returns its visible text,
// capped at cfg.MaxPageChars. Extraction tries goquery + markdown
// conversion first and falls back to regex tag stripping.
func FetchPageText(ctx context.Context, rawURL string) (string, error) {
	metrics.ScrapeRequests.Add(1)

	if err := scrapeLimiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.ScrapeErrors.Add(1)
		return "", err
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		metrics.ScrapeErrors.Add(1)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ScrapeErrors.Add(1)
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		metrics.ScrapeErrors.Add(1)
		return "", err
	}

	text := extractText(string(body))
	if len(text) > cfg.MaxPageChars {
		text = text[:cfg.MaxPageChars]
	}
	return text, nil
}

// extractText strips a page down to scannable text.
func extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return regexStrip(html)
	}

	doc.Find("script, style, noscript, iframe, svg, nav, header, footer, aside").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	content := doc.Find("article, main, .job-description, .job-details, #content").First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	if inner, err := content.Html(); err == nil && inner != "" {
		if md, err := htmltomarkdown.ConvertString(inner); err == nil {
			return collapseWS(md)
		}
	}
	return collapseWS(content.Text())
}

func regexStrip(html string) string {
	for _, tag := range []string{"script", "style", "noscript"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}
	return collapseWS(htmlTagRe.ReplaceAllString(html, " "))
}

func collapseWS(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}
