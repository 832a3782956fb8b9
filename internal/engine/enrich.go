package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// EnrichDetails augments the first MaxEnrich result-ordered hits that are
// missing salary, employment type, or posted date. The detail cache is
// consulted first; only cache misses cost a live scrape. Scrapes for
// different hits run concurrently, each with its own timeout, and a slow
// or failed one never blocks the rest — the hit just keeps whatever it
// already had.
func EnrichDetails(ctx context.Context, hits []JobResult) []JobResult {
	type task struct {
		idx int
		url string
	}
	// The budget counts hits needing enrichment in result order, however
	// they end up satisfied; a snippet or cache fill consumes it the same
	// as a scrape.
	var tasks []task
	budget := cfg.MaxEnrich
	for i := range hits {
		if budget <= 0 {
			break
		}
		h := &hits[i]
		if h.Salary != "" && h.EmploymentType != "" && h.PostedAt != "" {
			continue
		}
		budget--

		// Snippet first: often enough, and free.
		fillFromText(h, h.Snippet)
		if h.Salary != "" && h.EmploymentType != "" && h.PostedAt != "" {
			continue
		}

		if rec, ok := cfg.Caches.GetDetail(ctx, h.URL); ok {
			applyDetail(h, rec)
			continue
		}
		if h.IsInternal {
			continue // internal postings have nothing to scrape
		}
		tasks = append(tasks, task{idx: i, url: h.URL})
	}

	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			text, err := FetchPageText(ctx, t.url)
			if err != nil {
				slog.Debug("detail scrape failed", slog.String("url", t.url), slog.Any("error", err))
				return
			}
			rec := DetailRecord{
				Salary:         ExtractSalary(text),
				EmploymentType: ExtractEmploymentType(text),
				PostedAt:       ExtractPostedDate(text),
				FetchedAt:      time.Now(),
			}
			if rec.Salary == "" && rec.EmploymentType == "" && rec.PostedAt == "" {
				return // nothing extracted; leave uncached so a retry can happen
			}
			cfg.Caches.PutDetail(ctx, t.url, rec)
			applyDetail(&hits[t.idx], rec)
		}(t)
	}
	wg.Wait()

	for i := range hits {
		TrimNoise(&hits[i])
	}
	return hits
}

// fillFromText populates missing fields from any free text already in hand.
func fillFromText(h *JobResult, text string) {
	if text == "" {
		return
	}
	if h.Salary == "" {
		h.Salary = ExtractSalary(text)
	}
	if h.EmploymentType == "" {
		h.EmploymentType = ExtractEmploymentType(text)
	}
	if h.PostedAt == "" {
		h.PostedAt = ExtractPostedDate(text)
	}
}

func applyDetail(h *JobResult, rec DetailRecord) {
	if h.Salary == "" {
		h.Salary = rec.Salary
	}
	if h.EmploymentType == "" {
		h.EmploymentType = rec.EmploymentType
	}
	if h.PostedAt == "" {
		h.PostedAt = rec.PostedAt
	}
}
