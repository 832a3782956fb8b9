package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// minStrictResults is the point below which the net is widened to accept
// listing pages as a last resort.
const minStrictResults = 3

// RunSearch executes the blocking route: full pipeline, then one
// summarization call. Component failures degrade (empty contribution,
// missing field, no answer) — only a truly unexpected error propagates.
func RunSearch(ctx context.Context, req SearchRequest) (out SearchOutput, err error) {
	err = TrackOperation(ctx, "search:"+req.Query, func(ctx context.Context) error {
		out = runSearch(ctx, req)
		return nil
	})
	return out, err
}

func runSearch(ctx context.Context, req SearchRequest) SearchOutput {
	lang := NormLang(req.Lang)

	if answer, results, ok := tryFollowUp(ctx, req, lang); ok {
		return SearchOutput{Results: results, Answer: answer, HasAnswer: true, FromCache: true}
	}

	results := collectResults(ctx, req, lang)
	results = FilterStale(results, time.Now())
	results = Rank(results, time.Now())
	results = capResults(results)

	cfg.Caches.PutSession(ctx, req.SessionID, results)
	metrics.SearchesCompleted.Add(1)

	out := SearchOutput{Results: results}
	if len(results) == 0 {
		out.Answer = NoResultsMessage(lang)
		out.HasAnswer = true
		return out
	}
	if cfg.LLM != nil {
		answer, err := cfg.LLM.Summarize(ctx, req.Query, lang, results)
		if err != nil {
			slog.Warn("summarization failed", slog.Any("error", err))
		} else {
			out.Answer = answer
			out.HasAnswer = true
		}
	}
	return out
}

// RunSearchStream executes the streaming route. The results frame is
// always fully computed before any token frame; the terminal frame is
// done, or error for an unexpected failure before results were emitted.
func RunSearchStream(ctx context.Context, req SearchRequest, emit func(Frame)) {
	lang := NormLang(req.Lang)

	if answer, results, ok := tryFollowUp(ctx, req, lang); ok {
		emitResults(emit, results)
		emit(Frame{Type: FrameToken, Data: answer})
		emit(Frame{Type: FrameDone})
		return
	}

	results := collectResults(ctx, req, lang)
	results = ApplyFreshnessPolicy(results, time.Now())
	results = FilterStale(results, time.Now())
	results = Rank(results, time.Now())
	results = capResults(results)

	cfg.Caches.PutSession(ctx, req.SessionID, results)
	metrics.SearchesCompleted.Add(1)

	emitResults(emit, results)

	switch {
	case len(results) == 0:
		emit(Frame{Type: FrameToken, Data: NoResultsMessage(lang)})
	case cfg.LLM != nil:
		err := cfg.LLM.SummarizeStream(ctx, req.Query, lang, results, func(token string) {
			emit(Frame{Type: FrameToken, Data: token})
		})
		if err != nil {
			// Results already went out; the stream just ends summary-less.
			slog.Warn("streaming summarization failed", slog.Any("error", err))
		}
	}
	emit(Frame{Type: FrameDone})
}

// tryFollowUp short-circuits the pipeline when the session cache holds
// results and the query is a detail follow-up about them.
func tryFollowUp(ctx context.Context, req SearchRequest, lang string) (string, []JobResult, bool) {
	if req.SessionID == "" {
		return "", nil, false
	}
	cached, ok := cfg.Caches.GetSession(ctx, req.SessionID)
	if !ok {
		return "", nil, false
	}
	answer, ok := AnswerFollowUp(req.Query, lang, cached)
	if !ok {
		return "", nil, false
	}
	return answer, cached, true
}

// collectResults runs expansion, provider fan-out, classification, dedup,
// relevance filtering, and enrichment — the part both routes share.
func collectResults(ctx context.Context, req SearchRequest, lang string) []JobResult {
	queries, roleTokens := ExpandQuery(ctx, req.Query, lang)

	// The internal postings table is cheap; query it alongside the
	// external fan-out.
	internalCh := make(chan []JobResult, 1)
	go func() {
		internalCh <- searchInternal(ctx, req.Query)
	}()

	now := time.Now()
	raw, results := searchProviders(ctx, queries, lang, now)

	// Scarce strict results: widen the net to listing pages rather than
	// answer with nothing.
	if len(results) < minStrictResults {
		results = FilterAndDedupe(raw, true, now)
	}

	results = ApplyRelevanceFilter(req.Query, results, roleTokens)
	results = EnrichDetails(ctx, results)

	internal := <-internalCh
	if len(internal) > 0 {
		results = mergeUnique(internal, results)
	}
	return results
}

// searchProviders fans each expanded query out to one provider at a time,
// short-circuiting as soon as a provider yields a usable (post-filter)
// set. Provider failures are soft: logged and treated as zero results.
func searchProviders(ctx context.Context, queries []string, lang string, now time.Time) (raw, usable []JobResult) {
	for _, p := range cfg.Providers {
		hits := searchOneProvider(ctx, p, queries, lang)
		raw = append(raw, hits...)
		usable = FilterAndDedupe(raw, false, now)
		if len(usable) > 0 {
			break
		}
	}
	return raw, usable
}

// searchOneProvider issues every expanded query against one backend in
// parallel and merges the hits.
func searchOneProvider(ctx context.Context, p Provider, queries []string, lang string) []JobResult {
	var mu sync.Mutex
	var merged []JobResult
	var wg sync.WaitGroup
	for _, q := range queries {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, cfg.SearchTimeout)
			defer cancel()

			metrics.ProviderRequests.Add(1)
			hits, err := p.Search(qctx, q, lang)
			if err != nil {
				metrics.ProviderErrors.Add(1)
				slog.Warn("provider search failed", slog.String("provider", p.Name()), slog.String("query", q), slog.Any("error", err))
				return
			}
			mu.Lock()
			merged = append(merged, hits...)
			mu.Unlock()
		}(q)
	}
	wg.Wait()
	return merged
}

func searchInternal(ctx context.Context, query string) []JobResult {
	if cfg.Internal == nil {
		return nil
	}
	metrics.InternalRequests.Add(1)
	hits, err := cfg.Internal.Search(ctx, query)
	if err != nil {
		slog.Warn("internal postings query failed", slog.Any("error", err))
		return nil
	}
	return hits
}

// mergeUnique prepends internal hits, preserving the URL dedup invariant.
func mergeUnique(internal, external []JobResult) []JobResult {
	seen := make(map[string]bool)
	out := make([]JobResult, 0, len(internal)+len(external))
	for _, h := range append(internal, external...) {
		key := StripQuery(h.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

func capResults(results []JobResult) []JobResult {
	if len(results) > cfg.MaxResults {
		return results[:cfg.MaxResults]
	}
	return results
}

func emitResults(emit func(Frame), results []JobResult) {
	if results == nil {
		results = []JobResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		emit(Frame{Type: FrameError, Data: "internal_error"})
		return
	}
	emit(Frame{Type: FrameResults, Data: string(data)})
}
