package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ProviderRequests   atomic.Int64
	ProviderErrors     atomic.Int64
	InternalRequests   atomic.Int64
	ScrapeRequests     atomic.Int64
	ScrapeErrors       atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	SessionHits        atomic.Int64
	SessionMisses      atomic.Int64
	DetailHits         atomic.Int64
	DetailMisses       atomic.Int64
	FollowUpAnswers    atomic.Int64
	SearchesCompleted  atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"provider_requests":  metrics.ProviderRequests.Load(),
		"provider_errors":    metrics.ProviderErrors.Load(),
		"internal_requests":  metrics.InternalRequests.Load(),
		"scrape_requests":    metrics.ScrapeRequests.Load(),
		"scrape_errors":      metrics.ScrapeErrors.Load(),
		"llm_calls":          metrics.LLMCalls.Load(),
		"llm_errors":         metrics.LLMErrors.Load(),
		"session_hits":       metrics.SessionHits.Load(),
		"session_misses":     metrics.SessionMisses.Load(),
		"detail_hits":        metrics.DetailHits.Load(),
		"detail_misses":      metrics.DetailMisses.Load(),
		"followup_answers":   metrics.FollowUpAnswers.Load(),
		"searches_completed": metrics.SearchesCompleted.Load(),
	}
}

// FormatMetrics returns counters as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"provider_requests", "provider_errors", "internal_requests",
		"scrape_requests", "scrape_errors",
		"llm_calls", "llm_errors",
		"session_hits", "session_misses", "detail_hits", "detail_misses",
		"followup_answers", "searches_completed",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
