package engine

import (
	"context"
	"net/http"
	"time"
)

// Provider is one external web-search backend. Implementations live in
// internal/engine/providers and map raw API responses into JobResults.
// A provider without credentials should be left out of Config.Providers
// rather than registered as a stub.
type Provider interface {
	Name() string
	Search(ctx context.Context, query, lang string) ([]JobResult, error)
}

// InternalSource is the platform's own job-postings table, queried read-only.
type InternalSource interface {
	Search(ctx context.Context, query string) ([]JobResult, error)
}

// Weights holds the hand-tuned scoring constants. They are configuration,
// not literals, so deployments can re-tune them without a rebuild.
type Weights struct {
	RecencyFresh   int // priority bonus for postings inferred ≤7 days old
	RecencyRecent  int // priority bonus for postings inferred ≤14 days old
	PenaltyNoRole  int // relevance penalty when no role token matches
	PenaltyFewRole int // relevance penalty when fewer than min(2,|tokens|) match
}

// DefaultWeights returns the tuned production values.
func DefaultWeights() Weights {
	return Weights{RecencyFresh: -2, RecencyRecent: -1, PenaltyNoRole: 2, PenaltyFewRole: 1}
}

// Config holds all engine configuration, injected from main.
type Config struct {
	Providers []Provider     // tried in order, first usable set wins
	Internal  InternalSource // nil = internal postings disabled
	LLM       *LLMClient     // nil = deterministic expansion, no summaries
	Caches    *CacheService  // required

	Weights       Weights
	MaxResults    int           // session cache / response cap (default 20)
	MaxEnrich     int           // detail scrapes per request (default 5)
	MaxQueries    int           // expanded query cap (default 7)
	SearchTimeout time.Duration // per provider call (default 10s)
	FetchTimeout  time.Duration // per detail-page scrape (default 10s)
	MaxPageChars  int           // stripped page text cap (default 60000)
	StaleHorizon  time.Duration // postings older than this are stale (default 30d)
	FreshHorizon  time.Duration // streaming-only horizon for naukrigulf (default 14d)

	HTTPClient *http.Client
	UserAgent  string
}

var cfg Config

// Init initializes the engine with the given configuration,
// filling unset fields with defaults.
func Init(c Config) {
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	if c.MaxResults == 0 {
		c.MaxResults = 20
	}
	if c.MaxEnrich == 0 {
		c.MaxEnrich = 5
	}
	if c.MaxQueries == 0 {
		c.MaxQueries = 7
	}
	if c.SearchTimeout == 0 {
		c.SearchTimeout = 10 * time.Second
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.MaxPageChars == 0 {
		c.MaxPageChars = 60000
	}
	if c.StaleHorizon == 0 {
		c.StaleHorizon = 30 * 24 * time.Hour
	}
	if c.FreshHorizon == 0 {
		c.FreshHorizon = 14 * 24 * time.Hour
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.UserAgent == "" {
		c.UserAgent = UserAgentBot
	}
	if c.Caches == nil {
		c.Caches = NewCacheService("", 0, 0)
	}
	cfg = c
}
