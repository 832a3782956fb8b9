// jobscout — job-listing discovery and ranking service for the Wadhifa
// recruiting platform.
//
// Takes a free-text job query, expands it, fans it out across web-search
// providers and the platform's own postings table, filters and enriches
// the hits, and serves the ranked list over a blocking JSON endpoint or
// a streaming SSE endpoint.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wadhifa/jobscout/internal/config"
	"github.com/wadhifa/jobscout/internal/engine"
	"github.com/wadhifa/jobscout/internal/engine/providers"
	"github.com/wadhifa/jobscout/internal/httpserver"
)

func main() {
	_ = godotenv.Load() // .env is optional outside local dev

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	initEngine(cfg)

	slog.Info("starting jobscout", slog.String("port", cfg.Port))
	if err := httpserver.New().Run(cfg.Port); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initEngine(cfg *config.Config) {
	hc := &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	ec := engine.Config{
		Caches:     engine.NewCacheService(cfg.RedisURL, cfg.SessionTTL, cfg.DetailTTL),
		HTTPClient: hc,
	}

	if p := providers.NewSerper(cfg.SerperAPIKey, hc); p != nil {
		ec.Providers = append(ec.Providers, p)
		slog.Info("provider enabled", slog.String("provider", p.Name()))
	}
	if p := providers.NewBrave(cfg.BraveAPIKey, hc); p != nil {
		ec.Providers = append(ec.Providers, p)
		slog.Info("provider enabled", slog.String("provider", p.Name()))
	}
	if len(ec.Providers) == 0 {
		slog.Warn("no search providers configured; external discovery disabled")
	}

	if cfg.LLMAPIKey != "" {
		ec.LLM = engine.NewLLMClient(cfg.LLMAPIBase, cfg.LLMAPIKey, cfg.LLMModel)
		slog.Info("llm client ready", slog.String("model", cfg.LLMModel))
	} else {
		slog.Warn("LLM_API_KEY not set; query cleanup and summaries disabled")
	}

	if cfg.DatabaseURL != "" {
		store, err := providers.ConnectInternalStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Warn("internal postings store init failed", slog.Any("error", err))
		} else {
			ec.Internal = store
			slog.Info("internal postings store connected")
		}
	}

	engine.Init(ec)
}
