// Package config loads runtime configuration from the environment.
// Every external surface is optional: a missing credential disables that
// surface instead of failing startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the discovery service.
type Config struct {
	Port string

	SerperAPIKey string
	BraveAPIKey  string

	LLMAPIBase string
	LLMAPIKey  string
	LLMModel   string

	RedisURL    string
	DatabaseURL string

	SessionTTL time.Duration
	DetailTTL  time.Duration
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	c := &Config{
		Port:         getStr("PORT", "8080"),
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),
		BraveAPIKey:  os.Getenv("BRAVE_API_KEY"),
		LLMAPIBase:   os.Getenv("LLM_API_BASE"),
		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
		LLMModel:     getStr("LLM_MODEL", "gpt-4o-mini"),
		RedisURL:     os.Getenv("REDIS_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	var err error
	if c.SessionTTL, err = getDuration("SESSION_TTL", time.Hour); err != nil {
		return nil, err
	}
	if c.DetailTTL, err = getDuration("DETAIL_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	return c, nil
}

func getStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be seconds or a Go duration, got %q", key, s)
	}
	return d, nil
}
