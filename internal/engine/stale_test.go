package engine

import (
	"testing"
	"time"
)

func TestParsePostedTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		text string
		want time.Duration
		ok   bool
	}{
		{"relative days", "Posted 3 days ago", 3 * 24 * time.Hour, true},
		{"relative weeks", "2 weeks ago", 14 * 24 * time.Hour, true},
		{"thirty plus sentinel", "30+ days ago", 60 * 24 * time.Hour, true},
		{"arabic relative", "منذ 5 أيام", 5 * 24 * time.Hour, true},
		{"no date", "Competitive salary, great team", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParsePostedTimestamp(tc.text, now)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && now.Sub(ts) != tc.want {
				t.Errorf("age = %v, want %v", now.Sub(ts), tc.want)
			}
		})
	}

	t.Run("absolute date", func(t *testing.T) {
		ts, ok := ParsePostedTimestamp("Posted on March 1, 2026", now)
		if !ok {
			t.Fatal("expected absolute date to parse")
		}
		want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		if !ts.Equal(want) {
			t.Errorf("ts = %v, want %v", ts, want)
		}
	})
}

func TestIsLikelyStale(t *testing.T) {
	Init(Config{})
	now := time.Now()

	t.Run("recent posting is not stale", func(t *testing.T) {
		h := JobResult{Snippet: "Posted 3 days ago"}
		if IsLikelyStale(h, now) {
			t.Error("3-day-old posting must not be stale")
		}
	})

	t.Run("thirty plus sentinel is stale", func(t *testing.T) {
		h := JobResult{Snippet: "30+ days ago"}
		if !IsLikelyStale(h, now) {
			t.Error("30+ sentinel must be stale")
		}
	})

	t.Run("dateless posting is not stale", func(t *testing.T) {
		h := JobResult{Snippet: "Join our team today"}
		if IsLikelyStale(h, now) {
			t.Error("a hit with no parseable date must not be stale")
		}
	})

	t.Run("internal postings exempt", func(t *testing.T) {
		h := JobResult{IsInternal: true, PostedAt: "6 months ago"}
		if IsLikelyStale(h, now) {
			t.Error("internal postings are never stale")
		}
	})
}

func TestFilterStale(t *testing.T) {
	Init(Config{})
	now := time.Now()

	t.Run("drops stale keeps fresh", func(t *testing.T) {
		hits := []JobResult{
			{Title: "fresh", Snippet: "Posted 2 days ago"},
			{Title: "stale", Snippet: "3 months ago"},
		}
		got := FilterStale(hits, now)
		if len(got) != 1 || got[0].Title != "fresh" {
			t.Fatalf("got %+v, want only the fresh hit", got)
		}
	})

	t.Run("never empties a non-empty input", func(t *testing.T) {
		hits := []JobResult{
			{Title: "old a", Snippet: "3 months ago"},
			{Title: "old b", Snippet: "2 months ago"},
		}
		got := FilterStale(hits, now)
		if len(got) != 2 {
			t.Fatalf("all-stale input must pass through, got %d hits", len(got))
		}
	})
}

func TestApplyFreshnessPolicy(t *testing.T) {
	Init(Config{})
	now := time.Now()

	hits := []JobResult{
		{Title: "ng fresh", Source: "naukrigulf.com", Snippet: "Posted 5 days ago"},
		{Title: "ng old", Source: "naukrigulf.com", Snippet: "Posted 20 days ago"},
		{Title: "ng dateless", Source: "naukrigulf.com", Snippet: "Apply now"},
		{Title: "bayt dateless", Source: "bayt.com", Snippet: "Apply now"},
		{Title: "internal", Source: "wadhifa.com", IsInternal: true},
	}
	got := ApplyFreshnessPolicy(hits, now)

	want := map[string]bool{"ng fresh": true, "bayt dateless": true, "internal": true}
	if len(got) != len(want) {
		t.Fatalf("got %d hits, want %d", len(got), len(want))
	}
	for _, h := range got {
		if !want[h.Title] {
			t.Errorf("unexpected hit %q in output", h.Title)
		}
	}
}

func TestRank(t *testing.T) {
	Init(Config{})
	now := time.Now()

	t.Run("dated beats dateless, newest first, internal on top", func(t *testing.T) {
		hits := []JobResult{
			{Title: "dateless", Source: "bayt.com"},
			{Title: "week old", Source: "bayt.com", Snippet: "Posted 7 days ago"},
			{Title: "two days", Source: "gulftalent.com", Snippet: "Posted 2 days ago"},
			{Title: "internal", Source: "wadhifa.com", IsInternal: true},
		}
		got := Rank(hits, now)
		order := []string{"internal", "two days", "week old", "dateless"}
		for i, title := range order {
			if got[i].Title != title {
				t.Fatalf("position %d = %q, want %q (full: %+v)", i, got[i].Title, title, titlesOf(got))
			}
		}
	})

	t.Run("ties keep prior order", func(t *testing.T) {
		hits := []JobResult{
			{Title: "first", Source: "bayt.com"},
			{Title: "second", Source: "gulftalent.com"},
		}
		got := Rank(hits, now)
		if got[0].Title != "first" || got[1].Title != "second" {
			t.Errorf("stable ordering violated: %v", titlesOf(got))
		}
	})
}

func titlesOf(hits []JobResult) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Title
	}
	return out
}
