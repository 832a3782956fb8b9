package engine

import (
	"testing"
	"time"
)

func TestFilterAndDedupe(t *testing.T) {
	Init(Config{})
	now := time.Now()

	t.Run("dedup by URL minus query string", func(t *testing.T) {
		hits := []JobResult{
			{Title: "a", URL: "https://www.bayt.com/en/job/100001/", Source: "bayt.com"},
			{Title: "b", URL: "https://www.bayt.com/en/job/100001/?utm_source=x", Source: "bayt.com"},
			{Title: "c", URL: "https://www.bayt.com/en/job/100002/", Source: "bayt.com"},
		}
		got := FilterAndDedupe(hits, false, now)
		if len(got) != 2 {
			t.Fatalf("expected 2 results, got %d", len(got))
		}
		seen := make(map[string]bool)
		for _, h := range got {
			key := StripQuery(h.URL)
			if seen[key] {
				t.Errorf("duplicate key %s in output", key)
			}
			seen[key] = true
		}
	})

	t.Run("closed postings dropped regardless of host", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Engineer", Snippet: "Job Closed", URL: "https://www.bayt.com/en/job/100003/", Source: "bayt.com"},
		}
		if got := FilterAndDedupe(hits, true, now); len(got) != 0 {
			t.Errorf("expected closed posting to be dropped, got %d", len(got))
		}
	})

	t.Run("disallowed hosts dropped", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Engineer", URL: "https://www.linkedin.com/jobs/view/1", Source: "linkedin.com"},
			{Title: "Engineer", URL: "https://jobs.example.com/1", Source: "jobs.example.com"},
		}
		if got := FilterAndDedupe(hits, false, now); len(got) != 0 {
			t.Errorf("expected all dropped, got %d", len(got))
		}
	})

	t.Run("internal postings bypass the allow-list", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Engineer", URL: "https://wadhifa.com/jobs/abc", Source: "wadhifa.com", IsInternal: true},
		}
		if got := FilterAndDedupe(hits, false, now); len(got) != 1 {
			t.Errorf("expected internal posting kept, got %d", len(got))
		}
	})

	t.Run("ordered ascending by priority score", func(t *testing.T) {
		hits := []JobResult{
			{Title: "no company", URL: "https://www.gulftalent.com/kuwait/jobs/engineer-40001", Source: "gulftalent.com"},
			{Title: "fresh on bayt", URL: "https://www.bayt.com/en/job/100004/", Source: "bayt.com", Company: "Acme", Snippet: "Posted 2 days ago"},
		}
		got := FilterAndDedupe(hits, false, now)
		if len(got) != 2 {
			t.Fatalf("expected 2 results, got %d", len(got))
		}
		if got[0].Title != "fresh on bayt" {
			t.Errorf("expected fresh bayt hit first, got %q", got[0].Title)
		}
	})
}

func TestPriorityScore(t *testing.T) {
	Init(Config{})
	now := time.Now()

	t.Run("recency bonus within 7 days", func(t *testing.T) {
		h := JobResult{Source: "bayt.com", Company: "Acme", Snippet: "Posted 3 days ago"}
		if got := PriorityScore(h, now); got != -2 {
			t.Errorf("score = %d, want -2", got)
		}
	})

	t.Run("recency bonus within 14 days", func(t *testing.T) {
		h := JobResult{Source: "bayt.com", Company: "Acme", Snippet: "Posted 10 days ago"}
		if got := PriorityScore(h, now); got != -1 {
			t.Errorf("score = %d, want -1", got)
		}
	})

	t.Run("missing company costs a point", func(t *testing.T) {
		with := PriorityScore(JobResult{Source: "bayt.com", Company: "Acme"}, now)
		without := PriorityScore(JobResult{Source: "bayt.com"}, now)
		if without != with+1 {
			t.Errorf("missing company: got %d, want %d", without, with+1)
		}
	})
}
