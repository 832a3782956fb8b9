package engine

import "testing"

func TestApplyRelevanceFilter(t *testing.T) {
	Init(Config{})

	t.Run("keeps the top band, drops the unrelated", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Software Engineer at Acme", Snippet: "software engineer Kuwait backend"},
			{Title: "Sales Executive", Snippet: "retail outlet, commission"},
		}
		got := ApplyRelevanceFilter("software engineer kuwait", hits, []string{"software", "engineer"})
		if len(got) != 1 || got[0].Title != "Software Engineer at Acme" {
			t.Fatalf("got %v", titlesOf(got))
		}
	})

	t.Run("falls back to unfiltered when nothing scores", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Forklift Operator", Snippet: "warehouse"},
			{Title: "Chef de Partie", Snippet: "hotel kitchen"},
		}
		got := ApplyRelevanceFilter("quantum cryptographer", hits, []string{"quantum", "cryptographer"})
		if len(got) != 2 {
			t.Fatalf("zero-score filter must return the unfiltered set, got %d", len(got))
		}
	})

	t.Run("empty input passes through", func(t *testing.T) {
		if got := ApplyRelevanceFilter("anything", nil, nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("role penalty demotes hits missing the role", func(t *testing.T) {
		hits := []JobResult{
			{Title: "Registered Nurse", Snippet: "nurse vacancy Kuwait City hospital"},
			{Title: "Hospital Receptionist", Snippet: "Kuwait City hospital front desk"},
		}
		got := ApplyRelevanceFilter("nurse kuwait city", hits, []string{"nurse"})
		for _, h := range got {
			if h.Title == "Hospital Receptionist" {
				t.Error("receptionist should fall out of the top band")
			}
		}
		if len(got) == 0 {
			t.Fatal("filter must keep the matching hit")
		}
	})
}
