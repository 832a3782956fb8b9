package engine

import (
	"strings"
	"testing"
)

func TestAnswerFollowUp(t *testing.T) {
	cached := []JobResult{
		{Title: "Software Engineer", Company: "Acme Logistics", Salary: "KD 800 per month", Location: "Kuwait City"},
		{Title: "Backend Developer", Company: "Gulf Bank", EmploymentType: "Full-time"},
	}

	t.Run("salary question over the whole set", func(t *testing.T) {
		answer, ok := AnswerFollowUp("what's the salary?", "en", cached)
		if !ok {
			t.Fatal("expected a follow-up answer")
		}
		if !strings.Contains(answer, "KD 800 per month") {
			t.Errorf("answer missing the cached salary: %q", answer)
		}
		if !strings.Contains(answer, "Gulf Bank: not listed in the posting.") {
			t.Errorf("missing-value line absent: %q", answer)
		}
	})

	t.Run("company name narrows the answer", func(t *testing.T) {
		answer, ok := AnswerFollowUp("what's the salary at Acme Logistics?", "en", cached)
		if !ok {
			t.Fatal("expected a follow-up answer")
		}
		if strings.Contains(answer, "Gulf Bank") {
			t.Errorf("answer should be narrowed to the named company: %q", answer)
		}
		if !strings.Contains(answer, "KD 800 per month") {
			t.Errorf("answer missing the salary: %q", answer)
		}
	})

	t.Run("fresh search phrases fall through", func(t *testing.T) {
		searches := []string{
			"barista jobs in Hawally",
			"part time accountant jobs",
			"full-time barista vacancies in Hawally",
			"jobs posted this week",
			"accountant jobs location Salmiya",
			"وظائف محاسب في الكويت",
		}
		for _, q := range searches {
			if _, ok := AnswerFollowUp(q, "en", cached); ok {
				t.Errorf("%q is a new search, not a follow-up", q)
			}
		}
	})

	t.Run("questions without a question mark still match", func(t *testing.T) {
		answer, ok := AnswerFollowUp("how much do they pay", "en", cached)
		if !ok {
			t.Fatal("expected a follow-up answer")
		}
		if !strings.Contains(answer, "KD 800 per month") {
			t.Errorf("answer missing the cached salary: %q", answer)
		}
	})

	t.Run("field keyword without question context falls through", func(t *testing.T) {
		if _, ok := AnswerFollowUp("remote full-time positions in Kuwait City", "en", cached); ok {
			t.Error("a statement naming an employment type must re-run the pipeline")
		}
	})

	t.Run("no cached results falls through", func(t *testing.T) {
		if _, ok := AnswerFollowUp("what's the salary?", "en", nil); ok {
			t.Error("no cache, no follow-up")
		}
	})

	t.Run("arabic missing-value line", func(t *testing.T) {
		answer, ok := AnswerFollowUp("كم الراتب؟", "ar", []JobResult{{Title: "محاسب", Company: "شركة الخليج"}})
		if !ok {
			t.Fatal("expected a follow-up answer")
		}
		if !strings.Contains(answer, "غير مذكور في الإعلان") {
			t.Errorf("expected the Arabic missing-value phrasing: %q", answer)
		}
	})
}
