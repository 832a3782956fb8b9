package engine

import (
	"context"
	"strings"
	"testing"
)

func TestExpandQuery(t *testing.T) {
	Init(Config{})
	ctx := context.Background()

	t.Run("role phrase gets location-qualified variants", func(t *testing.T) {
		queries, roleTokens := ExpandQuery(ctx, "software engineer jobs in Kuwait", "en")
		if len(queries) == 0 {
			t.Fatal("expected at least one query")
		}
		var quoted, located bool
		for _, q := range queries {
			if strings.Contains(q, `"software engineer" jobs in Kuwait`) {
				quoted = true
			}
			if strings.Contains(q, "Kuwait") {
				located = true
			}
		}
		if !quoted {
			t.Errorf("expected a quoted-role variant, got %v", queries)
		}
		if !located {
			t.Errorf("every expansion names the location, got %v", queries)
		}
		if len(roleTokens) != 2 || roleTokens[0] != "software" || roleTokens[1] != "engineer" {
			t.Errorf("roleTokens = %v, want [software engineer]", roleTokens)
		}
	})

	t.Run("explicit location wins over the default region", func(t *testing.T) {
		queries, _ := ExpandQuery(ctx, "nurse in Salmiya", "en")
		for _, q := range queries {
			if !strings.Contains(q, "Salmiya") {
				t.Errorf("query %q should carry the named location", q)
			}
		}
	})

	t.Run("synonyms expand a bare role", func(t *testing.T) {
		queries, _ := ExpandQuery(ctx, "developer", "en")
		joined := strings.ToLower(strings.Join(queries, " | "))
		if !strings.Contains(joined, "software developer") {
			t.Errorf("expected a synonym variant, got %v", queries)
		}
	})

	t.Run("arabic phrasing", func(t *testing.T) {
		queries, _ := ExpandQuery(ctx, "مطلوب محاسب", "ar")
		if len(queries) == 0 {
			t.Fatal("expected queries")
		}
		for _, q := range queries {
			if !strings.Contains(q, "الكويت") {
				t.Errorf("query %q should carry the default region", q)
			}
		}
	})

	t.Run("respects the query cap", func(t *testing.T) {
		Init(Config{MaxQueries: 2})
		defer Init(Config{})
		queries, _ := ExpandQuery(ctx, "developer", "en")
		if len(queries) > 2 {
			t.Errorf("got %d queries, cap is 2", len(queries))
		}
	})

	t.Run("pure filler falls back to the raw phrase", func(t *testing.T) {
		queries, _ := ExpandQuery(ctx, "jobs hiring urgently", "en")
		if len(queries) == 0 {
			t.Fatal("fallback query expected")
		}
	})
}
