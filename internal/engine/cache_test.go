package engine

import (
	"context"
	"testing"
	"time"
)

func TestSessionCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		c.PutSession(ctx, "sess-1", []JobResult{{Title: "Engineer"}})
		got, ok := c.GetSession(ctx, "sess-1")
		if !ok || len(got) != 1 || got[0].Title != "Engineer" {
			t.Fatalf("got %v ok=%v", got, ok)
		}
	})

	t.Run("empty session id is a miss", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		c.PutSession(ctx, "", []JobResult{{Title: "x"}})
		if _, ok := c.GetSession(ctx, ""); ok {
			t.Error("empty session id must never hit")
		}
	})

	t.Run("expires after TTL", func(t *testing.T) {
		c := NewCacheService("", 30*time.Millisecond, 0)
		c.PutSession(ctx, "sess-2", []JobResult{{Title: "x"}})
		if _, ok := c.GetSession(ctx, "sess-2"); !ok {
			t.Fatal("entry must be retrievable before the TTL")
		}
		time.Sleep(50 * time.Millisecond)
		if _, ok := c.GetSession(ctx, "sess-2"); ok {
			t.Error("entry must expire after the TTL")
		}
	})

	t.Run("caps stored results at 20", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		many := make([]JobResult, 30)
		c.PutSession(ctx, "sess-3", many)
		got, _ := c.GetSession(ctx, "sess-3")
		if len(got) != 20 {
			t.Errorf("stored %d results, want 20", len(got))
		}
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		c.PutSession(ctx, "sess-4", []JobResult{{Title: "old"}})
		c.PutSession(ctx, "sess-4", []JobResult{{Title: "new"}})
		got, _ := c.GetSession(ctx, "sess-4")
		if len(got) != 1 || got[0].Title != "new" {
			t.Errorf("got %v, want the replacement set", got)
		}
	})
}

func TestDetailCache(t *testing.T) {
	ctx := context.Background()

	t.Run("keyed by URL minus query string", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		c.PutDetail(ctx, "https://www.bayt.com/en/job/1/?utm=x", DetailRecord{Salary: "KD 600"})
		got, ok := c.GetDetail(ctx, "https://www.bayt.com/en/job/1/?ref=y")
		if !ok || got.Salary != "KD 600" {
			t.Fatalf("got %+v ok=%v", got, ok)
		}
	})

	t.Run("expires after TTL", func(t *testing.T) {
		c := NewCacheService("", 0, 30*time.Millisecond)
		c.PutDetail(ctx, "https://www.bayt.com/en/job/2/", DetailRecord{Salary: "KD 700"})
		time.Sleep(50 * time.Millisecond)
		if _, ok := c.GetDetail(ctx, "https://www.bayt.com/en/job/2/"); ok {
			t.Error("detail must expire after the TTL")
		}
	})

	t.Run("miss on unknown URL", func(t *testing.T) {
		c := NewCacheService("", 0, 0)
		if _, ok := c.GetDetail(ctx, "https://www.bayt.com/en/job/404/"); ok {
			t.Error("unknown URL must miss")
		}
	})
}
