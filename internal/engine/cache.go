package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Sessions are short-lived conversation state; details are a
// cross-session, cross-query memo of scraped posting metadata.
const (
	DefaultSessionTTL = time.Hour
	DefaultDetailTTL  = 6 * time.Hour
)

// maxSessionResults caps how many results one session remembers.
const maxSessionResults = 20

// CacheService holds both process-wide caches behind one mutex. It is
// constructed once at startup and injected through engine.Config; pruning
// of expired entries runs opportunistically on every read and write — no
// background sweep.
//
// An optional Redis tier makes entries survive restarts; it is best-effort
// and invisible to callers.
type CacheService struct {
	mu       sync.Mutex
	sessions map[string]*SessionRecord
	details  map[string]*DetailRecord

	rdb        *redis.Client // nil if Redis unavailable
	sessionTTL time.Duration
	detailTTL  time.Duration
}

// NewCacheService builds the cache service. redisURL may be empty to run
// memory-only; zero TTLs take the defaults.
func NewCacheService(redisURL string, sessionTTL, detailTTL time.Duration) *CacheService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if detailTTL <= 0 {
		detailTTL = DefaultDetailTTL
	}
	c := &CacheService{
		sessions:   make(map[string]*SessionRecord),
		details:    make(map[string]*DetailRecord),
		sessionTTL: sessionTTL,
		detailTTL:  detailTTL,
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("cache: invalid redis URL, persistence disabled", slog.Any("error", err))
			return c
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("cache: redis unreachable, persistence disabled", slog.Any("error", err))
			return c
		}
		c.rdb = rdb
		slog.Info("cache: redis tier connected", slog.String("addr", opts.Addr))
	}
	return c
}

// GetSession returns the cached result set for a session, or false when
// absent or expired.
func (c *CacheService) GetSession(ctx context.Context, sessionID string) ([]JobResult, bool) {
	if sessionID == "" {
		return nil, false
	}
	now := time.Now()

	c.mu.Lock()
	c.pruneLocked(now)
	rec, ok := c.sessions[sessionID]
	c.mu.Unlock()
	if ok {
		metrics.SessionHits.Add(1)
		return rec.Results, true
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, "js:sess:"+sessionID).Bytes()
		if err == nil {
			var rec SessionRecord
			if json.Unmarshal(data, &rec) == nil && now.Sub(rec.UpdatedAt) <= c.sessionTTL {
				c.mu.Lock()
				c.sessions[sessionID] = &rec
				c.mu.Unlock()
				metrics.SessionHits.Add(1)
				return rec.Results, true
			}
		}
	}

	metrics.SessionMisses.Add(1)
	return nil, false
}

// PutSession overwrites the session's result set, keeping at most 20
// entries. Concurrent writers race; last writer wins.
func (c *CacheService) PutSession(ctx context.Context, sessionID string, results []JobResult) {
	if sessionID == "" {
		return
	}
	if len(results) > maxSessionResults {
		results = results[:maxSessionResults]
	}
	now := time.Now()
	rec := &SessionRecord{Results: results, UpdatedAt: now}

	c.mu.Lock()
	c.pruneLocked(now)
	c.sessions[sessionID] = rec
	c.mu.Unlock()

	if c.rdb != nil {
		if data, err := json.Marshal(rec); err == nil {
			if err := c.rdb.Set(ctx, "js:sess:"+sessionID, data, c.sessionTTL).Err(); err != nil {
				slog.Debug("cache: redis session set failed", slog.Any("error", err))
			}
		}
	}
}

// GetDetail returns memoized scraped metadata for a posting URL.
func (c *CacheService) GetDetail(ctx context.Context, postingURL string) (DetailRecord, bool) {
	key := StripQuery(postingURL)
	now := time.Now()

	c.mu.Lock()
	c.pruneLocked(now)
	rec, ok := c.details[key]
	c.mu.Unlock()
	if ok {
		metrics.DetailHits.Add(1)
		return *rec, true
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, "js:detail:"+key).Bytes()
		if err == nil {
			var rec DetailRecord
			if json.Unmarshal(data, &rec) == nil && now.Sub(rec.FetchedAt) <= c.detailTTL {
				c.mu.Lock()
				c.details[key] = &rec
				c.mu.Unlock()
				metrics.DetailHits.Add(1)
				return rec, true
			}
		}
	}

	metrics.DetailMisses.Add(1)
	return DetailRecord{}, false
}

// PutDetail stores scraped metadata for a posting URL. Callers only store
// successful extractions; failures stay uncached so a later request can
// retry.
func (c *CacheService) PutDetail(ctx context.Context, postingURL string, rec DetailRecord) {
	key := StripQuery(postingURL)
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now()
	}

	c.mu.Lock()
	c.pruneLocked(time.Now())
	c.details[key] = &rec
	c.mu.Unlock()

	if c.rdb != nil {
		if data, err := json.Marshal(rec); err == nil {
			if err := c.rdb.Set(ctx, "js:detail:"+key, data, c.detailTTL).Err(); err != nil {
				slog.Debug("cache: redis detail set failed", slog.Any("error", err))
			}
		}
	}
}

// pruneLocked removes TTL-expired entries. Called with c.mu held from
// every get/put; cost is proportional to map size, which opportunistic
// pruning itself keeps bounded.
func (c *CacheService) pruneLocked(now time.Time) {
	for id, rec := range c.sessions {
		if now.Sub(rec.UpdatedAt) > c.sessionTTL {
			delete(c.sessions, id)
		}
	}
	for url, rec := range c.details {
		if now.Sub(rec.FetchedAt) > c.detailTTL {
			delete(c.details, url)
		}
	}
}

// CacheStats returns session and detail hit/miss counters.
func CacheStats() (sessionHits, sessionMisses, detailHits, detailMisses int64) {
	return metrics.SessionHits.Load(), metrics.SessionMisses.Load(),
		metrics.DetailHits.Load(), metrics.DetailMisses.Load()
}
