package engine

import (
	"sort"
	"time"
)

// FilterAndDedupe drops disallowed and closed hits, drops listing pages
// unless the caller widens the net, deduplicates by URL-minus-query-string
// (first occurrence wins), and sorts ascending by priority score.
func FilterAndDedupe(hits []JobResult, allowListings bool, now time.Time) []JobResult {
	seen := make(map[string]bool)
	var out []JobResult
	for _, h := range hits {
		if h.IsInternal {
			// Internal postings bypass the host allow-list; they still
			// participate in URL dedup.
			key := StripQuery(h.URL)
			if !seen[key] {
				seen[key] = true
				out = append(out, h)
			}
			continue
		}
		if !ClassifyURL(h.URL, allowListings) {
			continue
		}
		if IsClosed(h) {
			continue
		}
		if IsListingHit(h) {
			if !allowListings {
				continue
			}
			h.isListing = true
		}
		key := StripQuery(h.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return PriorityScore(out[i], now) < PriorityScore(out[j], now)
	})
	return out
}

// PriorityScore ranks a hit for ordering: lower is better. Composed of the
// host trust table, a penalty for a missing company, a penalty for listing
// pages, and a recency bonus for postings inferred recent.
func PriorityScore(h JobResult, now time.Time) int {
	score := hostPriority(h.Source)
	if h.Company == "" {
		score++
	}
	if h.isListing {
		score += 2
	}
	score += recencyBonus(h, now)
	return score
}

func recencyBonus(h JobResult, now time.Time) int {
	ts, ok := postedTimestamp(h, now)
	if !ok {
		return 0
	}
	age := now.Sub(ts)
	switch {
	case age <= 7*24*time.Hour:
		return cfg.Weights.RecencyFresh
	case age <= 14*24*time.Hour:
		return cfg.Weights.RecencyRecent
	default:
		return 0
	}
}
