package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// thirtyPlusRe is the boards' "30+ days ago" sentinel. There is no way to
// know how old such a posting really is, so it is pinned well past the
// staleness horizon.
var thirtyPlusRe = regexp.MustCompile(`(?i)\b30\+\s*days?\s*ago`)

const thirtyPlusAge = 60 * 24 * time.Hour

var relativeRe = regexp.MustCompile(`(?i)\b(\d+)\s*(hour|day|week|month|year)s?\s+ago`)

var relativeArRe = regexp.MustCompile(`منذ\s+(\d+)\s+(ساعة|ساعات|يوم|أيام|أسبوع|أسابيع|شهر|أشهر|سنة|سنوات)`)

var unitMultipliers = map[string]time.Duration{
	"hour":  time.Hour,
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
	"year":  365 * 24 * time.Hour,
}

var arUnits = map[string]string{
	"ساعة": "hour", "ساعات": "hour",
	"يوم": "day", "أيام": "day",
	"أسبوع": "week", "أسابيع": "week",
	"شهر": "month", "أشهر": "month",
	"سنة": "year", "سنوات": "year",
}

// absoluteLayouts are tried in order by the generic date parse.
var absoluteLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
}

// ParsePostedTimestamp resolves a free-text posted-date phrase to a
// timestamp. Tried in order: the "30+ days ago" sentinel, a relative
// "<N> <unit> ago" phrase (either script), then a generic date parse.
func ParsePostedTimestamp(text string, now time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	if thirtyPlusRe.MatchString(text) {
		return now.Add(-thirtyPlusAge), true
	}

	if m := relativeRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.Add(-time.Duration(n) * unitMultipliers[strings.ToLower(m[2])]), true
		}
	}
	if m := relativeArRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.Add(-time.Duration(n) * unitMultipliers[arUnits[m[2]]]), true
		}
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "Posted on "), "Posted ")
	for _, layout := range absoluteLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// postedTimestamp checks postedAt, then snippet, then title; the first
// field yielding a parseable timestamp decides.
func postedTimestamp(h JobResult, now time.Time) (time.Time, bool) {
	for _, text := range []string{h.PostedAt, h.Snippet, h.Title} {
		if ts, ok := ParsePostedTimestamp(text, now); ok {
			return ts, true
		}
	}
	if text := ExtractPostedDate(h.PostedAt + " " + h.Snippet + " " + h.Title); text != "" {
		return ParsePostedTimestamp(text, now)
	}
	return time.Time{}, false
}

// IsLikelyStale reports whether a hit's inferable posting date falls past
// the staleness horizon. A hit with no parseable date is NOT stale:
// absence of a date is not evidence of staleness.
func IsLikelyStale(h JobResult, now time.Time) bool {
	if h.IsInternal {
		return false
	}
	ts, ok := postedTimestamp(h, now)
	if !ok {
		return false
	}
	return now.Sub(ts) > cfg.StaleHorizon
}

// FilterStale drops stale hits — unless doing so would empty a non-empty
// input, in which case the pre-filter set is returned untouched.
func FilterStale(hits []JobResult, now time.Time) []JobResult {
	var fresh []JobResult
	for _, h := range hits {
		if !IsLikelyStale(h, now) {
			fresh = append(fresh, h)
		}
	}
	if len(fresh) == 0 && len(hits) > 0 {
		return hits
	}
	return fresh
}

// ApplyFreshnessPolicy is the streaming route's stricter pass: naukrigulf
// entries must carry a parseable post date within the fresh horizon, and
// internally sourced hits are exempt from every freshness rule.
func ApplyFreshnessPolicy(hits []JobResult, now time.Time) []JobResult {
	var out []JobResult
	for _, h := range hits {
		if h.IsInternal {
			out = append(out, h)
			continue
		}
		if h.Source == "naukrigulf.com" || strings.HasSuffix(h.Source, ".naukrigulf.com") {
			ts, ok := postedTimestamp(h, now)
			if !ok || now.Sub(ts) > cfg.FreshHorizon {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

// Rank orders the final list: internal postings first, then hits with a
// parseable timestamp (newest first), then dateless hits. Ties keep the
// prior dedup-sort order.
func Rank(hits []JobResult, now time.Time) []JobResult {
	type keyed struct {
		hit   JobResult
		ts    time.Time
		dated bool
	}
	keys := make([]keyed, len(hits))
	for i, h := range hits {
		ts, ok := postedTimestamp(h, now)
		keys[i] = keyed{hit: h, ts: ts, dated: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.hit.IsInternal != b.hit.IsInternal {
			return a.hit.IsInternal
		}
		if a.dated != b.dated {
			return a.dated
		}
		if a.dated && !a.ts.Equal(b.ts) {
			return a.ts.After(b.ts)
		}
		return false
	})
	out := make([]JobResult, len(keys))
	for i, k := range keys {
		out[i] = k.hit
	}
	return out
}
