package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Target region used when the phrase names no location of its own.
const (
	defaultRegionEN = "Kuwait"
	defaultRegionAR = "الكويت"
)

// roleSynonyms is a small curated table: bare role → broader variants
// worth their own query. Kept deliberately short; the LLM handles the
// long tail.
var roleSynonyms = map[string][]string{
	"marketing":  {"marketing specialist", "marketing manager"},
	"accountant": {"senior accountant", "junior accountant"},
	"developer":  {"software developer", "software engineer"},
	"engineer":   {"software engineer"},
	"designer":   {"graphic designer", "ui ux designer"},
	"sales":      {"sales executive", "sales representative"},
	"hr":         {"hr officer", "hr specialist"},
	"nurse":      {"registered nurse", "staff nurse"},
	"teacher":    {"school teacher", "english teacher"},
	"driver":     {"delivery driver", "heavy driver"},
	"barista":    {"barista", "coffee shop staff"},
}

// ExpandQuery turns one user phrase into a bounded set of location-qualified
// search queries plus the role tokens used later for relevance scoring.
// The LLM cleanup step is best-effort: any failure falls back to the
// deterministic path and is never fatal.
func ExpandQuery(ctx context.Context, phrase, lang string) (queries, roleTokens []string) {
	phrase = strings.TrimSpace(phrase)
	lang = NormLang(lang)

	candidates := []string{phrase}
	if cfg.LLM != nil {
		cleaned, err := cfg.LLM.CleanQueries(ctx, phrase, lang)
		if err != nil {
			slog.Debug("llm query cleanup failed, using deterministic expansion", slog.Any("error", err))
		} else {
			candidates = append(candidates, cleaned...)
		}
	}

	location := detectLocation(phrase, lang)

	seen := make(map[string]bool)
	add := func(q string) {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" || seen[strings.ToLower(q)] || len(queries) >= cfg.MaxQueries {
			return
		}
		seen[strings.ToLower(q)] = true
		queries = append(queries, q)
	}

	for i, candidate := range candidates {
		role := stripJobStopwords(candidate)
		if role == "" {
			continue
		}
		if i == 0 {
			roleTokens = Tokens(role)
		}
		for _, variant := range append([]string{role}, roleSynonyms[strings.ToLower(role)]...) {
			for _, q := range queryVariants(variant, location, lang) {
				add(q)
			}
		}
	}

	if len(queries) == 0 {
		add(fmt.Sprintf("%s %s", phrase, location))
	}
	return queries, roleTokens
}

// queryVariants combines a bare role phrase with the location word.
func queryVariants(role, location, lang string) []string {
	if lang == "ar" {
		return []string{
			fmt.Sprintf("وظائف %s في %s", role, location),
			fmt.Sprintf("%s وظائف شاغرة %s", role, location),
		}
	}
	return []string{
		fmt.Sprintf("%q jobs in %s", role, location),
		fmt.Sprintf("%s vacancies %s", role, location),
	}
}

// detectLocation returns the location already named in the phrase, or the
// fixed target region.
func detectLocation(phrase, lang string) string {
	for _, place := range placeGazetteer {
		if containsFold(phrase, place) {
			return place
		}
	}
	if lang == "ar" {
		return defaultRegionAR
	}
	return defaultRegionEN
}

// stripJobStopwords removes generic job-posting filler from a candidate
// query, recovering the bare role phrase.
func stripJobStopwords(s string) string {
	connectives := map[string]bool{"in": true, "at": true, "في": true}
	var kept []string
	for _, w := range strings.Fields(s) {
		clean := strings.ToLower(strings.Trim(w, `"'.,!?؟،`))
		if genericStopwords[clean] || connectives[clean] || looksLikePlace(clean) {
			continue
		}
		kept = append(kept, strings.Trim(w, `"'.,!?؟،`))
	}
	return strings.Join(kept, " ")
}
