package engine

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// NormLang normalises a language tag: anything but "ar" → "en".
func NormLang(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), "ar") {
		return "ar"
	}
	return "en"
}

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "WadhifaJobScout/1.0 (+https://wadhifa.com/bot)"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// StripQuery drops the query string and fragment from a URL.
// This is the dedup key for JobResults.
func StripQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// HostOf returns the lowercased hostname of a URL, without a www. prefix.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// genericStopwords are job-posting filler words stripped before token
// matching and role extraction. Covers both supported languages.
var genericStopwords = map[string]bool{
	"job": true, "jobs": true, "hiring": true, "vacancy": true,
	"vacancies": true, "career": true, "careers": true, "wanted": true,
	"remote": true, "opening": true, "openings": true, "position": true,
	"positions": true, "opportunity": true, "opportunities": true,
	"urgent": true, "urgently": true, "required": true, "needed": true,
	"the": true, "and": true, "for": true, "with": true, "near": true,
	"وظيفة": true, "وظائف": true, "توظيف": true, "مطلوب": true,
	"شاغر": true, "شواغر": true, "فرص": true, "عمل": true,
}

// Tokens splits s into lowercase content tokens: length ≥ 3 runes,
// generic stopwords removed.
func Tokens(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range splitWords(s) {
		if len([]rune(w)) < 3 || genericStopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// splitWords lowercases and splits on anything that is not a letter or digit.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsFold reports whether substr occurs in s, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
