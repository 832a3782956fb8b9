package engine

import (
	"regexp"
	"strings"
)

// Heuristic metadata extraction. Each concern is an ordered rule table,
// evaluated top to bottom: the first rule that fires wins, and a table
// where nothing fires leaves the field empty.

// --- Company inference ---

type captureRule struct {
	re    *regexp.Regexp
	group int
}

var companyRules = []captureRule{
	// Trailing "– Company" / "- Company" / "| Company" suffix.
	{regexp.MustCompile(`[-–—|]\s*([A-Z][\p{L}&.' ]{2,40})\s*$`), 1},
	// "at Company" infix. Case-insensitivity is scoped to the keywords so
	// the capture stays title-case.
	{regexp.MustCompile(`\b(?i:at)\s+([A-Z][\p{L}&.' ]{2,40}?)(?:\s+(?i:in)\b|\s*[-–—|,.]|$)`), 1},
	// Title-case span after for/with/join.
	{regexp.MustCompile(`\b(?i:for|with|join)\s+([A-Z][\p{L}&.']+(?:\s+[A-Z][\p{L}&.']+){0,3})`), 1},
}

// InferCompany extracts a company name from a hit's title and snippet.
func InferCompany(title, snippet string) string {
	for _, text := range []string{title, snippet} {
		for _, rule := range companyRules {
			if m := rule.re.FindStringSubmatch(text); m != nil {
				name := strings.TrimSpace(m[rule.group])
				name = strings.TrimRight(name, ".,")
				if !looksLikePlace(name) && len(name) >= 3 {
					return name
				}
			}
		}
	}
	return ""
}

// --- Location inference ---

// placeGazetteer is the fixed list of local place names, both scripts.
var placeGazetteer = []string{
	"Kuwait City", "Kuwait", "Hawally", "Salmiya", "Farwaniya",
	"Ahmadi", "Jahra", "Mangaf", "Fahaheel", "Mahboula", "Sabah Al Salem",
	"مدينة الكويت", "الكويت", "حولي", "السالمية", "الفروانية",
	"الأحمدي", "الجهراء", "المنقف", "الفحيحيل",
}

// InferLocation scans title then snippet against the place gazetteer.
func InferLocation(title, snippet string) string {
	for _, text := range []string{title, snippet} {
		for _, place := range placeGazetteer {
			if containsFold(text, place) {
				return place
			}
		}
	}
	return ""
}

func looksLikePlace(s string) bool {
	for _, place := range placeGazetteer {
		if strings.EqualFold(s, place) {
			return true
		}
	}
	return false
}

// --- Salary extraction ---

var salaryRules = []captureRule{
	// Labeled fragment: "Salary: KD 600-800 per month".
	{regexp.MustCompile(`(?i)(?:salary|الراتب)\s*[:：]\s*([^\n.;،]{3,60})`), 1},
	// Currency unit adjacent to a number range, optional per-period suffix.
	{regexp.MustCompile(`(?i)\b((?:KWD|KD|USD|AED|SAR|د\.?\s?ك\.?|\$)\s?\d[\d,.]*(?:\s?[-–—]\s?\d[\d,.]*)?(?:\s?(?:per|/|في)\s?(?:month|year|annum|hour|الشهر|شهر|سنة|ساعة))?)`), 1},
	// Number first: "600 - 800 KWD monthly".
	{regexp.MustCompile(`(?i)\b(\d[\d,.]*(?:\s?[-–—]\s?\d[\d,.]*)?\s?(?:KWD|KD|USD|AED|SAR|دينار)(?:\s?(?:per month|monthly|per year|yearly|شهريا|شهرياً|سنويا|سنوياً))?)`), 1},
}

// ExtractSalary pulls a salary fragment out of free text, or "".
func ExtractSalary(text string) string {
	for _, rule := range salaryRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[rule.group])
		}
	}
	return ""
}

// --- Employment type extraction ---

// employmentTypes is ordered: the first match wins, so the more specific
// entries come before the broad ones.
var employmentTypes = []struct {
	pattern string
	label   string
}{
	{"full-time", "Full-time"},
	{"full time", "Full-time"},
	{"دوام كامل", "Full-time"},
	{"part-time", "Part-time"},
	{"part time", "Part-time"},
	{"دوام جزئي", "Part-time"},
	{"contract", "Contract"},
	{"عقد", "Contract"},
	{"temporary", "Temporary"},
	{"مؤقت", "Temporary"},
	{"internship", "Internship"},
	{"تدريب", "Internship"},
	{"remote", "Remote"},
	{"عن بعد", "Remote"},
	{"hybrid", "Hybrid"},
	{"هجين", "Hybrid"},
	{"on-site", "On-site"},
	{"onsite", "On-site"},
	{"on site", "On-site"},
}

// ExtractEmploymentType returns the first recognised employment type, or "".
func ExtractEmploymentType(text string) string {
	lower := strings.ToLower(text)
	for _, et := range employmentTypes {
		if strings.Contains(lower, et.pattern) {
			return et.label
		}
	}
	return ""
}

// --- Posted date extraction ---

var postedRules = []captureRule{
	// Absolute: "Posted on January 2, 2026" / "Posted 2 January 2026".
	{regexp.MustCompile(`(?i)posted\s+(?:on\s+)?((?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{4})`), 1},
	// Relative: "Posted 3 days ago", "5 hours ago", "30+ days ago".
	{regexp.MustCompile(`(?i)\b(\d+\+?\s*(?:hour|day|week|month|year)s?\s+ago)`), 1},
	// Relative, Arabic: "منذ 3 أيام".
	{regexp.MustCompile(`(منذ\s+\d+\s+(?:ساعة|ساعات|يوم|أيام|يومين|أسبوع|أسابيع|أسبوعين|شهر|أشهر|شهرين|سنة|سنوات))`), 1},
}

// ExtractPostedDate pulls a posted-date phrase out of free text, or "".
func ExtractPostedDate(text string) string {
	for _, rule := range postedRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[rule.group])
		}
	}
	return ""
}

// --- Noise trimming ---

var noiseTokens = []string{
	"not specified", "not disclosed", "unspecified", "n/a", "na", "-", "—",
	"غير محدد", "غير متوفر", "غير معلن",
}

// TrimNoise clears placeholder values from the three enriched fields.
// Applied to every hit, enriched or not.
func TrimNoise(h *JobResult) {
	h.Salary = dropNoise(h.Salary)
	h.EmploymentType = dropNoise(h.EmploymentType)
	h.PostedAt = dropNoise(h.PostedAt)
}

func dropNoise(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, noise := range noiseTokens {
		if lower == noise {
			return ""
		}
	}
	return trimmed
}
