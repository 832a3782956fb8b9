package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Detail follow-up handling: when a session already holds results and the
// next query just asks about a field of them ("what's the salary?"), the
// answer is synthesized from the cache and the whole pipeline is skipped.

type followUpField int

const (
	fieldNone followUpField = iota
	fieldSalary
	fieldEmploymentType
	fieldPostedAt
	fieldLocation
)

var followUpPatterns = []struct {
	field followUpField
	re    *regexp.Regexp
}{
	{fieldSalary, regexp.MustCompile(`(?i)salary|how much|pay\b|compensation|راتب|الراتب|كم يدفع`)},
	{fieldEmploymentType, regexp.MustCompile(`(?i)employment type|job type|full[ -]?time|part[ -]?time|نوع الدوام|الدوام|نوع الوظيفة`)},
	{fieldPostedAt, regexp.MustCompile(`(?i)when .*(posted|published)|posted|how old|تاريخ النشر|متى نشرت|متى تم`)},
	{fieldLocation, regexp.MustCompile(`(?i)\bwhere\b|location|located|أين|الموقع|مكان`)},
}

// questionRe gates follow-up detection: the query must read like a
// question — an interrogative lead-in in either script, or a trailing
// question mark.
var questionRe = regexp.MustCompile(`(?i)^\s*(?:what|how|when|where|which|who|is|are|does|do)\b|[?؟]\s*$|^\s*(?:كم|متى|أين|هل|ما)\b`)

// searchTermRe marks a new search regardless of phrasing: a query naming
// jobs or vacancies wants the pipeline, not the cached set ("part time
// accountant jobs" mentions an employment type but is not asking about it).
var searchTermRe = regexp.MustCompile(`(?i)\bjobs?\b|vacanc|hiring|career|وظيفة|وظائف|شاغرة|مطلوب`)

// AnswerFollowUp checks whether query is a detail follow-up against the
// cached results and, if so, synthesizes a localized answer. The second
// return is false when the query should run through the full pipeline.
func AnswerFollowUp(query, lang string, cached []JobResult) (string, bool) {
	if len(cached) == 0 {
		return "", false
	}
	if searchTermRe.MatchString(query) || !questionRe.MatchString(query) {
		return "", false
	}
	field := fieldNone
	for _, p := range followUpPatterns {
		if p.re.MatchString(query) {
			field = p.field
			break
		}
	}
	if field == fieldNone {
		return "", false
	}

	// A named company narrows the answer to that posting.
	subset := cached
	for _, h := range cached {
		if h.Company != "" && containsFold(query, h.Company) {
			subset = []JobResult{h}
			break
		}
	}

	metrics.FollowUpAnswers.Add(1)
	var lines []string
	for _, h := range subset {
		lines = append(lines, followUpLine(h, field, lang))
	}
	return strings.Join(lines, "\n"), true
}

func followUpLine(h JobResult, field followUpField, lang string) string {
	name := h.Company
	if name == "" {
		name = h.Title
	}
	value := ""
	switch field {
	case fieldSalary:
		value = h.Salary
	case fieldEmploymentType:
		value = h.EmploymentType
	case fieldPostedAt:
		value = h.PostedAt
	case fieldLocation:
		value = h.Location
	}
	if value == "" {
		if lang == "ar" {
			return fmt.Sprintf("%s: غير مذكور في الإعلان.", name)
		}
		return fmt.Sprintf("%s: not listed in the posting.", name)
	}
	return fmt.Sprintf("%s: %s", name, value)
}
