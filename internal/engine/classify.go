package engine

import (
	"net/url"
	"regexp"
	"strings"
)

// hostRules describes one allowed job board: how to tell a single-posting
// detail page from a search/category listing page, and how trusted the
// board is (lower = more trusted, used by the priority score).
type hostRules struct {
	priority int
	detail   []*regexp.Regexp
	listing  []*regexp.Regexp
}

// allowedHosts is the full allow-list. Subdomains of these hosts pass too.
// Evaluated as ordered rule tables: first matching pattern wins.
var allowedHosts = map[string]hostRules{
	"bayt.com": {
		priority: 0,
		detail: []*regexp.Regexp{
			regexp.MustCompile(`^/(?:en|ar)/[a-z-]+/jobs/[a-z0-9-]*\d{6,}/?$`),
			regexp.MustCompile(`^/(?:en|ar)/job/`),
		},
		listing: []*regexp.Regexp{
			regexp.MustCompile(`^/(?:en|ar)/[a-z-]+/jobs/?$`),
			regexp.MustCompile(`-jobs/?$`),
			regexp.MustCompile(`^/(?:en|ar)/jobs/`),
		},
	},
	"naukrigulf.com": {
		priority: 1,
		detail: []*regexp.Regexp{
			regexp.MustCompile(`/job-detail[/-]`),
			regexp.MustCompile(`-\d{6,}/?$`),
		},
		listing: []*regexp.Regexp{
			regexp.MustCompile(`-jobs(?:-in-[a-z-]+)?/?$`),
			regexp.MustCompile(`^/jobs-`),
		},
	},
	"gulftalent.com": {
		priority: 2,
		detail: []*regexp.Regexp{
			regexp.MustCompile(`^/[a-z-]+/jobs/[a-z0-9-]+-\d{4,}/?$`),
		},
		listing: []*regexp.Regexp{
			regexp.MustCompile(`^/[a-z-]+/jobs(?:/search)?/?$`),
			regexp.MustCompile(`^/jobs-in-`),
		},
	},
}

// blockedHost is rejected outright: postings behind a login wall are
// useless to the caller regardless of how relevant they look.
const blockedHost = "linkedin.com"

const unknownHostPriority = 5

// ClassifyURL reports whether a raw hit URL is an acceptable job page.
// Listing/category pages pass only when allowListings widens the net.
func ClassifyURL(rawURL string, allowListings bool) bool {
	host, path, ok := splitHostPath(rawURL)
	if !ok {
		return false
	}
	if host == blockedHost || strings.HasSuffix(host, "."+blockedHost) {
		return false
	}
	rules, ok := lookupHost(host)
	if !ok {
		return false
	}
	for _, re := range rules.detail {
		if re.MatchString(path) {
			return true
		}
	}
	for _, re := range rules.listing {
		if re.MatchString(path) {
			return allowListings
		}
	}
	// On an allowed host but matching neither table: treat as a detail
	// page candidate. The boards add new URL shapes faster than we do.
	return true
}

// IsListingPage reports whether the URL points at an aggregated
// "N jobs in X" page rather than one specific posting.
func IsListingPage(rawURL string) bool {
	host, path, ok := splitHostPath(rawURL)
	if !ok {
		return false
	}
	rules, ok := lookupHost(host)
	if !ok {
		return false
	}
	for _, re := range rules.detail {
		if re.MatchString(path) {
			return false
		}
	}
	for _, re := range rules.listing {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// closedPhrases mark a posting that is no longer accepting applicants.
var closedPhrases = []string{
	"job closed",
	"this job is closed",
	"this position has been filled",
	"position has been filled",
	"no longer accepting applications",
	"no longer available",
	"this vacancy has expired",
	"vacancy expired",
	"وظيفة مغلقة",
	"تم شغل الوظيفة",
	"لم تعد متاحة",
	"انتهت صلاحية",
}

// IsClosed reports whether the hit's title+snippet announce an
// expired/filled posting. Such hits are discarded regardless of host.
func IsClosed(h JobResult) bool {
	text := strings.ToLower(h.Title + " " + h.Snippet)
	for _, p := range closedPhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func hostPriority(host string) int {
	if rules, ok := lookupHost(host); ok {
		return rules.priority
	}
	return unknownHostPriority
}

// lookupHost resolves host (or any subdomain) against the allow-list.
func lookupHost(host string) (hostRules, bool) {
	host = strings.TrimPrefix(host, "www.")
	if rules, ok := allowedHosts[host]; ok {
		return rules, true
	}
	for allowed, rules := range allowedHosts {
		if strings.HasSuffix(host, "."+allowed) {
			return rules, true
		}
	}
	return hostRules{}, false
}

func splitHostPath(rawURL string) (host, path string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", "", false
	}
	host = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path = strings.ToLower(u.Path)
	if path == "" {
		path = "/"
	}
	return host, path, true
}

// listingTitleRe catches aggregator titles like "100+ Software Engineer Jobs
// in Kuwait" that occasionally arrive on otherwise detail-looking URLs.
var listingTitleRe = regexp.MustCompile(`(?i)\b\d+\+?\s+[\p{L} ]*\bjobs\b`)

// IsListingHit combines the URL path tables with the title heuristic.
func IsListingHit(h JobResult) bool {
	if IsListingPage(h.URL) {
		return true
	}
	return listingTitleRe.MatchString(h.Title)
}
