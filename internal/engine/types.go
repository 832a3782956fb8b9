package engine

import "time"

// --- Core pipeline types ---

// JobResult is one discovered posting candidate.
// URL (minus query string) is the unique key within a result set.
type JobResult struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	Source         string `json:"source"` // host
	Snippet        string `json:"snippet"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Salary         string `json:"salary,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	PostedAt       string `json:"postedAt,omitempty"` // free text, not a parsed date
	IsInternal     bool   `json:"isInternal,omitempty"`

	// isListing is set by the classifier; listing pages survive filtering
	// only when the caller widens the net.
	isListing bool
}

// SearchRequest is the normalized input shared by both route variants.
type SearchRequest struct {
	Query     string
	Lang      string // "en" or "ar"
	SessionID string // optional; empty disables session caching
}

// SearchOutput is the blocking route's result.
type SearchOutput struct {
	Results   []JobResult
	Answer    string // empty when summarization failed or was skipped
	HasAnswer bool
	FromCache bool
}

// --- Streaming frames ---

// FrameType identifies a streaming frame. The only ordering guarantee is
// that the results frame precedes any token frame.
type FrameType string

const (
	FrameResults FrameType = "results"
	FrameToken   FrameType = "token"
	FrameDone    FrameType = "done"
	FrameError   FrameType = "error"
)

// Frame is one typed event delivered to the streaming caller.
type Frame struct {
	Type FrameType
	Data string
}

// --- Cache records ---

// SessionRecord remembers the last result set for one conversation.
type SessionRecord struct {
	Results   []JobResult `json:"results"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DetailRecord memoizes scraped posting metadata, keyed by posting URL.
type DetailRecord struct {
	Salary         string    `json:"salary,omitempty"`
	EmploymentType string    `json:"employmentType,omitempty"`
	PostedAt       string    `json:"postedAt,omitempty"`
	FetchedAt      time.Time `json:"fetchedAt"`
}
