package models

import (
	"net/http"
	"time"
)

// URLStatus is the lifecycle state of an analysed URL.
type URLStatus string

const (
	StatusQueued  URLStatus = "queued"
	StatusRunning URLStatus = "running"
	StatusDone    URLStatus = "done"
	StatusError   URLStatus = "error"
	// StatusStopped marks entries halted by hand. The processor never sets it.
	StatusStopped URLStatus = "stopped"
)

// IsTerminal reports whether no automatic transition follows s.
func (s URLStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusError
}

// Entry placeholders and merge defaults.
const (
	PlaceholderTitle       = "Analyzing..."
	PlaceholderHTMLVersion = "Unknown"
	DefaultDoneTitle       = "Analysis Complete"
	DefaultDoneHTMLVersion = "HTML5"
	DefaultFailedTitle     = "Analysis Failed"
)

// BrokenLink describes a link that could not be reached.
type BrokenLink struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error,omitempty"`
}

// URLEntry is the analysis record for one URL. URL is the unique key.
type URLEntry struct {
	ID                string         `json:"id"`
	URL               string         `json:"url"`
	Title             string         `json:"title"`
	HTMLVersion       string         `json:"htmlVersion"`
	InternalLinks     int            `json:"internalLinks"`
	ExternalLinks     int            `json:"externalLinks"`
	BrokenLinks       int            `json:"brokenLinks"`
	HasLoginForm      bool           `json:"hasLoginForm"`
	HeadingCounts     map[string]int `json:"headingCounts"`
	BrokenLinkDetails []BrokenLink   `json:"brokenLinkDetails"`
	Status            URLStatus      `json:"status"`
	LastUpdated       time.Time      `json:"lastUpdated"`
	ProcessingTime    *float64       `json:"processingTime,omitempty"`
	ErrorMessage      string         `json:"errorMessage,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e URLEntry) Clone() URLEntry {
	out := e
	if e.HeadingCounts != nil {
		out.HeadingCounts = make(map[string]int, len(e.HeadingCounts))
		for k, v := range e.HeadingCounts {
			out.HeadingCounts[k] = v
		}
	}
	if e.BrokenLinkDetails != nil {
		out.BrokenLinkDetails = append([]BrokenLink(nil), e.BrokenLinkDetails...)
	}
	if e.ProcessingTime != nil {
		pt := *e.ProcessingTime
		out.ProcessingTime = &pt
	}
	return out
}

// AnalysisResult is the analysis service's answer for one URL.
// Every field is optional; nil means the service omitted it.
type AnalysisResult struct {
	PageTitle         *string        `json:"pageTitle,omitempty"`
	HTMLVersion       *string        `json:"htmlVersion,omitempty"`
	InternalLinks     *int           `json:"internalLinks,omitempty"`
	ExternalLinks     *int           `json:"externalLinks,omitempty"`
	BrokenLinks       *int           `json:"brokenLinks,omitempty"`
	HasLoginForm      *bool          `json:"hasLoginForm,omitempty"`
	HeadingCounts     map[string]int `json:"headingCounts,omitempty"`
	BrokenLinkDetails []BrokenLink   `json:"brokenLinkDetails,omitempty"`
	ProcessingTime    *float64       `json:"processingTime,omitempty"`
	Error             string         `json:"error,omitempty"`
}

// QueueStatus is the read-only projection consumed by the presentation layer.
type QueueStatus struct {
	Pending           int        `json:"pending"`
	CurrentURL        *string    `json:"currentUrl"`
	IsProcessing      bool       `json:"isProcessing"`
	TotalCompleted    int        `json:"totalCompleted"`
	RecentlyCompleted []URLEntry `json:"recentlyCompleted"`
	Progress          float64    `json:"progress"`
}

// EntryEvent is published by the entry store after every mutation.
type EntryEvent struct {
	Type  string   `json:"type"`
	Entry URLEntry `json:"entry"`
}

const (
	EventUpserted = "upserted"
	EventDeleted  = "deleted"
)

// ParsedHTML represents the parsed HTML content
type ParsedHTML struct {
	Title         string
	HTMLVersion   string
	HeadingCounts map[string]int
	Links         []Link
	HasLoginForm  bool
}

type Link struct {
	URL  string   `json:"url"`
	Type LinkType `json:"type"`
}

type LinkType string

const (
	LinkTypeInternal LinkType = "internal"
	LinkTypeExternal LinkType = "external"
)

type HTTPResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

type AnalysisRequest struct {
	URL string `json:"url"`
}

// SubmitRequest carries a batch of URLs for the queue.
type SubmitRequest struct {
	URLs []string `json:"urls"`
}

// SubmitResponse lists the URLs that were actually appended.
type SubmitResponse struct {
	Queued []string    `json:"queued"`
	Status QueueStatus `json:"status"`
}

// IDsRequest selects entries for bulk rerun or delete.
type IDsRequest struct {
	IDs []string `json:"ids"`
}

type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
