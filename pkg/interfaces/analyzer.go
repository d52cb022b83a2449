package interfaces

import (
	"context"

	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

// Analyzer defines the contract for analysing a single URL.
// The queue processor calls it through the HTTP analysis client and the
// analyzer service implements it directly. Cancelling ctx aborts the call.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*models.AnalysisResult, error)
}

// HTMLParser defines the contract for parsing HTML content
type HTMLParser interface {
	ParseHTML(ctx context.Context, content []byte, baseURL string) (*models.ParsedHTML, error)
}

// LinkChecker reports the links of a page that could not be reached.
type LinkChecker interface {
	CheckLinks(ctx context.Context, links []models.Link) []models.BrokenLink
}

// HTTPClient defines the contract for HTTP operations
type HTTPClient interface {
	Get(ctx context.Context, url string) (*models.HTTPResponse, error)
	Head(ctx context.Context, url string) (*models.HTTPResponse, error)
}

// Logger defines the contract for logging operations
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// MetricsCollector defines the contract for HTTP and analysis metrics
type MetricsCollector interface {
	RecordRequest(method, path string, statusCode int, duration float64)
	RecordAnalysis(success bool, duration float64)
	RecordLinkCheck(success bool, duration float64)
}

// QueueMetrics records the queue processor's activity.
type QueueMetrics interface {
	RecordJob(outcome string, duration float64)
	RecordCancellation()
	SetQueueDepth(depth int)
	SetProcessing(active bool)
}

// EntryPersister stores the whole entry collection in one named slot.
// Entries are kept newest first.
type EntryPersister interface {
	Load(ctx context.Context) ([]models.URLEntry, error)
	Save(ctx context.Context, entries []models.URLEntry) error
}

// HealthChecker defines the contract for health check operations
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
