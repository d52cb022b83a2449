package core

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

type Analyzer struct {
	httpClient  interfaces.HTTPClient
	htmlParser  interfaces.HTMLParser
	linkChecker interfaces.LinkChecker
	logger      interfaces.Logger
	metrics     interfaces.MetricsCollector
}

func NewAnalyzer(
	httpClient interfaces.HTTPClient,
	htmlParser interfaces.HTMLParser,
	linkChecker interfaces.LinkChecker,
	logger interfaces.Logger,
	metrics interfaces.MetricsCollector,
) *Analyzer {
	return &Analyzer{
		httpClient:  httpClient,
		htmlParser:  htmlParser,
		linkChecker: linkChecker,
		logger:      logger,
		metrics:     metrics,
	}
}

// AnalyzeURL fetches the page at rawURL and reports its structure.
// Failures are *errs.AppError so callers can map them to status codes.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (result *models.AnalysisResult, err error) {
	start := time.Now()
	defer func() {
		a.metrics.RecordAnalysis(err == nil, time.Since(start).Seconds())
	}()

	if err := validateTarget(rawURL); err != nil {
		return nil, err
	}

	a.logger.Info("Starting URL analysis", "url", rawURL)

	response, err := a.fetchWebPage(ctx, rawURL)
	if err != nil {
		a.logger.Error("Failed to fetch web page", "url", rawURL, "error", err)
		return nil, err
	}

	parsed, err := a.htmlParser.ParseHTML(ctx, response.Body, rawURL)
	if err != nil {
		a.logger.Error("Failed to parse HTML", "url", rawURL, "error", err)
		return nil, &errs.AppError{Kind: errs.ParsingFailed, Message: "failed to parse HTML", Cause: err}
	}

	broken := a.linkChecker.CheckLinks(ctx, parsed.Links)
	if err := ctx.Err(); err != nil {
		return nil, &errs.AppError{Kind: errs.Timeout, Message: "analysis interrupted", Cause: err}
	}

	internal, external := countLinks(parsed.Links)
	brokenCount := len(broken)
	elapsed := float64(time.Since(start).Milliseconds())

	result = &models.AnalysisResult{
		PageTitle:         &parsed.Title,
		HTMLVersion:       &parsed.HTMLVersion,
		InternalLinks:     &internal,
		ExternalLinks:     &external,
		BrokenLinks:       &brokenCount,
		HasLoginForm:      &parsed.HasLoginForm,
		HeadingCounts:     parsed.HeadingCounts,
		BrokenLinkDetails: broken,
		ProcessingTime:    &elapsed,
	}

	a.logger.Info("URL analysis completed",
		"url", rawURL,
		"duration", time.Since(start),
		"links_found", len(parsed.Links),
		"broken_links", brokenCount,
	)

	return result, nil
}

func (a *Analyzer) fetchWebPage(ctx context.Context, rawURL string) (*models.HTTPResponse, error) {
	response, err := a.httpClient.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if response.StatusCode >= 400 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: response.StatusCode,
			Message:        fmt.Sprintf("HTTP error: %d", response.StatusCode),
		}
	}

	return response, nil
}

func validateTarget(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &errs.AppError{Kind: errs.InvalidInput, Message: "invalid URL", Cause: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errs.Invalid("URL must use http or https")
	}
	if u.Host == "" {
		return errs.Invalid("URL must include a host")
	}
	return nil
}

func countLinks(links []models.Link) (internal, external int) {
	for _, link := range links {
		switch link.Type {
		case models.LinkTypeInternal:
			internal++
		case models.LinkTypeExternal:
			external++
		}
	}
	return internal, external
}

var _ interfaces.Analyzer = (*Analyzer)(nil)
