package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/RuvinSL/url-analysis-queue/pkg/requestid"
	"github.com/google/uuid"
)

const maxResponseSize = 5 * 1024 * 1024

// HTTPAnalyzerClient calls the analyzer service's /analyze endpoint.
type HTTPAnalyzerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     interfaces.Logger
}

func NewAnalyzerClient(baseURL string, timeout time.Duration, logger interfaces.Logger) *HTTPAnalyzerClient {
	return &HTTPAnalyzerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		logger: logger,
	}
}

// AnalyzeURL posts url to the analyzer. A cancelled ctx yields an error
// matching context.Canceled; any other failure carries a readable message.
func (c *HTTPAnalyzerClient) AnalyzeURL(ctx context.Context, url string) (*models.AnalysisResult, error) {
	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := c.logger.With("url", url, "request_id", requestID)

	jsonData, err := json.Marshal(models.AnalysisRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		log.Error("Failed to create HTTP request", "error", err, "endpoint", endpoint)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestID)

	log.Debug("Calling analyzer service", "endpoint", endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("Analyzer call aborted", "duration", duration)
			return nil, fmt.Errorf("analysis aborted: %w", err)
		}
		log.Error("Failed to call analyzer service", "error", err, "duration", duration)
		return nil, fmt.Errorf("analyzer service unavailable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("analysis aborted: %w", err)
		}
		log.Error("Failed to read response body", "error", err, "status_code", resp.StatusCode)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Analyzer service responded", "status_code", resp.StatusCode, "duration", duration)

	if resp.StatusCode != http.StatusOK {
		var errorResp models.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
			log.Warn("Analyzer service returned error", "status_code", resp.StatusCode, "error", errorResp.Error)
			return nil, errors.New(errorResp.Error)
		}
		log.Warn("Analyzer service returned error", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Error("Failed to parse analyzer response", "error", err)
		return nil, fmt.Errorf("failed to parse analyzer response: %w", err)
	}

	if result.Error != "" {
		return nil, errors.New(result.Error)
	}
	if err := validateResult(&result); err != nil {
		log.Warn("Analyzer response failed validation", "error", err)
		return nil, err
	}

	log.Info("Analyzer service call completed", "duration", duration)
	return &result, nil
}

// CheckHealth probes the analyzer's /health endpoint.
func (c *HTTPAnalyzerClient) CheckHealth(ctx context.Context) error {
	endpoint := c.baseURL + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Health check request failed", "error", err, "endpoint", endpoint)
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Analyzer service health check failed",
			"status_code", resp.StatusCode,
			"response_body", string(body))
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return nil
}

// validateResult rejects negative counts and processing times.
func validateResult(r *models.AnalysisResult) error {
	counts := []struct {
		name  string
		value *int
	}{
		{"internalLinks", r.InternalLinks},
		{"externalLinks", r.ExternalLinks},
		{"brokenLinks", r.BrokenLinks},
	}
	for _, c := range counts {
		if c.value != nil && *c.value < 0 {
			return fmt.Errorf("invalid analysis result: %s is negative", c.name)
		}
	}
	for level, n := range r.HeadingCounts {
		if n < 0 {
			return fmt.Errorf("invalid analysis result: heading count %s is negative", level)
		}
	}
	for _, bl := range r.BrokenLinkDetails {
		if bl.URL == "" {
			return errors.New("invalid analysis result: broken link without url")
		}
	}
	if r.ProcessingTime != nil && *r.ProcessingTime < 0 {
		return errors.New("invalid analysis result: processingTime is negative")
	}
	return nil
}

var (
	_ interfaces.Analyzer      = (*HTTPAnalyzerClient)(nil)
	_ interfaces.HealthChecker = (*HTTPAnalyzerClient)(nil)
)
