package httpclient

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

const (
	userAgent   = "URLAnalysisQueue/1.0"
	maxBodySize = 10 * 1024 * 1024
)

// Client implements the HTTPClient interface
type Client struct {
	client  *http.Client
	logger  interfaces.Logger
	timeout time.Duration
}

func New(timeout time.Duration, logger interfaces.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout, // overall request deadline (includes headers + body)
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   2 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   70,
				IdleConnTimeout:       60 * time.Second,
				TLSHandshakeTimeout:   5 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:  logger,
		timeout: timeout,
	}
}

// Get performs an HTTP GET request. Transport failures come back as
// *errs.AppError with Kind Timeout or Unreachable.
func (c *Client) Get(ctx context.Context, url string) (*models.HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	c.logger.Debug("Making HTTP request",
		"method", req.Method,
		"url", url,
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("HTTP request failed",
			"url", url,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, classify(err)
	}
	defer resp.Body.Close()

	// Setting Accept-Encoding by hand disables transparent decompression.
	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.Error("Failed to read response body",
				"url", url,
				"error", err,
			)
			return nil, &errs.AppError{Kind: errs.ParsingFailed, Message: "invalid gzip body", Cause: err}
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		c.logger.Error("Failed to read response body",
			"url", url,
			"error", err,
		)
		return nil, classify(err)
	}

	c.logger.Debug("HTTP response received",
		"url", url,
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"duration", time.Since(start),
	)

	return &models.HTTPResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

func (c *Client) Head(ctx context.Context, url string) (*models.HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("HEAD request failed",
			"url", url,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, classify(err)
	}
	defer resp.Body.Close()

	return &models.HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &errs.AppError{Kind: errs.Timeout, Message: "request timed out", Cause: err}
	}
	return &errs.AppError{Kind: errs.Unreachable, Message: "request failed", Cause: err}
}

var _ interfaces.HTTPClient = (*Client)(nil)
