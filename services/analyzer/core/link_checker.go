package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

// ConcurrentLinkChecker checks links in parallel, bounded by a semaphore.
type ConcurrentLinkChecker struct {
	httpClient  interfaces.HTTPClient
	concurrency int
	timeout     time.Duration
	logger      interfaces.Logger
	metrics     interfaces.MetricsCollector
}

// NewConcurrentLinkChecker creates a checker running at most concurrency
// requests at once, each bounded by timeout.
func NewConcurrentLinkChecker(
	httpClient interfaces.HTTPClient,
	concurrency int,
	timeout time.Duration,
	logger interfaces.Logger,
	metrics interfaces.MetricsCollector,
) *ConcurrentLinkChecker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ConcurrentLinkChecker{
		httpClient:  httpClient,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckLinks returns the links that answered with a status of 400 or more
// or could not be reached. Each distinct URL is checked once and results
// keep the order of first appearance.
func (c *ConcurrentLinkChecker) CheckLinks(ctx context.Context, links []models.Link) []models.BrokenLink {
	urls := distinctURLs(links)
	if len(urls) == 0 {
		return []models.BrokenLink{}
	}

	start := time.Now()
	c.logger.Debug("Starting batch link check", "link_count", len(urls), "concurrency", c.concurrency)

	results := make([]*models.BrokenLink, len(urls))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, u := range urls {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i] = &models.BrokenLink{URL: u, Error: "Check cancelled"}
			continue
		}

		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = c.checkLink(ctx, u)
		}(i, u)
	}
	wg.Wait()

	broken := make([]models.BrokenLink, 0)
	for _, r := range results {
		if r != nil {
			broken = append(broken, *r)
		}
	}

	c.logger.Info("Batch link check completed",
		"link_count", len(urls),
		"broken", len(broken),
		"duration", time.Since(start),
	)
	return broken
}

// checkLink tries HEAD first and falls back to GET when HEAD fails or is refused.
// It returns nil for a healthy link.
func (c *ConcurrentLinkChecker) checkLink(ctx context.Context, url string) *models.BrokenLink {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.httpClient.Head(checkCtx, url)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		c.logger.Debug("HEAD not usable, retrying with GET", "url", url)
		resp, err = c.httpClient.Get(checkCtx, url)
	}

	if err != nil {
		c.metrics.RecordLinkCheck(false, time.Since(start).Seconds())
		c.logger.Debug("Link check failed", "url", url, "error", err)
		return &models.BrokenLink{URL: url, Error: fmt.Sprintf("Request failed: %v", err)}
	}

	c.metrics.RecordLinkCheck(true, time.Since(start).Seconds())
	if resp.StatusCode >= 400 {
		c.logger.Debug("Broken link found", "url", url, "status", resp.StatusCode)
		return &models.BrokenLink{
			URL:        url,
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
	return nil
}

func distinctURLs(links []models.Link) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.URL]; ok {
			continue
		}
		seen[l.URL] = struct{}{}
		out = append(out, l.URL)
	}
	return out
}

var _ interfaces.LinkChecker = (*ConcurrentLinkChecker)(nil)
