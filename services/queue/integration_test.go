package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/httpclient"
	"github.com/RuvinSL/url-analysis-queue/pkg/logger"
	"github.com/RuvinSL/url-analysis-queue/pkg/metrics"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/RuvinSL/url-analysis-queue/pkg/storage"
	analyzercore "github.com/RuvinSL/url-analysis-queue/services/analyzer/core"
	analyzerhandlers "github.com/RuvinSL/url-analysis-queue/services/analyzer/handlers"
	"github.com/RuvinSL/url-analysis-queue/services/queue/client"
	"github.com/RuvinSL/url-analysis-queue/services/queue/core"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_QueueThroughAnalyzer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	siteURL := startFixtureSite(t)
	analyzerURL := startAnalyzerService(t)
	queueURL := startQueueService(t, analyzerURL)

	t.Run("submit_and_process", func(t *testing.T) {
		body, _ := json.Marshal(models.SubmitRequest{URLs: []string{
			siteURL + "/",
			siteURL + "/",
			siteURL + "/missing",
		}})

		resp, err := http.Post(queueURL+"/api/v1/queue", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		var submitted models.SubmitResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitted))
		assert.Equal(t, []string{siteURL + "/", siteURL + "/missing"}, submitted.Queued)

		require.Eventually(t, func() bool {
			status := getStatus(t, queueURL)
			return !status.IsProcessing && status.Progress == 100
		}, 10*time.Second, 20*time.Millisecond)

		entries := getEntries(t, queueURL)
		require.Len(t, entries, 2)

		byURL := map[string]models.URLEntry{}
		for _, e := range entries {
			byURL[e.URL] = e
		}

		ok := byURL[siteURL+"/"]
		assert.Equal(t, models.StatusDone, ok.Status)
		assert.Equal(t, "Fixture Home", ok.Title)
		assert.Equal(t, "HTML5", ok.HTMLVersion)
		assert.Equal(t, 1, ok.InternalLinks)
		assert.Equal(t, 1, ok.BrokenLinks)
		assert.Equal(t, 1, ok.HeadingCounts["H1"])
		assert.NotNil(t, ok.ProcessingTime)

		failed := byURL[siteURL+"/missing"]
		assert.Equal(t, models.StatusError, failed.Status)
		assert.Equal(t, models.DefaultFailedTitle, failed.Title)
		assert.Equal(t, "HTTP error: 404", failed.ErrorMessage)
	})

	t.Run("health_checks", func(t *testing.T) {
		resp, err := http.Get(queueURL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var health models.HealthStatus
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "healthy", health.Checks["analyzer_service"])
	})

	t.Run("invalid_url", func(t *testing.T) {
		body, _ := json.Marshal(models.SubmitRequest{URLs: []string{"not-a-valid-url"}})

		resp, err := http.Post(queueURL+"/api/v1/queue", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errorResp models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResp))
		assert.NotEmpty(t, errorResp.Error)
	})
}

func getStatus(t *testing.T, baseURL string) models.QueueStatus {
	t.Helper()
	resp, err := http.Get(baseURL + "/api/v1/queue/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var status models.QueueStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	return status
}

func getEntries(t *testing.T, baseURL string) []models.URLEntry {
	t.Helper()
	resp, err := http.Get(baseURL + "/api/v1/entries")
	require.NoError(t, err)
	defer resp.Body.Close()

	var entries []models.URLEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	return entries
}

// startFixtureSite serves a page whose only link is broken.
func startFixtureSite(t *testing.T) string {
	site := http.NewServeMux()
	site.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Fixture Home</title></head>
<body><h1>Welcome</h1><a href="/broken">broken</a></body></html>`)
	})

	server := httptest.NewServer(site)
	t.Cleanup(server.Close)
	return server.URL
}

func startAnalyzerService(t *testing.T) string {
	log := logger.Nop()
	collector := metrics.NewPrometheusCollector("analyzer-test")

	analyzer := analyzercore.NewAnalyzer(
		httpclient.New(5*time.Second, log),
		analyzercore.NewHTMLParser(log),
		analyzercore.NewConcurrentLinkChecker(httpclient.New(time.Second, log), 4, time.Second, log, collector),
		log,
		collector,
	)

	router := mux.NewRouter()
	router.HandleFunc("/analyze", analyzerhandlers.NewAnalyzerHandler(analyzer, log).Analyze).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

func startQueueService(t *testing.T, analyzerURL string) string {
	log := logger.Nop()
	collector := metrics.NewPrometheusCollector("queue-test")

	store, err := core.NewEntryStore(context.Background(), storage.NewMemoryPersister(), log)
	require.NoError(t, err)

	analyzerClient := client.NewAnalyzerClient(analyzerURL, 10*time.Second, log)
	processor := core.NewProcessor(analyzerClient, store, collector, log, core.Config{
		JobDelay:     10 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
	})

	server := httptest.NewServer(newRouter(processor, analyzerClient, collector, log))
	t.Cleanup(func() {
		server.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		processor.Shutdown(ctx)
	})
	return server.URL
}
