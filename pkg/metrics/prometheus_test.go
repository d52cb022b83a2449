package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_Register(t *testing.T) {
	collector := NewPrometheusCollector("queue")
	registry := prometheus.NewRegistry()

	for _, c := range collector.GetCollectors() {
		require.NoError(t, registry.Register(c))
	}
}

func TestPrometheusCollector_RecordRequest(t *testing.T) {
	collector := NewPrometheusCollector("queue")

	collector.RecordRequest("GET", "/api/v1/queue/status", 200, 0.01)
	collector.RecordRequest("GET", "/api/v1/queue/status", 204, 0.02)
	collector.RecordRequest("POST", "/api/v1/queue", 400, 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.httpRequestsTotal.WithLabelValues("GET", "/api/v1/queue/status", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.httpRequestsTotal.WithLabelValues("POST", "/api/v1/queue", "4xx")))
}

func TestPrometheusCollector_QueueMetrics(t *testing.T) {
	collector := NewPrometheusCollector("queue")

	collector.RecordJob(OutcomeDone, 0.2)
	collector.RecordJob(OutcomeDone, 0.4)
	collector.RecordJob(OutcomeError, 1)
	collector.RecordCancellation()
	collector.SetQueueDepth(3)
	collector.SetProcessing(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.jobsTotal.WithLabelValues(OutcomeDone)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.jobsTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.cancellations))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.queueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.queueProcessing))

	collector.SetProcessing(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.queueProcessing))
}

func TestPrometheusCollector_AnalysisMetrics(t *testing.T) {
	collector := NewPrometheusCollector("analyzer")

	collector.RecordAnalysis(true, 1.5)
	collector.RecordAnalysis(false, 0.5)
	collector.RecordLinkCheck(false, 0.1)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.analysisTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.analysisTotal.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.linkChecksTotal.WithLabelValues("failure")))
}

func TestStatusCodeToString(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		302: "3xx",
		404: "4xx",
		503: "5xx",
		0:   "unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusCodeToString(code))
	}
}
