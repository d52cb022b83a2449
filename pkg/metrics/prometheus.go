package metrics

import (
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
)

// Job outcomes reported by the queue processor.
const (
	OutcomeDone      = "done"
	OutcomeError     = "error"
	OutcomeAborted   = "aborted"
	OutcomeDiscarded = "discarded"
)

// PrometheusCollector implements metrics collection using Prometheus
type PrometheusCollector struct {
	serviceName string

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Analyzer metrics
	analysisTotal     *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	linkChecksTotal   *prometheus.CounterVec
	linkCheckDuration *prometheus.HistogramVec

	// Queue metrics
	jobsTotal       *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	queueDepth      prometheus.Gauge
	queueProcessing prometheus.Gauge
	cancellations   prometheus.Counter
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(serviceName string) *PrometheusCollector {
	labels := prometheus.Labels{"service": serviceName}

	return &PrometheusCollector{
		serviceName: serviceName,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: labels,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: labels,
			},
		),

		analysisTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "webpage_analysis_total",
				Help:        "Total number of webpage analyses",
				ConstLabels: labels,
			},
			[]string{"status"},
		),

		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "webpage_analysis_duration_seconds",
				Help:        "Webpage analysis duration in seconds",
				ConstLabels: labels,
				Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		linkChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "link_checks_total",
				Help:        "Total number of link checks",
				ConstLabels: labels,
			},
			[]string{"status"},
		),

		linkCheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "link_check_duration_seconds",
				Help:        "Link check duration in seconds",
				ConstLabels: labels,
				Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"status"},
		),

		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "analysis_jobs_total",
				Help:        "Queue jobs by outcome",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),

		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "analysis_job_duration_seconds",
				Help:        "Time spent waiting on the analysis service per job",
				ConstLabels: labels,
				Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"outcome"},
		),

		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "analysis_queue_depth",
				Help:        "URLs waiting in the analysis queue",
				ConstLabels: labels,
			},
		),

		queueProcessing: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "analysis_queue_processing",
				Help:        "1 while a processing run is active",
				ConstLabels: labels,
			},
		),

		cancellations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "analysis_queue_cancellations_total",
				Help:        "Processing runs cancelled by the user",
				ConstLabels: labels,
			},
		),
	}
}

// GetCollectors returns all Prometheus collectors for registration
func (p *PrometheusCollector) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.analysisTotal,
		p.analysisDuration,
		p.linkChecksTotal,
		p.linkCheckDuration,
		p.jobsTotal,
		p.jobDuration,
		p.queueDepth,
		p.queueProcessing,
		p.cancellations,
	}
}

// RecordRequest records HTTP request metrics
func (p *PrometheusCollector) RecordRequest(method, path string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)

	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordAnalysis records webpage analysis metrics
func (p *PrometheusCollector) RecordAnalysis(success bool, duration float64) {
	status := successLabel(success)

	p.analysisTotal.WithLabelValues(status).Inc()
	p.analysisDuration.WithLabelValues(status).Observe(duration)
}

// RecordLinkCheck records link check metrics
func (p *PrometheusCollector) RecordLinkCheck(success bool, duration float64) {
	status := successLabel(success)

	p.linkChecksTotal.WithLabelValues(status).Inc()
	p.linkCheckDuration.WithLabelValues(status).Observe(duration)
}

// RecordJob records one finished queue job.
func (p *PrometheusCollector) RecordJob(outcome string, duration float64) {
	p.jobsTotal.WithLabelValues(outcome).Inc()
	p.jobDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordCancellation counts a user cancellation.
func (p *PrometheusCollector) RecordCancellation() {
	p.cancellations.Inc()
}

// SetQueueDepth sets the pending URL gauge.
func (p *PrometheusCollector) SetQueueDepth(depth int) {
	p.queueDepth.Set(float64(depth))
}

// SetProcessing flags whether a run is active.
func (p *PrometheusCollector) SetProcessing(active bool) {
	if active {
		p.queueProcessing.Set(1)
		return
	}
	p.queueProcessing.Set(0)
}

// IncRequestsInFlight increments the in-flight requests gauge
func (p *PrometheusCollector) IncRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests gauge
func (p *PrometheusCollector) DecRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

func successLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// statusCodeToString converts HTTP status code to string category
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

var (
	_ interfaces.MetricsCollector = (*PrometheusCollector)(nil)
	_ interfaces.QueueMetrics     = (*PrometheusCollector)(nil)
)
