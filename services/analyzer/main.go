package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/config"
	"github.com/RuvinSL/url-analysis-queue/pkg/health"
	"github.com/RuvinSL/url-analysis-queue/pkg/httpclient"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/logger"
	"github.com/RuvinSL/url-analysis-queue/pkg/metrics"
	"github.com/RuvinSL/url-analysis-queue/pkg/middleware"
	"github.com/RuvinSL/url-analysis-queue/services/analyzer/core"
	"github.com/RuvinSL/url-analysis-queue/services/analyzer/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultPort = "8081"
	serviceName = "analyzer"
)

func main() {
	cfg, err := config.Load(serviceName, defaultPort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.LogLevel)

	metricsCollector := metrics.NewPrometheusCollector(serviceName)
	prometheus.MustRegister(metricsCollector.GetCollectors()...)

	analyzer := newAnalyzer(cfg, metricsCollector, log)
	router := newRouter(analyzer, metricsCollector, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + cfg.LinkCheckTimeout*2 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting Analyzer Service",
			"port", cfg.Port,
			"log_level", cfg.LogLevel.String(),
			"fetch_timeout", cfg.FetchTimeout,
			"link_check_concurrency", cfg.LinkCheckConcurrency,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}

func newAnalyzer(cfg config.Config, collector interfaces.MetricsCollector, log interfaces.Logger) *core.Analyzer {
	pageClient := httpclient.New(cfg.FetchTimeout, log)
	linkClient := httpclient.New(cfg.LinkCheckTimeout, log)

	htmlParser := core.NewHTMLParser(log)
	linkChecker := core.NewConcurrentLinkChecker(linkClient, cfg.LinkCheckConcurrency, cfg.LinkCheckTimeout, log, collector)

	return core.NewAnalyzer(pageClient, htmlParser, linkChecker, log, collector)
}

func newRouter(analyzer interfaces.Analyzer, collector interfaces.MetricsCollector, log interfaces.Logger) *mux.Router {
	analyzerHandler := handlers.NewAnalyzerHandler(analyzer, log)
	healthHandler := health.NewHandler(serviceName, nil)

	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))

	router.HandleFunc("/analyze", analyzerHandler.Analyze).Methods(http.MethodPost)
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
