package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/config"
	"github.com/RuvinSL/url-analysis-queue/pkg/health"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/logger"
	"github.com/RuvinSL/url-analysis-queue/pkg/metrics"
	"github.com/RuvinSL/url-analysis-queue/pkg/middleware"
	"github.com/RuvinSL/url-analysis-queue/pkg/storage"
	"github.com/RuvinSL/url-analysis-queue/services/queue/client"
	"github.com/RuvinSL/url-analysis-queue/services/queue/core"
	"github.com/RuvinSL/url-analysis-queue/services/queue/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultPort = "8080"
	serviceName = "queue"
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

	persister, closeStore, err := openPersister(context.Background(), cfg)
	if err != nil {
		log.Error("Failed to open entry storage", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	store, err := core.NewEntryStore(context.Background(), persister, log)
	if err != nil {
		log.Error("Failed to load entries", "error", err)
		os.Exit(1)
	}

	analyzerClient := client.NewAnalyzerClient(cfg.AnalyzerURL, cfg.AnalyzerTimeout, log)
	processor := core.NewProcessor(analyzerClient, store, metricsCollector, log, core.Config{
		JobDelay:     cfg.JobDelay,
		PollInterval: cfg.CancelPollInterval,
	})

	router := newRouter(processor, analyzerClient, metricsCollector, log)

	srv := newServer(fmt.Sprintf(":%s", cfg.Port), router)

	go func() {
		log.Info("Starting Queue Service",
			"port", cfg.Port,
			"analyzer_url", cfg.AnalyzerURL,
			"store_driver", cfg.StoreDriver,
			"job_delay", cfg.JobDelay,
			"log_level", cfg.LogLevel.String(),
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

	procCtx, procCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer procCancel()

	if err := processor.Shutdown(procCtx); err != nil {
		log.Error("Processor did not stop in time", "error", err)
	}

	log.Info("Server exited")
}

// newServer builds the HTTP server. Shutdown cancels the base context of
// every request, which ends open event streams.
func newServer(addr string, handler http.Handler) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: /api/v1/events is a long-lived stream
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

// openPersister picks the entry storage named by STORE_DRIVER.
func openPersister(ctx context.Context, cfg config.Config) (interfaces.EntryPersister, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		p, err := storage.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil
	default:
		return storage.NewMemoryPersister(), func() {}, nil
	}
}

func newRouter(processor *core.Processor, analyzer interfaces.HealthChecker, collector *metrics.PrometheusCollector, log interfaces.Logger) *mux.Router {
	apiHandler := handlers.NewAPIHandler(processor, processor.Store(), log)
	eventsHandler := handlers.NewEventsHandler(processor.Store(), log)
	healthHandler := health.NewHandler(serviceName, map[string]interfaces.HealthChecker{
		"analyzer_service": analyzer,
		"entry_store":      processor.Store(),
	})

	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	api := router.PathPrefix("/api/v1").Subrouter()
	apiHandler.Register(api)
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
