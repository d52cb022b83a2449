package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/logger"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: LINK_CHECK_CONCURRENCY must be 1-100")
	errNonPositiveDuration   = errors.New("config: duration must be positive")
	errUnknownStoreDriver    = errors.New("config: STORE_DRIVER must be memory or mysql")
	errMissingDSN            = errors.New("config: MYSQL_DSN is required for the mysql store")
	errInvalidAnalyzerURL    = errors.New("config: invalid ANALYZER_SERVICE_URL")
)

// Config holds the settings of both services, loaded from environment variables.
type Config struct {
	Service  string
	Port     string
	LogLevel slog.Level

	// queue service
	AnalyzerURL        string
	AnalyzerTimeout    time.Duration
	JobDelay           time.Duration
	CancelPollInterval time.Duration
	StoreDriver        string
	MySQLDSN           string

	// analyzer service
	FetchTimeout         time.Duration
	LinkCheckConcurrency int
	LinkCheckTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load(service, defaultPort string) (Config, error) {
	cfg := Config{
		Service:  service,
		Port:     getEnv("PORT", defaultPort),
		LogLevel: logger.ParseLevel(os.Getenv("LOG_LEVEL")),

		AnalyzerURL:        getEnv("ANALYZER_SERVICE_URL", "http://localhost:8081"),
		AnalyzerTimeout:    getEnvAsDuration("ANALYZER_TIMEOUT", 60*time.Second),
		JobDelay:           getEnvAsDuration("JOB_DELAY", 500*time.Millisecond),
		CancelPollInterval: getEnvAsDuration("CANCEL_POLL_INTERVAL", 50*time.Millisecond),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		MySQLDSN:           os.Getenv("MYSQL_DSN"),

		FetchTimeout:         getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
		LinkCheckConcurrency: getEnvAsInt("LINK_CHECK_CONCURRENCY", 10),
		LinkCheckTimeout:     getEnvAsDuration("LINK_CHECK_TIMEOUT", 5*time.Second),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LinkCheckConcurrency < 1 || c.LinkCheckConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.LinkCheckConcurrency)
	}

	durations := map[string]time.Duration{
		"ANALYZER_TIMEOUT":     c.AnalyzerTimeout,
		"CANCEL_POLL_INTERVAL": c.CancelPollInterval,
		"FETCH_TIMEOUT":        c.FetchTimeout,
		"LINK_CHECK_TIMEOUT":   c.LinkCheckTimeout,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s=%s", errNonPositiveDuration, name, d)
		}
	}
	// JOB_DELAY=0 disables the pause between jobs.
	if c.JobDelay < 0 {
		return fmt.Errorf("%w: JOB_DELAY=%s", errNonPositiveDuration, c.JobDelay)
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StoreMySQL:
		if c.MySQLDSN == "" {
			return errMissingDSN
		}
	default:
		return fmt.Errorf("%w: got %q", errUnknownStoreDriver, c.StoreDriver)
	}

	u, err := url.Parse(c.AnalyzerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", errInvalidAnalyzerURL, c.AnalyzerURL)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// getEnvAsDuration accepts Go durations ("750ms") or bare milliseconds ("750").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
