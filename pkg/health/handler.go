package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

const version = "1.0.0"

// Handler reports service health, probing each named dependency.
type Handler struct {
	serviceName string
	checks      map[string]interfaces.HealthChecker
	startTime   time.Time
	timeout     time.Duration
}

// NewHandler creates a new health handler. checks may be nil.
func NewHandler(serviceName string, checks map[string]interfaces.HealthChecker) *Handler {
	return &Handler{
		serviceName: serviceName,
		checks:      checks,
		startTime:   time.Now(),
		timeout:     5 * time.Second,
	}
}

// Health answers 200 when every dependency is healthy and 503 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	status := "healthy"

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name].CheckHealth(ctx); err != nil {
			results[name] = "unhealthy: " + err.Error()
			status = "degraded"
			continue
		}
		results[name] = "healthy"
	}

	response := models.HealthStatus{
		Status:    status,
		Service:   h.serviceName,
		Version:   version,
		Uptime:    formatDuration(time.Since(h.startTime)),
		Checks:    results,
		Timestamp: time.Now(),
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// formatDuration formats a duration to a human-readable string
func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
