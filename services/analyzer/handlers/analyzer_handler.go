package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/RuvinSL/url-analysis-queue/pkg/requestid"
)

const maxBodyBytes = 64 * 1024

// AnalyzerHandler handles analyzer service requests
type AnalyzerHandler struct {
	analyzer interfaces.Analyzer
	logger   interfaces.Logger
}

func NewAnalyzerHandler(analyzer interfaces.Analyzer, logger interfaces.Logger) *AnalyzerHandler {
	return &AnalyzerHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

func (h *AnalyzerHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("Failed to parse request", "error", err)
		h.sendError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		h.sendError(w, "URL is required", http.StatusBadRequest)
		return
	}

	requestID := requestid.FromContext(ctx)
	h.logger.Info("Processing analysis request",
		"url", req.URL,
		"request_id", requestID,
	)

	result, err := h.analyzer.AnalyzeURL(ctx, req.URL)
	if err != nil {
		statusCode := statusFor(err)
		h.logger.Error("Analysis failed",
			"url", req.URL,
			"error", err,
			"kind", errs.KindOf(err).String(),
			"status_code", statusCode,
			"request_id", requestID,
		)
		h.sendError(w, messageFor(err), statusCode)
		return
	}

	h.logger.Info("Analysis completed successfully",
		"url", req.URL,
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps an error kind to the HTTP status returned to the caller.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.InvalidInput:
		return http.StatusBadRequest
	case errs.Unreachable:
		return http.StatusBadGateway
	case errs.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case errs.Timeout:
			return "Analysis timeout"
		case errs.InvalidInput:
			return appErr.Message
		case errs.Unreachable:
			if appErr.UpstreamStatus != 0 {
				return appErr.Message
			}
			return "Failed to fetch URL: " + appErr.Error()
		}
	}
	return "Failed to analyze URL"
}

// sendError sends an error response
func (h *AnalyzerHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := models.ErrorResponse{
		Error:      message,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
