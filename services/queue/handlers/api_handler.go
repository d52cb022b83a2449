package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/gorilla/mux"
)

const (
	maxBatchSize = 100
	maxBodyBytes = 1 << 20
)

// QueueService is the part of the processor the API drives.
type QueueService interface {
	Submit(urls []string) ([]string, error)
	Start() bool
	Cancel() bool
	Rerun(ids []string) []string
	Delete(ids []string) int
	Status() models.QueueStatus
}

// EntryReader gives read access to the entry store.
type EntryReader interface {
	List() []models.URLEntry
	Get(id string) (models.URLEntry, bool)
}

type APIHandler struct {
	queue   QueueService
	entries EntryReader
	logger  interfaces.Logger
}

func NewAPIHandler(queue QueueService, entries EntryReader, logger interfaces.Logger) *APIHandler {
	return &APIHandler{
		queue:   queue,
		entries: entries,
		logger:  logger,
	}
}

// Register mounts the API routes on r.
func (h *APIHandler) Register(r *mux.Router) {
	r.HandleFunc("/queue", h.Submit).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/queue/status", h.Status).Methods(http.MethodGet)
	r.HandleFunc("/queue/start", h.Start).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/queue/cancel", h.Cancel).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/entries", h.ListEntries).Methods(http.MethodGet)
	r.HandleFunc("/entries/rerun", h.Rerun).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/entries/delete", h.Delete).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/entries/{id}", h.GetEntry).Methods(http.MethodGet)
}

// Submit enqueues a batch of URLs and starts processing.
func (h *APIHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := decode(r, &req); err != nil {
		h.logger.Warn("Failed to parse submit request", "error", err)
		h.sendError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if len(req.URLs) == 0 {
		h.sendError(w, "At least one URL is required", http.StatusBadRequest)
		return
	}
	if len(req.URLs) > maxBatchSize {
		h.sendError(w, "Maximum 100 URLs allowed per batch", http.StatusBadRequest)
		return
	}

	queued, err := h.queue.Submit(req.URLs)
	if err != nil {
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.Kind == errs.InvalidInput {
			h.sendError(w, appErr.Message, http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to submit URLs", "error", err)
		h.sendError(w, "Failed to submit URLs", http.StatusInternalServerError)
		return
	}

	h.logger.Info("URLs submitted", "requested", len(req.URLs), "queued", len(queued))

	if queued == nil {
		queued = []string{}
	}
	h.sendJSON(w, http.StatusAccepted, models.SubmitResponse{
		Queued: queued,
		Status: h.queue.Status(),
	})
}

func (h *APIHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.queue.Status())
}

// Start restarts processing of whatever is left in the queue.
func (h *APIHandler) Start(w http.ResponseWriter, r *http.Request) {
	started := h.queue.Start()
	h.sendJSON(w, http.StatusOK, map[string]any{
		"started": started,
		"status":  h.queue.Status(),
	})
}

func (h *APIHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cancelled := h.queue.Cancel()
	h.sendJSON(w, http.StatusOK, map[string]any{
		"cancelled": cancelled,
		"status":    h.queue.Status(),
	})
}

func (h *APIHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.entries.List()
	if entries == nil {
		entries = []models.URLEntry{}
	}
	h.sendJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, ok := h.entries.Get(id)
	if !ok {
		h.sendError(w, "Entry not found", http.StatusNotFound)
		return
	}
	h.sendJSON(w, http.StatusOK, entry)
}

func (h *APIHandler) Rerun(w http.ResponseWriter, r *http.Request) {
	var req models.IDsRequest
	if err := decode(r, &req); err != nil || len(req.IDs) == 0 {
		h.sendError(w, "At least one entry id is required", http.StatusBadRequest)
		return
	}

	urls := h.queue.Rerun(req.IDs)
	if urls == nil {
		urls = []string{}
	}
	h.sendJSON(w, http.StatusOK, map[string]any{
		"requeued": urls,
		"status":   h.queue.Status(),
	})
}

func (h *APIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.IDsRequest
	if err := decode(r, &req); err != nil || len(req.IDs) == 0 {
		h.sendError(w, "At least one entry id is required", http.StatusBadRequest)
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]int{"deleted": h.queue.Delete(req.IDs)})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(v)
}

func (h *APIHandler) sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// sendError sends an error response
func (h *APIHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, statusCode, models.ErrorResponse{
		Error:      message,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
	})
}
