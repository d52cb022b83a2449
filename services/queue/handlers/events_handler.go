package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

const defaultHeartbeat = 15 * time.Second

// EntrySubscriber streams entry store changes.
type EntrySubscriber interface {
	Subscribe() (<-chan models.EntryEvent, func())
}

// EventsHandler pushes entry changes to clients as server-sent events.
type EventsHandler struct {
	source    EntrySubscriber
	logger    interfaces.Logger
	heartbeat time.Duration
}

func NewEventsHandler(source EntrySubscriber, logger interfaces.Logger) *EventsHandler {
	return &EventsHandler{
		source:    source,
		logger:    logger,
		heartbeat: defaultHeartbeat,
	}
}

// Stream writes one "entry" event per store mutation until the client goes away.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, unsubscribe := h.source.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	h.logger.Debug("Event stream opened", "remote_addr", r.RemoteAddr)
	defer h.logger.Debug("Event stream closed", "remote_addr", r.RemoteAddr)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("Failed to encode entry event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: entry\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
