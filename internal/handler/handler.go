// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/Shivanand-hulikatti/campus-events/internal/service"
	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EventHandler holds all HTTP handlers for the events API.
type EventHandler struct {
	events *service.EventService
	rsvps  *service.RSVPService
	store  Pinger
	logger *slog.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService, rsvps *service.RSVPService, store Pinger, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{events: events, rsvps: rsvps, store: store, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeStoreError maps errors shared by every endpoint. It reports whether
// it wrote a response.
func (h *EventHandler) writeStoreError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidEventID):
		writeError(w, http.StatusBadRequest, "invalid event ID format")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, repository.ErrStoreUnavailable):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "event store unavailable, try again shortly")
	default:
		return false
	}
	return true
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), req)
	if err != nil {
		if h.writeStoreError(w, err) {
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list events failed", "error", err)
		if h.writeStoreError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if h.writeStoreError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// RSVP handles POST /api/events/{id}/rsvp
// Adds one attendee to the event.
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.rsvps.RSVP(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if h.writeStoreError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to RSVP")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CancelRSVP handles POST /api/events/{id}/cancel-rsvp
// Removes one attendee; refuses when the count is already zero.
func (h *EventHandler) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.rsvps.CancelRSVP(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNothingToCancel) {
			writeError(w, http.StatusBadRequest, "No RSVPs to cancel")
			return
		}
		if h.writeStoreError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to cancel RSVP")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func (h *EventHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.WarnContext(r.Context(), "health check ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers unknown routes with a JSON body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource "+r.URL.Path+" not found")
}
