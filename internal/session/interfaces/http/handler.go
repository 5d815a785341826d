package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"playcafe-cloud/internal/observability/metrics"
	sessionapp "playcafe-cloud/internal/session/application"
	session "playcafe-cloud/internal/session/domain"
)

// Handler serves session lifecycle routes under /api/v1/sessions.
type Handler struct {
	service  *sessionapp.SessionService
	clock    sessionapp.Clock
	location *time.Location
}

// NewHandler constructs a handler. location anchors manually entered
// wall-clock times to the current business day.
func NewHandler(service *sessionapp.SessionService, clock sessionapp.Clock, location *time.Location) (*Handler, error) {
	if service == nil {
		return nil, errors.New("session handler: nil service")
	}
	if clock == nil {
		clock = sessionapp.SystemClock{}
	}
	if location == nil {
		location = time.Local
	}
	return &Handler{service: service, clock: clock, location: location}, nil
}

// ServeHTTP routes session requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/sessions" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleManualAdd(w, r)
		case http.MethodDelete:
			h.handleClearAll(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if path == "/api/v1/sessions/start" && r.Method == http.MethodPost {
		h.handleStart(w, r)
		return
	}
	if path == "/api/v1/sessions/stop-all" && r.Method == http.MethodPost {
		h.handleStopAll(w, r)
		return
	}
	if rest, ok := strings.CutPrefix(path, "/api/v1/sessions/"); ok {
		h.handleByID(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConsoleName string `json:"console_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	started := time.Now()
	record, err := h.service.Start(r.Context(), req.ConsoleName)
	metrics.ObserveSessionOp("start", err == nil, time.Since(started))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, sessionResponse(record))
}

func (h *Handler) handleManualAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConsoleName string `json:"console_name"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	start, err := h.anchorWallClock(req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	end, err := h.anchorWallClock(req.EndTime)
	if err != nil {
		http.Error(w, "invalid end_time", http.StatusBadRequest)
		return
	}

	began := time.Now()
	record, err := h.service.ManualAdd(r.Context(), req.ConsoleName, start, end)
	metrics.ObserveSessionOp("manual_add", err == nil, time.Since(began))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, sessionResponse(record))
}

func (h *Handler) handleStopAll(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	stopped, err := h.service.StopAll(r.Context())
	metrics.ObserveSessionOp("stop_all", err == nil, time.Since(started))
	if err != nil {
		// Earlier records in the batch are already completed; report
		// the failing session so the caller can remediate.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result := make([]map[string]any, 0, len(stopped))
	for i := range stopped {
		result = append(result, sessionResponse(&stopped[i]))
	}
	writeJSON(w, map[string]any{"stopped": result})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	consoleName := r.URL.Query().Get("console")
	status := session.Status(r.URL.Query().Get("status"))
	if status != "" && !session.ValidStatus(status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	sessions, err := h.service.List(r.Context(), consoleName, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	result := make([]map[string]any, 0, len(sessions))
	for i := range sessions {
		result = append(result, sessionResponse(&sessions[i]))
	}
	writeJSON(w, map[string]any{"sessions": result})
}

func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	err := h.service.ClearAll(r.Context())
	metrics.ObserveSessionOp("clear_all", err == nil, time.Since(started))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(parts) == 2 && parts[1] == "stop" && r.Method == http.MethodPost {
		h.handleStop(w, r, id)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, sessionResponse(record))
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request, id string) {
	started := time.Now()
	record, err := h.service.Stop(r.Context(), id)
	metrics.ObserveSessionOp("stop", err == nil, time.Since(started))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, sessionResponse(record))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	started := time.Now()
	err := h.service.Delete(r.Context(), id)
	metrics.ObserveSessionOp("delete", err == nil, time.Since(started))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// anchorWallClock turns an "HH:MM" wall-clock string into a timestamp
// on the current business day. Overnight reinterpretation happens in
// the service, not here.
func (h *Handler) anchorWallClock(raw string) (time.Time, error) {
	if raw == "" {
		// The service reports the missing time as a validation error.
		return time.Time{}, nil
	}
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, err
	}
	now := h.clock.Now().In(h.location)
	return time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, h.location), nil
}

func sessionResponse(s *session.Session) map[string]any {
	resp := map[string]any{
		"id":           s.ID,
		"console_name": s.ConsoleName,
		"start_time":   s.StartTime,
		"status":       string(s.Status),
		"created_at":   s.CreatedAt,
	}
	if s.Status == session.StatusCompleted {
		resp["end_time"] = s.EndTime
		resp["duration"] = s.DurationHours
		resp["price"] = s.Price
	}
	return resp
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, session.ErrConsoleBusy), errors.Is(err, session.ErrNotRunning):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, session.ErrEmptyConsole),
		errors.Is(err, session.ErrMissingTime),
		errors.Is(err, session.ErrEndBeforeStart):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
