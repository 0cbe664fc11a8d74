package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/auth"
	"github.com/gotejo/backend/internal/models"
)

// Request/response JSON keeps the wire names the irrigation frontend already
// speaks: hora, duracao, dias_semana, ativo.

type EntryRequest struct {
	TimeOfDay       string `json:"hora"`
	DurationMinutes int    `json:"duracao"`
	Weekdays        string `json:"dias_semana"`
}

type ToggleRequest struct {
	Active bool `json:"ativo"`
}

type Handler struct {
	svc     Service
	authSvc auth.Service
	log     *slog.Logger
}

func NewHandler(svc Service, authSvc auth.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, authSvc: authSvc, log: log}
}

func (h *Handler) accountIDFromRequest(r *http.Request) (uuid.UUID, error) {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return uuid.Nil, errors.New("missing bearer token")
	}
	token := strings.TrimSpace(authz[len(prefix):])
	if token == "" {
		return uuid.Nil, errors.New("empty token")
	}
	return h.authSvc.ValidateToken(r.Context(), token)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/v1/schedules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	entries, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		h.log.Error("list schedules failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*models.ScheduleEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// POST /api/v1/schedules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.Create(r.Context(), accountID, req.TimeOfDay, req.DurationMinutes, req.Weekdays)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("create schedule failed", "error", err)
		http.Error(w, "create failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Item dispatches /api/v1/schedules/{id} (PUT, DELETE) and
// /api/v1/schedules/{id}/active (PUT).
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	last := parts[len(parts)-1]

	if last == "active" {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if len(parts) < 2 {
			http.Error(w, "invalid entry ID", http.StatusBadRequest)
			return
		}
		h.toggle(w, r, parts[len(parts)-2])
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, last)
	case http.MethodDelete:
		h.delete(w, r, last)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, idStr string) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.Update(r.Context(), id, accountID, req.TimeOfDay, req.DurationMinutes, req.Weekdays)
	if err != nil {
		h.writeEntryError(w, "update schedule failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, idStr string) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}
	if err := h.svc.Delete(r.Context(), id, accountID); err != nil {
		h.writeEntryError(w, "delete schedule failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, idStr string) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.svc.SetActive(r.Context(), id, accountID, req.Active); err != nil {
		h.writeEntryError(w, "toggle schedule failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeEntryError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "schedule entry not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error(logMsg, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
