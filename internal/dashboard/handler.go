package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/auth"
	"github.com/gotejo/backend/internal/schedule"
)

const (
	statusWatering = "Regando"
	statusWaiting  = "Aguardando"
)

type Handler struct {
	authSvc     auth.Service
	scheduleSvc schedule.Service
	loc         *time.Location
	log         *slog.Logger
}

func NewHandler(authSvc auth.Service, scheduleSvc schedule.Service, loc *time.Location, log *slog.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{authSvc: authSvc, scheduleSvc: scheduleSvc, loc: loc, log: log}
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

// GET /api/v1/account/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	acc, err := h.authSvc.GetAccount(r.Context(), accountID)
	if err != nil {
		h.log.Error("get account failed", "error", err)
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         acc.ID,
		"name":       acc.Name,
		"email":      acc.Email,
		"created_at": acc.CreatedAt,
	})
}

// GET /api/v1/dashboard
//
// Aggregates for the dashboard view: the caller's current watering verdict,
// the wall clock, and entry counts.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	dec, err := h.scheduleSvc.Status(r.Context(), accountID)
	if err != nil {
		h.log.Error("dashboard status failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	entries, err := h.scheduleSvc.List(r.Context(), accountID)
	if err != nil {
		h.log.Error("dashboard list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	active := 0
	for _, e := range entries {
		if e.Active {
			active++
		}
	}
	status := statusWaiting
	if dec.Watering {
		status = statusWatering
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          status,
		"duracao":         dec.DurationMinutes,
		"horario_atual":   time.Now().In(h.loc).Format("15:04:05 - 02/01/2006"),
		"total_horarios":  len(entries),
		"horarios_ativos": active,
	})
}

// GlobalStatus answers GET /status: the anonymous check across every active
// entry regardless of owner.
func (h *Handler) GlobalStatus(w http.ResponseWriter, r *http.Request) {
	dec, err := h.scheduleSvc.GlobalStatus(r.Context())
	if err != nil {
		h.log.Error("global status failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"regar":     dec.Watering,
		"duracao":   dec.DurationMinutes,
		"timestamp": time.Now().In(h.loc).Format(time.RFC3339),
	})
}

// Health answers GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
