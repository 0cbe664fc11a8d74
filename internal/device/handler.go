package device

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/auth"
	"github.com/gotejo/backend/internal/middleware"
	"github.com/gotejo/backend/internal/models"
	"github.com/gotejo/backend/internal/schedule"
)

// Handler serves device key management (session-authenticated) and the
// controller polling endpoint (key-authenticated via middleware).
type Handler struct {
	repo        *Repository
	authSvc     auth.Service
	scheduleSvc schedule.Service
	log         *slog.Logger
}

func NewHandler(repo *Repository, authSvc auth.Service, scheduleSvc schedule.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{repo: repo, authSvc: authSvc, scheduleSvc: scheduleSvc, log: log}
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

// GET /api/v1/device-keys
func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	keys, err := h.repo.ListByAccountID(r.Context(), accountID)
	if err != nil {
		h.log.Error("list device keys failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

// POST /api/v1/device-keys
//
// The raw key is returned only here; the store keeps its SHA-256 hash and a
// short prefix for display.
func (h *Handler) CreateKey(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		http.Error(w, "key generation failed", http.StatusInternalServerError)
		return
	}
	rawKey := "gtj_" + hex.EncodeToString(rawBytes)
	hash := sha256.Sum256([]byte(rawKey))

	k := &models.DeviceKey{
		ID:        uuid.New(),
		AccountID: accountID,
		KeyHash:   hex.EncodeToString(hash[:]),
		KeyPrefix: rawKey[:12],
		IsActive:  true,
	}
	if err := h.repo.Create(r.Context(), k); err != nil {
		h.log.Error("create device key failed", "error", err)
		http.Error(w, "create failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         k.ID,
		"key_prefix": k.KeyPrefix,
		"is_active":  k.IsActive,
		"raw_key":    rawKey,
	})
}

// DELETE /api/v1/device-keys/{id}
func (h *Handler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	accountID, err := h.accountIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(strings.TrimRight(r.URL.Path, "/"), "/")
	keyID, err := uuid.Parse(parts[len(parts)-1])
	if err != nil {
		http.Error(w, "invalid key ID", http.StatusBadRequest)
		return
	}
	deleted, err := h.repo.Delete(r.Context(), keyID, accountID)
	if err != nil {
		h.log.Error("delete device key failed", "error", err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "device key not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status answers GET /api/esp32/status_rega for the account resolved by the
// X-API-Key middleware. The controller only needs the boolean verdict.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	acc := middleware.AccountFromCtx(r.Context())
	if acc == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"regar": false, "error": "unauthorized"})
		return
	}
	dec, err := h.scheduleSvc.Status(r.Context(), acc.ID)
	if err != nil {
		h.log.Error("device status failed", "account_id", acc.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"regar": false, "error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"regar": dec.Watering})
}
