package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gotejo/backend/internal/models"
)

type contextKey string

const ctxAccountKey contextKey = "account"

// DeviceKeyRepo is the interface used by device key auth middleware.
type DeviceKeyRepo interface {
	FindAccountByKeyHash(ctx context.Context, keyHash string) (*models.Account, error)
}

// DeviceKeyAuth authenticates controller requests by hashing the X-API-Key
// header value (SHA-256) and looking it up in device_keys. On success it sets
// the owning account into the request context.
//
// Failure responses carry {"regar": false} so a controller that ignores
// status codes still fails closed.
func DeviceKeyAuth(repo DeviceKeyRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if raw == "" {
				unauthorized(w, "missing X-API-Key header")
				return
			}

			acc, err := repo.FindAccountByKeyHash(r.Context(), hashKey(raw))
			if err != nil {
				unauthorized(w, "invalid api key")
				return
			}

			ctx := context.WithValue(r.Context(), ctxAccountKey, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromCtx returns the authenticated account or nil.
func AccountFromCtx(ctx context.Context) *models.Account {
	acc, _ := ctx.Value(ctxAccountKey).(*models.Account)
	return acc
}

// WithAccount returns a context carrying the given account.
func WithAccount(ctx context.Context, acc *models.Account) context.Context {
	return context.WithValue(ctx, ctxAccountKey, acc)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"regar": false, "error": "` + msg + `"}`))
}

func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
