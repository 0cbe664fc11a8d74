package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/models"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type stubDeviceKeyRepo struct {
	account *models.Account
	err     error
}

func (s *stubDeviceKeyRepo) FindAccountByKeyHash(_ context.Context, _ string) (*models.Account, error) {
	return s.account, s.err
}

// okHandler writes 200 and the account email (for assertions).
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	acc := AccountFromCtx(r.Context())
	if acc != nil {
		w.Write([]byte(acc.Email))
	}
	w.WriteHeader(http.StatusOK)
})

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDeviceKeyAuth_ValidKey(t *testing.T) {
	account := &models.Account{
		ID:    uuid.New(),
		Email: "esp32@example.com",
	}
	repo := &stubDeviceKeyRepo{account: account}

	mw := DeviceKeyAuth(repo)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/esp32/status_rega", nil)
	req.Header.Set("X-API-Key", "gtj_valid-test-key")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); body != account.Email {
		t.Errorf("expected account email %q in body, got %q", account.Email, body)
	}
}

func TestDeviceKeyAuth_MissingHeader(t *testing.T) {
	repo := &stubDeviceKeyRepo{}
	mw := DeviceKeyAuth(repo)(okHandler)

	cases := []struct {
		name   string
		header string
	}{
		{"no header at all", ""},
		{"blank header", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/esp32/status_rega", nil)
			if tc.header != "" {
				req.Header.Set("X-API-Key", tc.header)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"regar": false`) {
				t.Errorf("401 body must carry regar=false, got %q", rec.Body.String())
			}
		})
	}
}

func TestDeviceKeyAuth_InvalidOrRevokedKey(t *testing.T) {
	repo := &stubDeviceKeyRepo{err: errors.New("not found")}
	mw := DeviceKeyAuth(repo)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/esp32/status_rega", nil)
	req.Header.Set("X-API-Key", "gtj_revoked-or-invalid")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"regar": false`) {
		t.Errorf("401 body must carry regar=false, got %q", rec.Body.String())
	}
}
