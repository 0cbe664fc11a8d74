package router

import (
	"net/http"
	"strings"

	"github.com/gotejo/backend/internal/auth"
	"github.com/gotejo/backend/internal/dashboard"
	"github.com/gotejo/backend/internal/device"
	"github.com/gotejo/backend/internal/schedule"
)

// New returns an http.Handler that serves the session API under /api/v1.
func New(authHandler *auth.Handler, scheduleHandler *schedule.Handler, dashHandler *dashboard.Handler, deviceHandler *device.Handler) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"
	mux.HandleFunc(base+"/auth/register", authHandler.Register)
	mux.HandleFunc(base+"/auth/login", authHandler.Login)

	mux.HandleFunc(base+"/account/me", methodGET(dashHandler.GetMe))
	mux.HandleFunc(base+"/dashboard", methodGET(dashHandler.GetDashboard))

	mux.HandleFunc(base+"/schedules", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			scheduleHandler.List(w, r)
		case http.MethodPost:
			scheduleHandler.Create(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc(base+"/schedules/", scheduleHandler.Item)

	mux.HandleFunc(base+"/device-keys", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deviceHandler.ListKeys(w, r)
		case http.MethodPost:
			deviceHandler.CreateKey(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc(base+"/device-keys/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && strings.Count(r.URL.Path, "/") >= 4 {
			deviceHandler.DeleteKey(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return mux
}

func methodGET(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
