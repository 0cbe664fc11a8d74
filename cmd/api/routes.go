package main

import (
	"net/http"

	"github.com/gotejo/backend/internal/dashboard"
	"github.com/gotejo/backend/internal/device"
	"github.com/gotejo/backend/internal/middleware"
)

// RegisterDeviceRoutes adds the endpoints that live outside the /api/v1
// session surface: the anonymous global status check, the health probe, and
// the controller poll behind X-API-Key auth.
func RegisterDeviceRoutes(
	mux *http.ServeMux,
	deviceRepo *device.Repository,
	deviceHandler *device.Handler,
	dashHandler *dashboard.Handler,
) {
	mux.HandleFunc("GET /status", dashHandler.GlobalStatus)
	mux.HandleFunc("GET /health", dashHandler.Health)

	keyAuth := middleware.DeviceKeyAuth(deviceRepo)
	mux.Handle("GET /api/esp32/status_rega", keyAuth(http.HandlerFunc(deviceHandler.Status)))
}
