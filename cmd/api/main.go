package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/cors"

	"github.com/gotejo/backend/internal/auth"
	"github.com/gotejo/backend/internal/config"
	"github.com/gotejo/backend/internal/dashboard"
	"github.com/gotejo/backend/internal/device"
	"github.com/gotejo/backend/internal/migrations"
	"github.com/gotejo/backend/internal/router"
	"github.com/gotejo/backend/internal/schedule"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Unknown timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := runMigrations(ctx, cfg.DatabaseDSN); err != nil {
		slog.Error("Migrations failed. If the error is 'connection refused', start PostgreSQL first (e.g. make dev-up)", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations applied")

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("Unable to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("Cannot reach PostgreSQL", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to PostgreSQL database successfully!")

	authRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(authRepo, cfg.JWTSecret, cfg.InviteCode, cfg.TokenValidity)
	authHandler := auth.NewHandler(authSvc, logger)

	scheduleRepo := schedule.NewRepository(pool)
	scheduleSvc := schedule.NewService(scheduleRepo, loc)
	scheduleHandler := schedule.NewHandler(scheduleSvc, authSvc, logger)

	deviceRepo := device.NewRepository(pool)
	deviceHandler := device.NewHandler(deviceRepo, authSvc, scheduleSvc, logger)

	dashHandler := dashboard.NewHandler(authSvc, scheduleSvc, loc, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", router.New(authHandler, scheduleHandler, dashHandler, deviceHandler))
	RegisterDeviceRoutes(mux, deviceRepo, deviceHandler, dashHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
	}).Handler(mux)

	slog.Info("Starting HTTP server", "addr", cfg.HTTPAddr, "timezone", cfg.Timezone)
	if err := http.ListenAndServe(cfg.HTTPAddr, corsHandler); err != nil {
		slog.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}

// runMigrations applies the embedded goose migrations over a short-lived
// database/sql connection; the pgx pool is used for everything else.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
