package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "parking_monitor/docs"
	"parking_monitor/internal/config"
	"parking_monitor/internal/handlers"
	"parking_monitor/internal/logger"
	"parking_monitor/internal/repository"
	"parking_monitor/internal/repository/db"
	"parking_monitor/internal/server"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title                       Parking Monitor API
// @version                     1.0
// @description                 Slot occupancy ingest and analytics for parking sensor devices.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml + PARKING_* env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB (admin accounts only; parking state lives in memory)
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, cfg.History.Cap)
	services := service.NewService(repos, serviceOptions(cfg), log)
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		AuthRequired:    cfg.Features.AuthRequired,
		Development:     cfg.IsDevelopment(),
		RateLimitPerSec: cfg.Ingest.RateLimitPerSec,
		RateBurst:       cfg.Ingest.RateBurst,
		StreamInterval:  cfg.Status.StreamInterval,
	})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bootstrapAdmin(ctx, services, cfg, log)

	// periodic status line (read-only)
	go services.StatusReporter.Run(ctx, cfg.Status.LogInterval)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	log.Infow("server_started",
		"addr", srv.Addr(),
		"env", cfg.Env,
		"auth_required", cfg.Features.AuthRequired,
		"extended_analytics", cfg.Features.ExtendedAnalytics,
		"history_cap", cfg.History.Cap,
	)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func serviceOptions(cfg *config.Config) service.Options {
	return service.Options{
		RecentLimit:       cfg.History.RecentLimit,
		PeakHours:         cfg.History.PeakHours,
		CivilOffset:       time.Duration(cfg.History.CivilOffsetHours) * time.Hour,
		ExtendedAnalytics: cfg.Features.ExtendedAnalytics,
		Auth: service.AuthOptions{
			SigningKey:       cfg.Auth.SigningKey,
			TokenTTL:         cfg.Auth.TokenTTL,
			MinPasswordLen:   cfg.Auth.MinPasswordLen,
			DefaultRole:      cfg.Auth.DefaultRole,
			MaxLoginFailures: cfg.Auth.MaxLoginFailures,
			LoginLockout:     cfg.Auth.LoginLockout,
		},
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "parking.db")
		dbPath = "parking.db"
	}
	return db.InitDB(dbPath)
}

// bootstrapAdmin seeds the configured admin account when it is missing.
func bootstrapAdmin(ctx context.Context, services *service.Service, cfg *config.Config, log *logger.Logger) {
	if cfg.Auth.BootstrapUsername == "" {
		return
	}
	created, err := services.EnsureAdmin(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword)
	if err != nil {
		log.Errorw("bootstrap_admin_failed", "username", cfg.Auth.BootstrapUsername, "err", err)
		return
	}
	if created {
		log.Infow("bootstrap_admin_created", "username", cfg.Auth.BootstrapUsername)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
