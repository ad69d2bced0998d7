package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vetnova/vetclinic-platform/internal/animals"
	"github.com/vetnova/vetclinic-platform/internal/api/router"
	appconfig "github.com/vetnova/vetclinic-platform/internal/config"
	"github.com/vetnova/vetclinic-platform/internal/dashboard"
	"github.com/vetnova/vetclinic-platform/internal/invoices"
	"github.com/vetnova/vetclinic-platform/internal/observability/metrics"
	"github.com/vetnova/vetclinic-platform/internal/owners"
	"github.com/vetnova/vetclinic-platform/internal/scheduling"
	"github.com/vetnova/vetclinic-platform/internal/treatments"
	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting vetclinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	var (
		ownerRepo     owners.Repository
		animalRepo    animals.Repository
		invoiceRepo   invoices.Repository
		treatmentRepo treatments.Repository
		archive       scheduling.Archive
		statsSource   dashboard.StatsSource
	)

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		logger.Info("using postgres storage")

		ownerRepo = owners.NewPostgresRepository(pool)
		animalRepo = animals.NewPostgresRepository(pool)
		invoiceRepo = invoices.NewPostgresRepository(pool)
		treatmentRepo = treatments.NewPostgresRepository(pool)
		archive = scheduling.NewPostgresArchive(pool)
		statsSource = dashboard.NewStatsRepository(pool)
	} else {
		logger.Info("no DATABASE_URL set, using in-memory storage", "archive", cfg.ArchivePath)
		ownerRepo = owners.NewInMemoryRepository()
		animalRepo = animals.NewInMemoryRepository()
		invoiceRepo = invoices.NewInMemoryRepository()
		treatmentRepo = treatments.NewDefaultCatalog()
		if cfg.ArchivePath != "" {
			archive = scheduling.NewCSVArchive(cfg.ArchivePath)
		}
	}

	// Scheduling engine
	rooms := make([]scheduling.Room, 0, len(cfg.Rooms))
	for _, room := range cfg.Rooms {
		rooms = append(rooms, scheduling.Room{ID: room.ID, Label: room.Label})
	}

	store := scheduling.NewMemoryStore(archive)
	if err := store.Restore(ctx); err != nil {
		logger.Error("failed to restore appointments from archive", "error", err)
		os.Exit(1)
	}

	schedulingMetrics := metrics.NewSchedulingMetrics(nil)
	engine := scheduling.NewEngine(
		store,
		scheduling.NewFirstFitPolicy(rooms),
		ownerRepo,
		animalRepo,
		scheduling.EngineConfig{
			Hours: scheduling.BusinessHours{
				Opening:  cfg.OpeningTime,
				Closing:  cfg.ClosingTime,
				Weekdays: cfg.BookableWeekdays,
			},
			MinSlot: cfg.MinSlotDuration,
		},
		logger.WithComponent("scheduling"),
		schedulingMetrics,
	)

	if statsSource == nil {
		statsSource = dashboard.NewLocalStatsSource(ownerRepo, animalRepo, invoiceRepo, engine)
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		AppointmentsHandler: scheduling.NewHandler(engine, logger.WithComponent("appointments")),
		OwnersHandler:       owners.NewHandler(ownerRepo, logger.WithComponent("owners")),
		AnimalsHandler:      animals.NewHandler(animalRepo, logger.WithComponent("animals")),
		InvoicesHandler:     invoices.NewHandler(invoiceRepo, logger.WithComponent("invoices")),
		TreatmentsHandler:   treatments.NewHandler(treatmentRepo, logger.WithComponent("treatments")),
		DashboardHandler:    dashboard.NewHandler(statsSource, logger.WithComponent("dashboard")),
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
