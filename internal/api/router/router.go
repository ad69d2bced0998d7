package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vetnova/vetclinic-platform/internal/animals"
	"github.com/vetnova/vetclinic-platform/internal/dashboard"
	httpmiddleware "github.com/vetnova/vetclinic-platform/internal/http/middleware"
	"github.com/vetnova/vetclinic-platform/internal/invoices"
	"github.com/vetnova/vetclinic-platform/internal/owners"
	"github.com/vetnova/vetclinic-platform/internal/scheduling"
	"github.com/vetnova/vetclinic-platform/internal/treatments"
	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *scheduling.Handler
	OwnersHandler       *owners.Handler
	AnimalsHandler      *animals.Handler
	InvoicesHandler     *invoices.Handler
	TreatmentsHandler   *treatments.Handler
	DashboardHandler    *dashboard.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
	RateLimitPerSecond  float64
	RateLimitBurst      int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.AppointmentsHandler != nil {
		r.Mount("/appointments", cfg.AppointmentsHandler.Routes())
	}
	if cfg.OwnersHandler != nil {
		r.Mount("/owners", cfg.OwnersHandler.Routes())
	}
	if cfg.AnimalsHandler != nil {
		r.Mount("/animals", cfg.AnimalsHandler.Routes())
	}
	if cfg.InvoicesHandler != nil {
		r.Mount("/invoices", cfg.InvoicesHandler.Routes())
	}
	if cfg.TreatmentsHandler != nil {
		r.Mount("/treatments", cfg.TreatmentsHandler.Routes())
	}
	if cfg.DashboardHandler != nil {
		r.Mount("/dashboard", cfg.DashboardHandler.Routes())
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
