// Package api assembles the read-only HTTP surface.
package api

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/handlers"
	"github.com/MHmolesini/alphavantage-sub000/internal/api/middleware"
	"github.com/MHmolesini/alphavantage-sub000/internal/api/routes"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

// RouterConfig holds all dependencies for API routing
type RouterConfig struct {
	Service        *rankingsvc.Service
	Warehouse      handlers.HealthChecker
	Version        string
	DefaultWindow  int
	AllowedOrigins []string
	RequestTimeout time.Duration
	AccessLogger   *zerolog.Logger
}

// NewRouter creates the HTTP handler with middlewares and routes
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// Recoverer must be first
	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: cfg.AccessLogger,
		SkipPaths:    []string{"/health", "/health/live", "/metrics"},
	}))
	router.Use(chimw.Timeout(timeout))

	routes.RegisterHealthRoutes(router, handlers.NewHealthHandler(cfg.Warehouse, cfg.Version))
	routes.RegisterRankingRoutes(router, handlers.NewRankingHandler(cfg.Service, cfg.DefaultWindow))

	return middleware.CORS(cfg.AllowedOrigins)(router)
}
