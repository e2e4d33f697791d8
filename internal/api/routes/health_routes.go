package routes

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/handlers"
)

// RegisterHealthRoutes registers health and metrics routes
func RegisterHealthRoutes(router *mux.Router, handler *handlers.HealthHandler) {
	router.HandleFunc("/health", handler.Health).Methods("GET")
	router.HandleFunc("/health/live", handler.Live).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
