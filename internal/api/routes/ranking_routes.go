package routes

import (
	"github.com/gorilla/mux"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/handlers"
)

// RegisterRankingRoutes registers ranking and period routes
func RegisterRankingRoutes(router *mux.Router, handler *handlers.RankingHandler) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// 순위
	rankings := v1.PathPrefix("/rankings").Subrouter()
	rankings.HandleFunc("/points", handler.Points).Methods("GET")
	rankings.HandleFunc("/bases/{base}/overall", handler.BaseOverall).Methods("GET")
	rankings.HandleFunc("/global", handler.Global).Methods("GET")
	rankings.HandleFunc("/podium", handler.Podium).Methods("GET")
	rankings.HandleFunc("/overview/{symbol}", handler.Overview).Methods("GET")

	// 기간
	v1.HandleFunc("/periods", handler.Periods).Methods("GET")
	v1.HandleFunc("/periods/latest", handler.LatestPeriod).Methods("GET")
}
