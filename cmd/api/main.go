package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MHmolesini/alphavantage-sub000/internal/api"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/logger"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

const (
	serviceName    = "finrank-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("service", serviceName).
		Str("version", serviceVersion).
		Str("driver", cfg.Warehouse.Driver).
		Str("table", cfg.Warehouse.Table).
		Msg("🚀 Starting ranking API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warehouse (PostgreSQL or BigQuery)
	wh, err := warehouse.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open warehouse")
	}
	defer wh.Close()

	svc := rankingsvc.NewService(wh.Source, rankingsvc.OptionsFromConfig(cfg.Ranking))

	var accessLogger *zerolog.Logger
	if cfg.Logging.FileEnabled {
		l := logger.NewAccessLogger(cfg.Logging.FilePath, cfg.Logging.RotationSize, cfg.Logging.RetentionDays)
		accessLogger = &l
	}

	handler := api.NewRouter(api.RouterConfig{
		Service:        svc,
		Warehouse:      wh,
		Version:        serviceVersion,
		DefaultWindow:  cfg.Ranking.DefaultWindow,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		AccessLogger:   accessLogger,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", addr).
			Msg("🎯 API Server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("🛑 Shutdown signal received, stopping server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("👋 Ranking API server stopped")
}
