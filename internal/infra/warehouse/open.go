// Package warehouse selects and opens the configured fact source.
package warehouse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/database/postgres"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse/bigquery"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/health"
)

// Warehouse is an opened fact source plus its health probe
type Warehouse struct {
	Source ranking.FactSource
	Driver string

	health func(ctx context.Context) *health.Status
	close  func()
}

// Health reports the underlying connection's health
func (w *Warehouse) Health(ctx context.Context) *health.Status {
	return w.health(ctx)
}

// Close releases the underlying connection
func (w *Warehouse) Close() {
	if w.close != nil {
		w.close()
	}
}

// Open connects to the warehouse selected by cfg.Warehouse.Driver
func Open(ctx context.Context, cfg *config.Config) (*Warehouse, error) {
	switch cfg.Warehouse.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewFactRepository(pool.Pool, cfg.Warehouse.Table)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Warehouse{Source: repo, Driver: cfg.Warehouse.Driver, health: pool.Health, close: pool.Close}, nil

	case config.DriverBigQuery:
		client, err := bigquery.NewClient(ctx, cfg.BigQuery)
		if err != nil {
			return nil, err
		}
		repo, err := bigquery.NewFactRepository(client, cfg.Warehouse.Table)
		if err != nil {
			client.Close()
			return nil, err
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close BigQuery client")
			}
		}
		return &Warehouse{Source: repo, Driver: cfg.Warehouse.Driver, health: client.Health, close: closeClient}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ranking.ErrUnsupportedDriver, cfg.Warehouse.Driver)
	}
}
