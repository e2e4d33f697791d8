package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/health"
)

// Health checks the health of the database connection
func (p *Pool) Health(ctx context.Context) *health.Status {
	start := time.Now()

	status := &health.Status{
		CheckedAt: start,
		Driver:    "postgres",
		Status:    health.StatusHealthy,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		status.Status = health.StatusUnhealthy
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(start).String()
		return status
	}

	stats := p.Stat()
	status.ActiveConns = stats.AcquiredConns()
	status.IdleConns = stats.IdleConns()
	status.TotalConns = stats.TotalConns()
	status.MaxConns = stats.MaxConns()
	status.ResponseTime = time.Since(start).String()

	// Check if connection pool is nearly exhausted
	if stats.AcquiredConns() >= stats.MaxConns()-2 {
		status.Status = health.StatusDegraded
		status.Error = "connection pool nearly exhausted"
	}

	return status
}
