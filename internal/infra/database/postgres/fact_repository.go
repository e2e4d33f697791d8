package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse/query"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/metrics"
)

const driverName = "postgres"

// FactRepository PostgreSQL 팩트 저장소 (ranking.FactSource, ranking.PointRanker)
type FactRepository struct {
	pool    *pgxpool.Pool
	builder *query.Builder
}

// NewFactRepository 팩트 저장소 생성
func NewFactRepository(pool *pgxpool.Pool, table string) (*FactRepository, error) {
	builder, err := query.NewBuilder(table, query.Postgres)
	if err != nil {
		return nil, err
	}
	return &FactRepository{pool: pool, builder: builder}, nil
}

// Facts 필터에 맞는 팩트 조회
func (r *FactRepository) Facts(ctx context.Context, filter ranking.FactFilter) ([]ranking.Fact, error) {
	defer metrics.ObserveQuery(driverName, "facts", time.Now())

	sql, args, err := r.builder.Facts(filter)
	if err != nil {
		return nil, fmt.Errorf("build facts query: %w", err)
	}

	var facts []ranking.Fact
	if err := pgxscan.Select(ctx, r.pool, &facts, sql, args...); err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}

	log.Debug().
		Str("symbol", filter.Symbol).
		Str("base", filter.Base).
		Str("concept", filter.Concept).
		Int("count", len(facts)).
		Msg("Loaded facts")

	return facts, nil
}

// Periods 기간 목록 (내림차순)
func (r *FactRepository) Periods(ctx context.Context) ([]string, error) {
	defer metrics.ObserveQuery(driverName, "periods", time.Now())

	sql, args, err := r.builder.Periods()
	if err != nil {
		return nil, fmt.Errorf("build periods query: %w", err)
	}

	var periods []string
	if err := pgxscan.Select(ctx, r.pool, &periods, sql, args...); err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	return periods, nil
}

// LatestPeriod 최신 기간
func (r *FactRepository) LatestPeriod(ctx context.Context) (string, error) {
	defer metrics.ObserveQuery(driverName, "latest_period", time.Now())

	sql, args, err := r.builder.LatestPeriod()
	if err != nil {
		return "", fmt.Errorf("build latest period query: %w", err)
	}

	var period *string
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&period); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ranking.ErrNoData
		}
		return "", fmt.Errorf("query latest period: %w", err)
	}
	if period == nil {
		return "", ranking.ErrNoData
	}
	return *period, nil
}

// RankedPoints 순위 계산을 PostgreSQL window function으로 수행
func (r *FactRepository) RankedPoints(ctx context.Context, filter ranking.FactFilter, window int, limit int) ([]ranking.Point, error) {
	defer metrics.ObserveQuery(driverName, "ranked_points", time.Now())

	sql, args, err := r.builder.RankedPoints(filter, window, limit)
	if err != nil {
		return nil, fmt.Errorf("build ranked points query: %w", err)
	}

	var points []ranking.Point
	if err := pgxscan.Select(ctx, r.pool, &points, sql, args...); err != nil {
		return nil, fmt.Errorf("query ranked points: %w", err)
	}
	return points, nil
}
