package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/database/postgres"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	engine "github.com/MHmolesini/alphavantage-sub000/internal/strategy/ranking"
)

// testPool connects to FINRANK_TEST_DATABASE_URL, skipping when unset
func testPool(t *testing.T) *postgres.Pool {
	t.Helper()

	url := os.Getenv("FINRANK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Integration test - requires PostgreSQL (FINRANK_TEST_DATABASE_URL)")
	}

	t.Setenv("DATABASE_URL", url)
	t.Setenv("WAREHOUSE_DRIVER", config.DriverPostgres)
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	require.NoError(t, postgres.Migrate(url))

	pool, err := postgres.NewPool(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPool_Health(t *testing.T) {
	pool := testPool(t)

	status := pool.Health(context.Background())
	require.NotNil(t, status)
	assert.Equal(t, "postgres", status.Driver)
	assert.NotEqual(t, "unhealthy", status.Status)
	assert.Greater(t, status.MaxConns, int32(0))
}

func TestFactRepository_RoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DELETE FROM development.base WHERE symbol IN ('ZZA', 'ZZB')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO development.base (symbol, base, period_quarter, concept, ranking) VALUES
			('ZZA', 'profitability', '2099 T1', 'roe_ttm', 3),
			('ZZA', 'profitability', '2099 T1', 'roe_var_4', 4),
			('ZZB', 'profitability', '2099 T1', 'roe', 9),
			('ZZB', 'profitability', '2099 T1', 'roa', 0)
	`)
	require.NoError(t, err)

	repo, err := postgres.NewFactRepository(pool.Pool, "development.base")
	require.NoError(t, err)

	facts, err := repo.Facts(ctx, ranking.FactFilter{Base: "profitability", Concept: "roe", Periods: []string{"2099 T1"}})
	require.NoError(t, err)
	assert.Len(t, facts, 3)

	latest, err := repo.LatestPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2099 T1", latest)

	points, err := repo.RankedPoints(ctx, ranking.FactFilter{Base: "profitability", Periods: []string{"2099 T1"}}, 4, 10)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "ZZB", points[0].Symbol)
	assert.Equal(t, 1, points[0].PositionRank)
	assert.True(t, points[1].Ranking.Equal(decimal.NewFromInt(7)))
}

func TestRankedPoints_MatchesEngine(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DELETE FROM development.base WHERE symbol IN ('ZZC', 'ZZD', 'ZZE')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO development.base (symbol, base, period_quarter, concept, ranking) VALUES
			('ZZC', 'growth', '2098 T1', 'sales_ttm_var_4', 5),
			('ZZC', 'growth', '2098 T2', 'sales_var_acum_2', 2.5),
			('ZZC', 'growth', '2098 T3', 'sales_acum', 1),
			('ZZC', 'growth', '2098 T3', 'ebitda_var_4_ttm', 6),
			('ZZD', 'growth', '2098 T1', 'sales', 3),
			('ZZD', 'growth', '2098 T2', 'sales_ttm', 4.5),
			('ZZD', 'growth', '2098 T3', 'sales_var_acum_12', 1),
			('ZZD', 'growth', '2098 T3', 'ebitda', 6),
			('ZZE', 'growth', '2098 T1', 'sales_ttm', 8),
			('ZZE', 'growth', '2098 T2', 'sales_ttm', 0),
			('ZZE', 'growth', '2098 T3', 'sales_var_4_acum', 2),
			('ZZE', 'growth', NULL, 'ebitda', 9)
	`)
	require.NoError(t, err)

	repo, err := postgres.NewFactRepository(pool.Pool, "development.base")
	require.NoError(t, err)

	filter := ranking.FactFilter{Base: "growth"}
	for _, window := range []int{1, 4, 8} {
		pushed, err := repo.RankedPoints(ctx, filter, window, 0)
		require.NoError(t, err)

		facts, err := repo.Facts(ctx, filter)
		require.NoError(t, err)
		local := engine.NewEngine().Points(facts, engine.PointOptions{Window: window})

		require.Len(t, pushed, len(local), "window %d", window)
		for i := range local {
			want, got := local[i], pushed[i]
			assert.Equal(t, want.Symbol, got.Symbol, "window %d row %d", window, i)
			assert.Equal(t, want.Base, got.Base, "window %d row %d", window, i)
			assert.Equal(t, want.PeriodQuarter, got.PeriodQuarter, "window %d row %d", window, i)
			assert.Equal(t, want.Concept, got.Concept, "window %d row %d", window, i)
			assert.Equal(t, want.PositionRank, got.PositionRank, "window %d row %d", window, i)
			assert.True(t, want.Ranking.Equal(got.Ranking), "window %d row %d: %s != %s", window, i, want.Ranking, got.Ranking)
		}
	}
}
