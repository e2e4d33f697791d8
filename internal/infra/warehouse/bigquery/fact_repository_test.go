package bigquery

import (
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

func TestFactRow_ToFact(t *testing.T) {
	row := factRow{
		Symbol:        bigquery.NullString{StringVal: "AAPL", Valid: true},
		Base:          bigquery.NullString{StringVal: "profitability", Valid: true},
		PeriodQuarter: bigquery.NullString{StringVal: "2024 T3", Valid: true},
		Concept:       bigquery.NullString{StringVal: "roe_ttm", Valid: true},
		Ranking:       bigquery.NullString{StringVal: "12.5", Valid: true},
	}

	f, err := row.toFact()
	require.NoError(t, err)
	assert.Equal(t, "AAPL", f.Symbol)
	assert.True(t, f.Ranking.Valid)
	assert.Equal(t, "12.5", f.Ranking.Decimal.String())
	assert.True(t, f.Qualifies())
}

func TestFactRow_NullRanking(t *testing.T) {
	row := factRow{
		Symbol:        bigquery.NullString{StringVal: "AAPL", Valid: true},
		PeriodQuarter: bigquery.NullString{StringVal: "2024 T3", Valid: true},
	}

	f, err := row.toFact()
	require.NoError(t, err)
	assert.False(t, f.Ranking.Valid)
	assert.False(t, f.Qualifies())
}

func TestFactRow_BadRanking(t *testing.T) {
	row := factRow{Ranking: bigquery.NullString{StringVal: "n/a", Valid: true}}

	_, err := row.toFact()
	assert.Error(t, err)
}

func TestPointRow_ToPoint(t *testing.T) {
	p, err := pointRow{
		Symbol:        "MSFT",
		Base:          "growth",
		PeriodQuarter: "2024 T1",
		Concept:       "revenueGrowth",
		Ranking:       "42",
		PositionRank:  3,
	}.toPoint()
	require.NoError(t, err)
	assert.Equal(t, 3, p.PositionRank)
	assert.Equal(t, "42", p.Ranking.String())
}

func TestNewFactRepository_RejectsBadTable(t *testing.T) {
	_, err := NewFactRepository(&Client{}, "dev.base`; --")
	assert.ErrorIs(t, err, ranking.ErrInvalidTable)
}
