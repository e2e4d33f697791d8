package cmd

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

func TestRenderPoints(t *testing.T) {
	var buf bytes.Buffer
	renderPoints(&buf, []ranking.Point{{
		Symbol:        "AAPL",
		Base:          "profitability",
		PeriodQuarter: "2024 T3",
		Concept:       "roe",
		Ranking:       decimal.RequireFromString("12.5"),
		PositionRank:  2,
	}})

	out := buf.String()
	assert.Contains(t, out, "PERIOD")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "12.5")
	assert.Contains(t, out, "2024 T3")
}

func TestRenderPodium(t *testing.T) {
	var buf bytes.Buffer
	renderPodium(&buf, []ranking.Podium{{Symbol: "MSFT", Gold: 3, Silver: 1, Bronze: 0}})

	out := buf.String()
	assert.Contains(t, out, "MSFT")
	assert.Contains(t, out, "GOLD")
	assert.Contains(t, out, "4")
}

func TestRenderPeriods(t *testing.T) {
	var buf bytes.Buffer
	renderPeriods(&buf, []string{"2024 T3", "2024 T2"})

	assert.Contains(t, buf.String(), "2024 T2")
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"points", "global", "podium", "periods", "migrate"} {
		assert.True(t, names[want], want)
	}
}
