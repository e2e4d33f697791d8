package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

var pointsFlags struct {
	symbol  string
	base    string
	concept string
	window  int
	limit   int
	overall bool
}

// pointsCmd 개념별 / 베이스 종합 시계열
var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Point series by concept (or per-base Overall)",
	Long: `Prints the ranked point series for a base/concept.

Examples:
  go run ./cmd/rankctl points --base profitability --concept roe --window 4
  go run ./cmd/rankctl points --base growth --overall --symbol AAPL`,
	RunE: runPoints,
}

func init() {
	f := pointsCmd.Flags()
	f.StringVar(&pointsFlags.symbol, "symbol", "", "symbol (ranked against its peers)")
	f.StringVar(&pointsFlags.base, "base", "", "base table name")
	f.StringVar(&pointsFlags.concept, "concept", "", "concept (suffixes are normalized)")
	f.IntVar(&pointsFlags.window, "window", ranking.DefaultWindow, "rolling window: 1, 4, 8 or 12")
	f.IntVar(&pointsFlags.limit, "limit", 0, "row cap (0 = configured default)")
	f.BoolVar(&pointsFlags.overall, "overall", false, "rank the sum of every concept of --base")
}

func runPoints(cmd *cobra.Command, args []string) error {
	if pointsFlags.base != "" && !ranking.IsValidBase(pointsFlags.base) {
		return fmt.Errorf("unknown base %q", pointsFlags.base)
	}
	if pointsFlags.overall && pointsFlags.base == "" {
		return fmt.Errorf("--overall requires --base")
	}

	return withService(cmd.Context(), func(ctx context.Context, svc *rankingsvc.Service) error {
		var points []ranking.Point
		if pointsFlags.overall {
			points = svc.BaseOverall(ctx, rankingsvc.BaseOverallRequest{
				Base:   pointsFlags.base,
				Symbol: pointsFlags.symbol,
				Window: pointsFlags.window,
				Limit:  pointsFlags.limit,
			})
		} else {
			points = svc.Points(ctx, rankingsvc.PointsRequest{
				Symbol:  pointsFlags.symbol,
				Base:    pointsFlags.base,
				Concept: pointsFlags.concept,
				Window:  pointsFlags.window,
				Limit:   pointsFlags.limit,
			})
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), points)
		}
		renderPoints(cmd.OutOrStdout(), points)
		return nil
	})
}
