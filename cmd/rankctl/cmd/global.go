package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

var globalFlags struct {
	symbol string
	window int
	limit  int
}

// globalCmd 전체 종합 시계열
var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "Point series ranked across every base and concept",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *rankingsvc.Service) error {
			points := svc.Global(ctx, rankingsvc.GlobalRequest{
				Symbol: globalFlags.symbol,
				Window: globalFlags.window,
				Limit:  globalFlags.limit,
			})

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), points)
			}
			renderPoints(cmd.OutOrStdout(), points)
			return nil
		})
	},
}

func init() {
	f := globalCmd.Flags()
	f.StringVar(&globalFlags.symbol, "symbol", "", "symbol (ranked against its peers)")
	f.IntVar(&globalFlags.window, "window", ranking.DefaultWindow, "rolling window: 1, 4, 8 or 12")
	f.IntVar(&globalFlags.limit, "limit", 0, "row cap (0 = configured default)")
}
