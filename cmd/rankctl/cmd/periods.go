package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

var periodsLatest bool

// periodsCmd 기간 목록
var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List available periods, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *rankingsvc.Service) error {
			out := cmd.OutOrStdout()

			if periodsLatest {
				latest := svc.LatestPeriod(ctx)
				if jsonOutput {
					return printJSON(out, map[string]string{"period": latest})
				}
				fmt.Fprintln(out, latest)
				return nil
			}

			periods := svc.Periods(ctx)
			if jsonOutput {
				return printJSON(out, periods)
			}
			renderPeriods(out, periods)
			return nil
		})
	},
}

func init() {
	periodsCmd.Flags().BoolVar(&periodsLatest, "latest", false, "print only the latest period")
}
