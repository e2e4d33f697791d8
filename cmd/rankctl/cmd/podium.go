package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

var podiumFlags struct {
	base     string
	concept  string
	window   int
	periods  []string
	grouping string
}

// podiumCmd 메달 집계
var podiumCmd = &cobra.Command{
	Use:   "podium",
	Short: "Gold / silver / bronze tallies per symbol",
	Long: `Ranks each target period independently and counts podium places.
Without --periods the latest period is used.

Examples:
  go run ./cmd/rankctl podium --periods "2024 T2,2024 T3"
  go run ./cmd/rankctl podium --base valuation --grouping base`,
	RunE: runPodium,
}

func init() {
	f := podiumCmd.Flags()
	f.StringVar(&podiumFlags.base, "base", "", "base table name")
	f.StringVar(&podiumFlags.concept, "concept", "", "concept (suffixes are normalized)")
	f.IntVar(&podiumFlags.window, "window", ranking.DefaultWindow, "rolling window: 1, 4, 8 or 12")
	f.StringSliceVar(&podiumFlags.periods, "periods", nil, "target periods (default: latest)")
	f.StringVar(&podiumFlags.grouping, "grouping", string(ranking.GroupByConcept), "concept, base or global")
}

func runPodium(cmd *cobra.Command, args []string) error {
	if podiumFlags.base != "" && !ranking.IsValidBase(podiumFlags.base) {
		return fmt.Errorf("unknown base %q", podiumFlags.base)
	}

	return withService(cmd.Context(), func(ctx context.Context, svc *rankingsvc.Service) error {
		podium := svc.Podium(ctx, rankingsvc.PodiumRequest{
			Base:     podiumFlags.base,
			Concept:  podiumFlags.concept,
			Window:   podiumFlags.window,
			Periods:  podiumFlags.periods,
			Grouping: ranking.ParseGrouping(podiumFlags.grouping),
		})

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), podium)
		}
		renderPodium(cmd.OutOrStdout(), podium)
		return nil
	})
}
