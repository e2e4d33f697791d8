// Package cmd - rankctl CLI commands
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/logger"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

var (
	// 공통 플래그
	verbose    bool
	jsonOutput bool

	cfg *config.Config
)

// rootCmd 루트 커맨드
var rootCmd = &cobra.Command{
	Use:   "rankctl",
	Short: "Financial fact ranking - CLI",
	Long: `Financial fact ranking - CLI

Usage:
    go run ./cmd/rankctl [command]

Commands:
    points      concept / per-base point series
    global      global point series
    podium      gold / silver / bronze tallies
    periods     available periods
    migrate     apply PostgreSQL migrations
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute 루트 커맨드 실행
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(globalCmd)
	rootCmd.AddCommand(podiumCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initConfig loads .env / environment and sets up console logging
func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:          level,
		Format:         "pretty",
		ServiceName:    "rankctl",
		ServiceVersion: "1.0.0",
	})
}

// withService opens the configured warehouse for the duration of fn
func withService(ctx context.Context, fn func(ctx context.Context, svc *rankingsvc.Service) error) error {
	wh, err := warehouse.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer wh.Close()

	return fn(ctx, rankingsvc.NewService(wh.Source, rankingsvc.OptionsFromConfig(cfg.Ranking)))
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
