package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MHmolesini/alphavantage-sub000/internal/infra/database/postgres"
)

var migrateDatabaseURL string

// migrateCmd PostgreSQL 스키마 마이그레이션
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL migrations for the fact table",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := migrateDatabaseURL
		if url == "" {
			url = cfg.Database.URL
		}
		if url == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		if err := postgres.Migrate(url); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "database-url", "", "override DATABASE_URL")
}
