package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seedgen [command]",
	Short: "Ecommerce demo data seeder: generate and upsert sample rows into PostgreSQL",
	Long:  `Generates referentially consistent ecommerce sample data (customers, products, variants, orders, order items) and upserts it into a PostgreSQL schema that feeds the downstream analytics pipeline. Re-runs are idempotent per upsert key.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
