// Package cmd defines the command-line interface for repocat.
package cmd

import (
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(thresholdsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the table subcommands to the parent table command
	tableCmd.AddCommand(tableImportCmd)
	tableCmd.AddCommand(tableStatusCmd)
	tableCmd.AddCommand(tableClearCmd)
	tableCmd.AddCommand(tableExportCmd)
	tableCmd.AddCommand(tableMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("strategy", string(schema.StandardStrategy), "Classification strategy: standard or scaled or median")
	rootCmd.PersistentFlags().StringP("collection", "c", "", "Only use projects of this collection")
	rootCmd.PersistentFlags().String("category", "", "Only show projects with this label")
	rootCmd.PersistentFlags().String("as-of", "", "Instant day counts are measured from (RFC3339, YYYY-MM-DD or time ago)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print the metric columns of each project")
	rootCmd.PersistentFlags().Bool("group", false, "Order projects by category display order")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display (0 means all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 means auto-detect)")
	rootCmd.PersistentFlags().String("backend", string(schema.NoneBackend), "Table store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of tableMigrateCmd to Viper
	tableMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(tableMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding table migrate flags", err)
	}
}
