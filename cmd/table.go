package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/repocat/core"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/tablestore"
	"github.com/huangsam/repocat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tableSetup loads minimal configuration needed for store operations.
// It skips the classification settings that the store commands ignore.
func tableSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr
	cfg.Collection = viper.GetString("collection")
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// tableSetupWrapper wraps tableSetup and opens the store for PreRunE.
func tableSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := tableSetup(); err != nil {
		return err
	}
	return tablestore.InitTableStore(cfg.Backend, cfg.StoreDSN(), rootClock)
}

// tableCmd focused on table store management.
//
// Note: status, clear, export and migrate use tableSetup instead of the full
// sharedSetup, so they never need a table file.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the SQL table store",
	Long: `Store metrics tables in a database so later runs can classify without the file.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  import  - Load a .csv or .parquet table into the store
  status  - Show store statistics and connection info
  clear   - Remove all stored rows
  export  - Write stored rows to Parquet
  migrate - Run database schema migrations

Examples:
  # Import a table into the default SQLite file
  repocat table import metrics.csv --backend sqlite

  # Classify from the store
  repocat classify --backend sqlite --collection cncf`,
}

// tableImportCmd imports a table file into the store.
var tableImportCmd = &cobra.Command{
	Use:   "import <table>",
	Short: "Load a .csv or .parquet table into the store",
	Long: `Import a metrics table into the configured backend.

Rows of every collection found in the file replace the stored rows of that
collection in one transaction. Other collections are left untouched. Use
--collection to import a single collection.

Examples:
  repocat table import metrics.csv --backend sqlite
  REPOCAT_BACKEND=postgresql REPOCAT_DB_CONNECT="..." repocat table import metrics.parquet`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, true)
	},
	Run: runView(core.ExecuteImport, "Failed to import table"),
}

// tableStatusCmd shows store status.
var tableStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, schema version, stored row count, import times and
the collections currently stored.

Examples:
  repocat table status --backend sqlite`,
	PreRunE: tableSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := tablestore.Manager.GetTableStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get table status", err)
		}
		tablestore.PrintStoreStatus(os.Stdout, status)
	},
}

// tableClearCmd clears the store.
var tableClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored rows",
	Long: `Delete every stored row from the configured backend. The schema is kept.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  repocat table export --backend sqlite --output-file backup.parquet
  repocat table clear --backend sqlite`,
	PreRunE: tableSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := tablestore.Manager.GetTableStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear table store", err)
		}
		fmt.Println("Table store cleared successfully.")
	},
}

// tableExportCmd exports stored rows to Parquet.
var tableExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored rows to Parquet",
	Long: `Export the stored rows, or one collection with --collection, to a Parquet
file that 'repocat classify' and 'repocat table import' can read back.

Requires: --output-file parameter

Examples:
  repocat table export --backend sqlite --output-file metrics.parquet`,
	PreRunE: tableSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := tablestore.ExportTable(os.Stdout, tablestore.Manager.GetTableStore(), cfg.Collection, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export table", err)
		}
	},
}

// tableMigrateCmd runs schema migrations.
var tableMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Move the store schema to a specific version.

Migrations are applied automatically when the store is opened. Use this
command to roll back or to inspect the migration state.

  --target-version -1  migrate to the latest version (default)
  --target-version 0   roll back every migration
  --target-version N   migrate up or down to version N

Examples:
  repocat table migrate --backend sqlite
  repocat table migrate --backend sqlite --target-version 1`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return tableSetup()
	},
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := tablestore.MigrateTable(os.Stdout, cfg.Backend, cfg.StoreDSN(), target); err != nil {
			contract.LogFatal("Failed to migrate table store", err)
		}
	},
}
