package contract

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/repocat/schema"
	"github.com/jackc/pgx/v5"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // no limit
	MaxResultLimit     = 100000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a classification run.
// This struct remains the "final, validated" config.
type Config struct {
	SourcePath  string // CSV or Parquet file; empty means the table store
	Collection  string
	Category    schema.Category
	Strategy    schema.Strategy
	Now         time.Time // instant all derived day counts are measured from
	ResultLimit int
	Workers     int
	Detail      bool
	Group       bool // Order results by category display order
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourcePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Strategy   string `mapstructure:"strategy"`
	Collection string `mapstructure:"collection"`
	Category   string `mapstructure:"category"`
	AsOf       string `mapstructure:"as-of"`
	OutputFile string `mapstructure:"output-file"`
	Limit      int    `mapstructure:"limit"`
	Workers    int    `mapstructure:"workers"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	Detail     bool   `mapstructure:"detail"`
	Group      bool   `mapstructure:"group"`
	Width      int    `mapstructure:"width"`
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Color      string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// StoreDSN returns the connection string for the configured backend,
// falling back to the default SQLite file.
func (c *Config) StoreDSN() string {
	if c.Backend == schema.SQLiteBackend && c.DBConnect == "" {
		return GetDBFilePath()
	}
	return c.DBConnect
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. The clock supplies "now" unless
// an explicit as-of instant is given.
func ProcessAndValidate(cfg *Config, clk clock.Clock, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processAsOf(cfg, clk, input); err != nil {
		return err
	}
	if err := processCategory(cfg, input); err != nil {
		return err
	}
	return processSourcePath(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		dsn, err := mysql.ParseDSN(connStr)
		if err != nil {
			return fmt.Errorf("invalid MySQL connection string: %w", err)
		}
		if dsn.DBName == "" {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		pgCfg, err := pgx.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("invalid PostgreSQL connection string: %w", err)
		}
		if pgCfg.Database == "" {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the table store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := input.Backend
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Collection = strings.TrimSpace(input.Collection)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Group = input.Group
	cfg.Width = input.Width

	// Parse color flag
	color := input.Color
	if color == "" {
		color = "yes"
	}
	colors, err := ParseBoolString(color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Strategy Validation ---
	strategy := input.Strategy
	if strategy == "" {
		strategy = string(schema.StandardStrategy)
	}
	cfg.Strategy = schema.Strategy(strings.ToLower(strategy))
	if _, ok := schema.ValidStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid strategy '%s'. must be standard, scaled, median", input.Strategy)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processAsOf resolves the instant derived metrics are measured from.
func processAsOf(cfg *Config, clk clock.Clock, input *ConfigRawInput) error {
	now, err := ParseAsOf(input.AsOf, clk.Now())
	if err != nil {
		return fmt.Errorf("invalid as-of value '%s'. Expected RFC3339, YYYY-MM-DD or 'N [units] ago': %w", input.AsOf, err)
	}
	cfg.Now = now
	return nil
}

// processCategory resolves the category filter against the labels of the strategy.
func processCategory(cfg *Config, input *ConfigRawInput) error {
	want := strings.TrimSpace(input.Category)
	if want == "" {
		cfg.Category = ""
		return nil
	}
	for _, c := range schema.CategoryOrder(cfg.Strategy) {
		if strings.EqualFold(string(c), want) {
			cfg.Category = c
			return nil
		}
	}
	return fmt.Errorf("category '%s' is not a label of the %s strategy", input.Category, cfg.Strategy)
}

// processSourcePath checks the positional table path, if any.
func processSourcePath(cfg *Config, input *ConfigRawInput) error {
	cfg.SourcePath = strings.TrimSpace(input.SourcePathStr)
	if cfg.SourcePath == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(cfg.SourcePath)) {
	case ".csv", ".parquet":
		return nil
	default:
		return fmt.Errorf("unsupported table file '%s'. must end in .csv or .parquet", cfg.SourcePath)
	}
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateOverrides applies per-request overrides on top of an already
// validated config. Empty values keep the config as it is. A relative as-of
// is measured from the config's current instant.
func RevalidateOverrides(cfg *Config, path, strategy, category, asOf string) error {
	if strategy != "" {
		s := schema.Strategy(strings.ToLower(strings.TrimSpace(strategy)))
		if _, ok := schema.ValidStrategies[s]; !ok {
			return fmt.Errorf("invalid strategy '%s'. must be standard, scaled, median", strategy)
		}
		cfg.Strategy = s
	}
	if asOf != "" {
		now, err := ParseAsOf(asOf, cfg.Now)
		if err != nil {
			return fmt.Errorf("invalid as-of value '%s': %w", asOf, err)
		}
		cfg.Now = now
	}
	if category == "" {
		category = string(cfg.Category)
	}
	if err := processCategory(cfg, &ConfigRawInput{Category: category}); err != nil {
		return err
	}
	if path != "" {
		return processSourcePath(cfg, &ConfigRawInput{SourcePathStr: path})
	}
	return nil
}
