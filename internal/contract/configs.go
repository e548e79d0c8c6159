package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/reviewlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultBatchSize   = 5
	MaxBatchSize       = 20
	DefaultBatchDelay  = 100 * time.Millisecond
	DefaultTimeout     = 60 * time.Second
)

// Sample sizes for per-engineer analysis. Comment classification reads
// notes from the most recent merge requests only, to bound API calls.
const (
	CommentSampleSize = 20
	ThreadSampleSize  = 15
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Project   string
	BaseURL   string
	Token     string // Please use env var as this is plaintext
	Timeframe schema.Timeframe

	ReviewerPool []string

	BatchSize  int
	BatchDelay time.Duration
	Timeout    time.Duration

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// Clone returns a copy of the config, safe to mutate for one request.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ReviewerPool = append([]string(nil), c.ReviewerPool...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Project        string `mapstructure:"project"`
	BaseURL        string `mapstructure:"base-url"`
	Token          string `mapstructure:"token"`
	Timeframe      string `mapstructure:"timeframe"`
	Reviewers      string `mapstructure:"reviewers"`
	BatchSize      int    `mapstructure:"batch-size"`
	BatchDelayMs   int    `mapstructure:"batch-delay-ms"`
	TimeoutSecs    int    `mapstructure:"timeout"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSourceInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSourceInputs processes the platform connection and fetch tuning fields.
func validateSourceInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Project = strings.TrimSpace(input.Project)
	if cfg.Project == "" {
		return fmt.Errorf("project is required (e.g. 'group/repo' or a numeric ID)")
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if cfg.BaseURL == "" {
		return fmt.Errorf("base-url is required (e.g. 'https://gitlab.example.com')")
	}
	cfg.Token = input.Token

	cfg.Timeframe = schema.Timeframe(strings.ToLower(input.Timeframe))
	if _, ok := schema.ValidTimeframes[cfg.Timeframe]; !ok {
		return fmt.Errorf("invalid timeframe '%s'. must be 7d, 30d, 90d", input.Timeframe)
	}

	cfg.ReviewerPool = nil
	if input.Reviewers != "" {
		for p := range strings.SplitSeq(input.Reviewers, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.ReviewerPool = append(cfg.ReviewerPool, trimmed)
			}
		}
	}

	if input.BatchSize <= 0 || input.BatchSize > MaxBatchSize {
		return fmt.Errorf("batch-size must be between 1 and %d (received %d)", MaxBatchSize, input.BatchSize)
	}
	cfg.BatchSize = input.BatchSize

	if input.BatchDelayMs < 0 {
		return fmt.Errorf("batch-delay-ms cannot be negative (received %d)", input.BatchDelayMs)
	}
	cfg.BatchDelay = time.Duration(input.BatchDelayMs) * time.Millisecond

	if input.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout must be greater than 0 (received %d)", input.TimeoutSecs)
	}
	cfg.Timeout = time.Duration(input.TimeoutSecs) * time.Second

	return nil
}

// validateOutputInputs processes the presentation fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
