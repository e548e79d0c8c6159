// Package cmd defines the command-line interface for reviewlens.
package cmd

import (
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(engineerCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project path (e.g. 'group/repo') or numeric project ID")
	rootCmd.PersistentFlags().String("base-url", "https://gitlab.com", "Base URL of the GitLab instance")
	rootCmd.PersistentFlags().String("token", "", "API token (prefer REVIEWLENS_TOKEN env variable)")
	rootCmd.PersistentFlags().StringP("timeframe", "t", string(schema.Month), "Analysis window: 7d or 30d or 90d")
	rootCmd.PersistentFlags().String("reviewers", "", "Comma-separated usernames eligible for reviewer suggestions")
	rootCmd.PersistentFlags().Int("batch-size", contract.DefaultBatchSize, "Number of concurrent detail fetches per batch")
	rootCmd.PersistentFlags().Int("batch-delay-ms", int(contract.DefaultBatchDelay.Milliseconds()), "Pause between fetch batches in milliseconds")
	rootCmd.PersistentFlags().Int("timeout", int(contract.DefaultTimeout.Seconds()), "Overall operation timeout in seconds")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cacheClearCmd to Viper
	cacheClearCmd.Flags().String("kind", "", "Only clear one result kind: complexity, team, or engineer")
	cacheClearCmd.Flags().String("clear-project", "", "Only clear entries for this project")
	cacheClearCmd.Flags().String("clear-user", "", "Only clear engineer entries for this username")
	if err := viper.BindPFlags(cacheClearCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache clear flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("metrics-file", "review-metrics.parquet", "Path for the per-change metrics Parquet file")
	exportCmd.Flags().String("threads-file", "review-threads.parquet", "Path for the response-thread Parquet file")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
