package cmd

import (
	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd exports raw review data to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw review metrics and threads to Parquet",
	Long: `Fetch per-change metrics and response threads, then write them to
Parquet files for analysis in pandas, DuckDB, or other columnar tools.

Two files are produced:
- Metrics: one row per merge request with timing and size columns
- Threads: one row per reviewer comment thread with response latency

Export always fetches fresh data and bypasses the result cache.

Examples:
  # Export a month of review data
  reviewlens export --project group/repo

  # Quarterly export to custom paths
  reviewlens export --project group/repo --timeframe 90d \
    --metrics-file q3-metrics.parquet --threads-file q3-threads.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		metricsFile := viper.GetString("metrics-file")
		threadsFile := viper.GetString("threads-file")
		if err := core.ExecuteReviewExport(rootCtx, cfg, sourceClient, cacheManager, metricsFile, threadsFile); err != nil {
			contract.LogFatal("Cannot export review data", err)
		}
	},
}
