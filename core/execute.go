package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/internal/outwriter"
	"github.com/huangsam/reviewlens/internal/parquet"
	"github.com/huangsam/reviewlens/schema"
)

// stagePrinter reports analysis progress on stderr so that stdout stays
// clean for CSV and JSON consumers.
func stagePrinter() StageFunc {
	return func(stage string) {
		_, _ = fmt.Fprintf(os.Stderr, "🔎 %s...\n", stage)
	}
}

// ExecuteTeamReport runs the team-level analysis and prints results.
// It serves as the main entry point for the 'team' command.
func ExecuteTeamReport(ctx context.Context, cfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager) error {
	start := time.Now()
	analyzer := NewAnalyzer(cfg, client, mgr)
	analyzer.OnStage(stagePrinter())
	analytics, err := analyzer.TeamAnalytics(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteTeam(analytics, cfg, duration)
}

// ExecuteEngineerReport runs the per-engineer analysis and prints results.
// It serves as the main entry point for the 'engineer' command.
func ExecuteEngineerReport(ctx context.Context, cfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager, username string) error {
	start := time.Now()
	analyzer := NewAnalyzer(cfg, client, mgr)
	analyzer.OnStage(stagePrinter())
	report, err := analyzer.EngineerReport(ctx, username)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteEngineer(report, cfg, duration)
}

// ExecuteDashboard runs the open-review dashboard and prints results.
// It serves as the main entry point for the 'dashboard' command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager) error {
	start := time.Now()
	analyzer := NewAnalyzer(cfg, client, mgr)
	analyzer.OnStage(stagePrinter())
	data, err := analyzer.Dashboard(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDashboard(data, cfg, duration)
}

// ExecuteReviewExport fetches raw review metrics and writes them to Parquet
// files (or CSV with --output csv) for downstream analysis in pandas or DuckDB.
func ExecuteReviewExport(ctx context.Context, cfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager, metricsFile, threadsFile string) error {
	analyzer := NewAnalyzer(cfg, client, mgr)
	analyzer.OnStage(stagePrinter())
	metrics, responseThreads, err := analyzer.MetricsAndThreads(ctx)
	if err != nil {
		return err
	}

	if cfg.Output == schema.CSVOut {
		if err := outwriter.WriteMetricsCSV(metricsFile, metrics); err != nil {
			return fmt.Errorf("export metrics: %w", err)
		}
		fmt.Printf("💾 Wrote %d metric rows to %s\n", len(metrics), metricsFile)
		if err := outwriter.WriteThreadsCSV(threadsFile, responseThreads); err != nil {
			return fmt.Errorf("export threads: %w", err)
		}
		fmt.Printf("💾 Wrote %d thread rows to %s\n", len(responseThreads), threadsFile)
		return nil
	}

	metricRows := parquet.ConvertMetrics(metrics)
	if err := parquet.WriteMetricRowsParquet(metricRows, metricsFile); err != nil {
		return fmt.Errorf("export metrics: %w", err)
	}
	fmt.Printf("💾 Wrote %d metric rows to %s\n", len(metricRows), metricsFile)

	threadRows := parquet.ConvertThreads(responseThreads)
	if err := parquet.WriteThreadRowsParquet(threadRows, threadsFile); err != nil {
		return fmt.Errorf("export threads: %w", err)
	}
	fmt.Printf("💾 Wrote %d thread rows to %s\n", len(threadRows), threadsFile)

	return nil
}

// ExecuteScoringReference displays the formal scoring definitions.
// This is a static display that does not require any API calls.
func ExecuteScoringReference(_ context.Context, _ *contract.Config) error {
	return outwriter.PrintScoringReference()
}
