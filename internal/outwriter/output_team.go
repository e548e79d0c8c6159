package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// WriteTeamResults outputs team analytics, dispatching based on the output format configured.
func WriteTeamResults(analytics schema.TeamAnalytics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analytics)
		}, "Wrote JSON")
	case schema.CSVOut:
		// CSV carries the weekly trend series, the part of the rollup
		// that makes sense as rows.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"week", "merged_mrs", "avg_time_to_merge_hours", "avg_lines_changed", "avg_reviewers"},
				func(cw *csv.Writer) error {
					return writeTeamTrendRows(cw, analytics.WeeklyTrends, fmtFloat, intFmt)
				})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamTable(analytics, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

func writeTeamTrendRows(w *csv.Writer, trends []schema.WeeklyTrend, fmtFloat func(float64) string, intFmt string) error {
	for _, t := range trends {
		rec := []string{
			t.Week,
			fmt.Sprintf(intFmt, t.MergedMRs),
			fmtFloat(t.AvgTimeToMerge),
			fmtFloat(t.AvgLinesChanged),
			fmtFloat(t.AvgReviewers),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeTeamTable(analytics schema.TeamAnalytics, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Team review activity for %s (%s)\n\n", cfg.Project, cfg.Timeframe); err != nil {
		return err
	}

	summary := [][]string{
		{"Changes analyzed", strconv.Itoa(analytics.TotalMRsAnalyzed)},
		{"Merged", strconv.Itoa(analytics.MergedMRsAnalyzed)},
		{"Open", strconv.Itoa(analytics.OpenMRsAnalyzed)},
		{"Draft", strconv.Itoa(analytics.DraftMRsAnalyzed)},
		{"Avg time to merge", formatHours(analytics.AvgTimeToMerge, fmtFloat)},
		{"Avg time to first review", formatHours(analytics.AvgTimeToFirstReview, fmtFloat)},
		{"Avg draft phase", formatHours(analytics.AvgDraftDuration, fmtFloat)},
		{"Avg review phase", formatHours(analytics.AvgReviewDuration, fmtFloat)},
		{"Avg reviewers per change", fmtFloat(analytics.AvgReviewersPerMR)},
		{"Avg comments per change", fmtFloat(analytics.AvgCommentsPerMR)},
		{"Avg lines added", fmtFloat(analytics.AvgLinesAddedPerMR)},
		{"Avg lines deleted", fmtFloat(analytics.AvgLinesDeletedPerMR)},
		{"Avg files changed", fmtFloat(analytics.AvgFilesChangedPerMR)},
	}
	summaryTable := tablewriter.NewWriter(writer)
	summaryTable.Header([]string{"Metric", "Value"})
	summaryTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := summaryTable.Bulk(summary); err != nil {
		return err
	}
	if err := summaryTable.Render(); err != nil {
		return err
	}

	if len(analytics.WeeklyTrends) > 0 {
		if _, err := fmt.Fprintf(writer, "\nWeekly trends\n"); err != nil {
			return err
		}
		trendTable := tablewriter.NewWriter(writer)
		trendTable.Header([]string{"Week", "Merged", "Avg TTM", "Avg Lines", "Avg Reviewers"})
		trendTable.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for _, t := range analytics.WeeklyTrends {
			rows = append(rows, []string{
				t.Week,
				strconv.Itoa(t.MergedMRs),
				formatHours(t.AvgTimeToMerge, fmtFloat),
				fmtFloat(t.AvgLinesChanged),
				fmtFloat(t.AvgReviewers),
			})
		}
		if err := trendTable.Bulk(rows); err != nil {
			return err
		}
		if err := trendTable.Render(); err != nil {
			return err
		}
	}

	size := analytics.MRsBySize
	if _, err := fmt.Fprintf(writer, "\nBy size: <100: %d | 100-499: %d | 500-999: %d | 1000+: %d\n",
		size.Small, size.Medium, size.Large, size.XLarge); err != nil {
		return err
	}
	rev := analytics.MRsByReviewers
	if _, err := fmt.Fprintf(writer, "By reviewers: 0: %d | 1: %d | 2: %d | 3: %d | 4+: %d\n",
		rev.None, rev.One, rev.Two, rev.Three, rev.FourPlus); err != nil {
		return err
	}

	if err := writeMergeSamples(writer, "Fastest merges", analytics.FastestMerges, cfg, fmtFloat); err != nil {
		return err
	}
	if err := writeMergeSamples(writer, "Slowest merges", analytics.SlowestMerges, cfg, fmtFloat); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeMergeSamples(writer io.Writer, title string, samples []schema.MRMetrics, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(samples) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(writer, "\n%s\n", title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Title", "Author", "TTM", "Lines"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	maxTitle := getMaxTableTitleWidth(cfg)
	for i, m := range samples {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(m.Title, maxTitle),
			m.Author,
			formatOptionalHours(m.TimeToMerge, fmtFloat),
			strconv.Itoa(m.TotalLines()),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
