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

// WriteEngineerResults outputs an engineer report, dispatching based on the output format configured.
func WriteEngineerResults(report schema.EngineerReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		// CSV carries the weekly activity series.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"week", "authored", "reviewed", "merged"},
				func(cw *csv.Writer) error {
					return writeActivityRows(cw, report.WeeklyActivity, intFmt)
				})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEngineerTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

func writeActivityRows(w *csv.Writer, weeks []schema.WeeklyActivity, intFmt string) error {
	for _, week := range weeks {
		rec := []string{
			week.Week,
			fmt.Sprintf(intFmt, week.Authored),
			fmt.Sprintf(intFmt, week.Reviewed),
			fmt.Sprintf(intFmt, week.Merged),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeEngineerTable(report schema.EngineerReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Engineer report for %s in %s (%s)\n\n",
		report.Username, cfg.Project, cfg.Timeframe); err != nil {
		return err
	}

	summary := [][]string{
		{"Authored", strconv.Itoa(len(report.AuthoredMRs))},
		{"Reviewed", strconv.Itoa(len(report.ReviewedMRs))},
		{"Merged", strconv.Itoa(len(report.MergedMRs))},
		{"Total comments received", strconv.Itoa(report.TotalComments)},
		{"Avg comments per change", fmtFloat(report.AvgCommentsPerMR)},
		{"Avg review cycles", fmtFloat(report.AvgReviewCycles)},
		{"Avg time to merge", formatHours(report.AvgTimeToMerge, fmtFloat)},
		{"Avg time to first comment", formatHours(report.AvgTimeToFirstComment, fmtFloat)},
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

	if len(report.WeeklyActivity) > 0 {
		if _, err := fmt.Fprintf(writer, "\nWeekly activity\n"); err != nil {
			return err
		}
		activityTable := tablewriter.NewWriter(writer)
		activityTable.Header([]string{"Week", "Authored", "Reviewed", "Merged"})
		activityTable.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for _, week := range report.WeeklyActivity {
			rows = append(rows, []string{
				week.Week,
				strconv.Itoa(week.Authored),
				strconv.Itoa(week.Reviewed),
				strconv.Itoa(week.Merged),
			})
		}
		if err := activityTable.Bulk(rows); err != nil {
			return err
		}
		if err := activityTable.Render(); err != nil {
			return err
		}
	}

	if err := writeCommentAnalysis(writer, report.CommentAnalysis, fmtFloat); err != nil {
		return err
	}
	if err := writeResponseTimes(writer, report.ResponseTimes, fmtFloat); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeCommentAnalysis(writer io.Writer, analysis schema.CommentAnalysisResult, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(writer, "\nFeedback quality score: %s/100 (%d comments analyzed)\n",
		fmtFloat(analysis.OverallScore), analysis.TotalComments); err != nil {
		return err
	}
	if len(analysis.TopIssues) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Category", "Count", "Share", "Severity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for _, issue := range analysis.TopIssues {
		rows = append(rows, []string{
			issue.Category,
			strconv.Itoa(issue.Count),
			fmtFloat(issue.Percentage) + "%",
			string(issue.Severity),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, rec := range analysis.Recommendations {
		if _, err := fmt.Fprintf(writer, "- %s: %s\n", rec.Principle, rec.Description); err != nil {
			return err
		}
	}
	return nil
}

func writeResponseTimes(writer io.Writer, times schema.ResponseTimeMetrics, fmtFloat func(float64) string) error {
	if times.TotalComments == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(writer, "\nResponse behavior: %s%% of %d comments answered, median %s (avg %s)\n",
		fmtFloat(times.ResponseRate), times.TotalComments,
		formatHours(times.MedianResponseTime, fmtFloat),
		formatHours(times.AvgResponseTime, fmtFloat)); err != nil {
		return err
	}
	d := times.Distribution
	_, err := fmt.Fprintf(writer, "Latency: <1h: %d | 1-4h: %d | 4-24h: %d | 1-3d: %d | >3d: %d\n",
		d.Under1Hour, d.Under4Hours, d.Under24Hours, d.Under3Days, d.Over3Days)
	return err
}
