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

// WriteDashboardResults outputs the workload dashboard, dispatching based on the output format configured.
func WriteDashboardResults(data schema.DashboardData, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, data)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w,
				[]string{"username", "open_mrs", "draft_mrs", "assigned_reviews", "review_complexity", "author_complexity", "workload_score"},
				func(cw *csv.Writer) error {
					return writeEngineerStatRows(cw, data.Engineers, fmtFloat, intFmt)
				})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTable(data, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

func writeEngineerStatRows(w *csv.Writer, stats []schema.EngineerStats, fmtFloat func(float64) string, intFmt string) error {
	for _, s := range stats {
		rec := []string{
			s.User.Username,
			fmt.Sprintf(intFmt, s.OpenMRs),
			fmt.Sprintf(intFmt, s.DraftMRs),
			fmt.Sprintf(intFmt, s.AssignedReviews),
			fmtFloat(s.ReviewComplexity),
			fmtFloat(s.AuthorComplexity),
			fmtFloat(s.WorkloadScore),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeDashboardTable(data schema.DashboardData, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Open review workload for %s (%d open changes)\n\n",
		cfg.Project, len(data.MergeRequests)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Engineer", "Open", "Draft", "Reviews", "Review Cx", "Author Cx", "Workload"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for _, s := range data.Engineers {
		rows = append(rows, []string{
			s.User.Username,
			strconv.Itoa(s.OpenMRs),
			strconv.Itoa(s.DraftMRs),
			strconv.Itoa(s.AssignedReviews),
			fmtFloat(s.ReviewComplexity),
			fmtFloat(s.AuthorComplexity),
			fmtFloat(s.WorkloadScore),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeComplexityTable(writer, data, cfg, fmtFloat); err != nil {
		return err
	}

	if data.NextReviewer != nil {
		if _, err := fmt.Fprintf(writer, "\nSuggested next reviewer: %s (workload %s)\n",
			data.NextReviewer.User.Username, fmtFloat(data.NextReviewer.WorkloadScore)); err != nil {
			return err
		}
	}
	if data.EstimatedComplexities > 0 {
		if _, err := fmt.Fprintf(writer, "Note: %d change(s) use estimated complexity, diff data was unavailable\n",
			data.EstimatedComplexities); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeComplexityTable(writer io.Writer, data schema.DashboardData, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(data.Complexities) == 0 {
		return nil
	}
	limit := cfg.ResultLimit
	if limit <= 0 || limit > len(data.Complexities) {
		limit = len(data.Complexities)
	}

	titles := map[int]string{}
	for _, mr := range data.MergeRequests {
		titles[mr.IID] = mr.Title
	}

	if _, err := fmt.Fprintf(writer, "\nHardest changes to review\n"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Title", "Files", "Lines", "Score", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	maxTitle := getMaxTableTitleWidth(cfg)
	label := contract.GetColorLabel
	if !cfg.UseColors {
		label = contract.GetPlainLabel
	}
	for i, cx := range data.Complexities[:limit] {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(titles[cx.IID], maxTitle),
			strconv.Itoa(cx.FilesChanged),
			strconv.Itoa(cx.TotalLines),
			fmtFloat(cx.Score),
			label(cx.Score),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
