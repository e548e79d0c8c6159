package outwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/reviewlens/schema"
)

// WriteMetricsCSV writes per-change metric rows to path. It is the CSV
// counterpart of the Parquet export.
func WriteMetricsCSV(path string, metrics []schema.MRMetrics) error {
	return writeCSVFile(path, []string{
		"iid", "title", "author", "state", "draft", "created_at", "merged_at",
		"time_to_merge_hours", "time_to_first_review_hours",
		"reviewer_count", "comment_count", "lines_added", "lines_deleted", "files_changed",
	}, func(w *csv.Writer) error {
		for _, m := range metrics {
			row := []string{
				strconv.Itoa(m.IID),
				m.Title,
				m.Author,
				string(m.State),
				strconv.FormatBool(m.Draft),
				m.CreatedAt.Format(time.RFC3339),
				formatOptionalTime(m.MergedAt),
				formatOptionalFloat(m.TimeToMerge),
				formatOptionalFloat(m.TimeToFirstReview),
				strconv.Itoa(m.ReviewerCount),
				strconv.Itoa(m.CommentCount),
				strconv.Itoa(m.LinesAdded),
				strconv.Itoa(m.LinesDeleted),
				strconv.Itoa(m.FilesChanged),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteThreadsCSV writes response-thread rows to path.
func WriteThreadsCSV(path string, responseThreads []schema.ResponseThread) error {
	return writeCSVFile(path, []string{
		"thread_id", "reviewer", "commented_at", "responded_at", "resolved", "response_hours",
	}, func(w *csv.Writer) error {
		for _, th := range responseThreads {
			row := []string{
				th.ID,
				th.Reviewer,
				th.CommentedAt.Format(time.RFC3339),
				formatOptionalTime(th.RespondedAt),
				strconv.FormatBool(th.Resolved),
				strconv.FormatFloat(th.ResponseHours, 'f', 2, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSVFile(path string, header []string, writeRows func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	return writeCSVWithHeader(file, header, writeRows)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}
