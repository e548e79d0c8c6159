// Package parquet provides data structures and functions for exporting
// review analytics data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/reviewlens/schema"
)

// MetricRow is the columnar form of one merge request's metric record.
type MetricRow struct {
	// IID is the change's sequential index within the project
	IID int64 `parquet:"iid,snappy"`

	// Title is the change title at analysis time
	Title string `parquet:"title,snappy"`

	// Author is the username of the change author
	Author string `parquet:"author,snappy"`

	// State is the lifecycle state at analysis time
	State string `parquet:"state,snappy"`

	// Draft marks changes still in draft
	Draft bool `parquet:"draft,snappy"`

	// CreatedAt is when the change was opened
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// MergedAt is when the change was merged (nullable)
	MergedAt *time.Time `parquet:"merged_at,optional,snappy"`

	// TimeToMergeHours is creation-to-merge latency (nullable)
	TimeToMergeHours *float64 `parquet:"time_to_merge_hours,optional,snappy"`

	// TimeToFirstReviewHours is creation-to-first-review latency (nullable)
	TimeToFirstReviewHours *float64 `parquet:"time_to_first_review_hours,optional,snappy"`

	// ReviewerCount is the number of assigned reviewers
	ReviewerCount int32 `parquet:"reviewer_count,snappy"`

	// CommentCount is the number of human review comments
	CommentCount int32 `parquet:"comment_count,snappy"`

	// LinesAdded and LinesDeleted are the diff line counts
	LinesAdded   int32 `parquet:"lines_added,snappy"`
	LinesDeleted int32 `parquet:"lines_deleted,snappy"`

	// FilesChanged is the number of files touched
	FilesChanged int32 `parquet:"files_changed,snappy"`
}

// ThreadRow is the columnar form of one reviewer response thread.
type ThreadRow struct {
	// ThreadID identifies the thread within its change
	ThreadID string `parquet:"thread_id,snappy"`

	// Reviewer is the username who left the comment
	Reviewer string `parquet:"reviewer,snappy"`

	// CommentedAt is when the reviewer commented
	CommentedAt time.Time `parquet:"commented_at,snappy"`

	// RespondedAt is when the author replied (nullable)
	RespondedAt *time.Time `parquet:"responded_at,optional,snappy"`

	// Resolved is true when an author reply was found
	Resolved bool `parquet:"resolved,snappy"`

	// ResponseHours is the reviewer-to-author latency, zero when unresolved
	ResponseHours float64 `parquet:"response_hours,snappy"`
}

// WriteMetricRowsParquet writes a slice of MetricRow structs to a Parquet file.
func WriteMetricRowsParquet(data []MetricRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteThreadRowsParquet writes a slice of ThreadRow structs to a Parquet file.
func WriteThreadRowsParquet(data []ThreadRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertMetrics converts schema.MRMetrics to MetricRow for Parquet export.
func ConvertMetrics(metrics []schema.MRMetrics) []MetricRow {
	result := make([]MetricRow, len(metrics))
	for i, m := range metrics {
		result[i] = MetricRow{
			IID:                    int64(m.IID),
			Title:                  m.Title,
			Author:                 m.Author,
			State:                  string(m.State),
			Draft:                  m.Draft,
			CreatedAt:              m.CreatedAt,
			MergedAt:               m.MergedAt,
			TimeToMergeHours:       m.TimeToMerge,
			TimeToFirstReviewHours: m.TimeToFirstReview,
			ReviewerCount:          int32(m.ReviewerCount),
			CommentCount:           int32(m.CommentCount),
			LinesAdded:             int32(m.LinesAdded),
			LinesDeleted:           int32(m.LinesDeleted),
			FilesChanged:           int32(m.FilesChanged),
		}
	}
	return result
}

// ConvertThreads converts schema.ResponseThread to ThreadRow for Parquet export.
func ConvertThreads(all []schema.ResponseThread) []ThreadRow {
	result := make([]ThreadRow, len(all))
	for i, t := range all {
		result[i] = ThreadRow{
			ThreadID:      t.ID,
			Reviewer:      t.Reviewer,
			CommentedAt:   t.CommentedAt,
			RespondedAt:   t.RespondedAt,
			Resolved:      t.Resolved,
			ResponseHours: t.ResponseHours,
		}
	}
	return result
}
