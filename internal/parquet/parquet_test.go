package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/reviewlens/schema"
)

func TestMetricRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(MetricRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"iid",
		"title",
		"author",
		"state",
		"draft",
		"created_at",
		"merged_at",
		"time_to_merge_hours",
		"time_to_first_review_hours",
		"reviewer_count",
		"comment_count",
		"lines_added",
		"lines_deleted",
		"files_changed",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestThreadRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(ThreadRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"thread_id",
		"reviewer",
		"commented_at",
		"responded_at",
		"resolved",
		"response_hours",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertMetrics(t *testing.T) {
	ttm := 5.5
	mergedAt := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	metrics := []schema.MRMetrics{
		{
			IID:           7,
			Title:         "Harden retry loop",
			Author:        "alice",
			State:         schema.MergedState,
			CreatedAt:     mergedAt.Add(-6 * time.Hour),
			MergedAt:      &mergedAt,
			TimeToMerge:   &ttm,
			ReviewerCount: 2,
			CommentCount:  3,
			LinesAdded:    40,
			LinesDeleted:  12,
			FilesChanged:  4,
		},
	}

	rows := ConvertMetrics(metrics)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].IID)
	assert.Equal(t, "merged", rows[0].State)
	require.NotNil(t, rows[0].TimeToMergeHours)
	assert.InDelta(t, 5.5, *rows[0].TimeToMergeHours, 1e-9)
	assert.Nil(t, rows[0].TimeToFirstReviewHours)
	assert.Equal(t, int32(4), rows[0].FilesChanged)
}

func TestConvertThreads(t *testing.T) {
	at := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	responded := at.Add(2 * time.Hour)
	all := []schema.ResponseThread{
		{ID: "7-100", Reviewer: "bob", CommentedAt: at, RespondedAt: &responded, Resolved: true, ResponseHours: 2},
		{ID: "7-101", Reviewer: "bob", CommentedAt: at},
	}

	rows := ConvertThreads(all)
	require.Len(t, rows, 2)
	assert.Equal(t, "7-100", rows[0].ThreadID)
	assert.True(t, rows[0].Resolved)
	assert.False(t, rows[1].Resolved)
	assert.Nil(t, rows[1].RespondedAt)
}

func TestWriteMetricRowsParquet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.parquet")

	rows := ConvertMetrics([]schema.MRMetrics{
		{IID: 1, Title: "one", Author: "alice", State: schema.OpenedState, CreatedAt: time.Now()},
		{IID: 2, Title: "two", Author: "bob", State: schema.MergedState, CreatedAt: time.Now()},
	})
	require.NoError(t, WriteMetricRowsParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	back, err := parquet.Read[MetricRow](file, info.Size())
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "one", back[0].Title)
	assert.Equal(t, "bob", back[1].Author)
}
