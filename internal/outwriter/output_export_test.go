package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/reviewlens/schema"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteMetricsCSV(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	merged := created.Add(5 * time.Hour)
	ttm := 5.0
	metrics := []schema.MRMetrics{
		{
			IID: 41, Title: "Add retry loop", Author: "alice", State: schema.MergedState,
			CreatedAt: created, MergedAt: &merged, TimeToMerge: &ttm,
			ReviewerCount: 2, CommentCount: 3, LinesAdded: 120, LinesDeleted: 30, FilesChanged: 4,
		},
		{IID: 42, Title: "WIP refactor", Author: "bob", State: schema.OpenedState, Draft: true, CreatedAt: created},
	}

	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, WriteMetricsCSV(path, metrics))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "iid", rows[0][0])
	assert.Equal(t, []string{
		"41", "Add retry loop", "alice", "merged", "false",
		"2026-03-02T09:00:00Z", "2026-03-02T14:00:00Z", "5.00", "",
		"2", "3", "120", "30", "4",
	}, rows[1])
	assert.Equal(t, "true", rows[2][4])
	assert.Empty(t, rows[2][6])
}

func TestWriteThreadsCSV(t *testing.T) {
	commented := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	responded := commented.Add(90 * time.Minute)
	responseThreads := []schema.ResponseThread{
		{ID: "41-10", Reviewer: "bob", CommentedAt: commented, RespondedAt: &responded, Resolved: true, ResponseHours: 1.5},
		{ID: "41-11", Reviewer: "carol", CommentedAt: commented},
	}

	path := filepath.Join(t.TempDir(), "threads.csv")
	require.NoError(t, WriteThreadsCSV(path, responseThreads))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"41-10", "bob", "2026-03-02T09:00:00Z", "2026-03-02T10:30:00Z", "true", "1.50"}, rows[1])
	assert.Equal(t, []string{"41-11", "carol", "2026-03-02T09:00:00Z", "", "false", "0.00"}, rows[2])
}
