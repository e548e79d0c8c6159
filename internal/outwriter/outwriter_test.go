package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Project:      "grp/repo",
		Timeframe:    schema.Month,
		Precision:    1,
		Width:        120,
		ResultLimit:  25,
		Output:       schema.TextOut,
		CacheBackend: schema.SQLiteBackend,
	}
}

func sampleAnalytics() schema.TeamAnalytics {
	return schema.TeamAnalytics{
		TotalMRsAnalyzed:  3,
		MergedMRsAnalyzed: 2,
		OpenMRsAnalyzed:   1,
		AvgTimeToMerge:    4.5,
		AvgCommentsPerMR:  1.5,
		WeeklyTrends: []schema.WeeklyTrend{
			{Week: "2026-03-02", MergedMRs: 2, AvgTimeToMerge: 4.5, AvgLinesChanged: 120, AvgReviewers: 1.5},
		},
		MRsBySize:      schema.SizeDistribution{Small: 2, Medium: 1},
		MRsByReviewers: schema.ReviewerDistribution{One: 2, None: 1},
		FastestMerges: []schema.MRMetrics{
			{IID: 1, Title: "Fix flaky retry", Author: "alice", TimeToMerge: ptr(2.0), LinesAdded: 10},
		},
	}
}

func ptr(v float64) *float64 { return &v }

func TestWriteTeamTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	err := writeTeamTable(sampleAnalytics(), testConfig(), fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Team review activity for grp/repo (30d)")
	assert.Contains(t, out, "Avg time to merge")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "Fastest merges")
	assert.Contains(t, out, "Fix flaky retry")
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteTeamCSVRows(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	w := csv.NewWriter(&buf)
	err := writeTeamTrendRows(w, sampleAnalytics().WeeklyTrends, fmtFloat, intFmt)
	w.Flush()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"2026-03-02", "2", "4.5", "120.0", "1.5"}, records[0])
}

func TestWriteEngineerTable(t *testing.T) {
	report := schema.EngineerReport{
		Username:       "alice",
		AuthoredMRs:    []schema.MergeRequest{{IID: 1}},
		TotalComments:  4,
		AvgTimeToMerge: 6,
		WeeklyActivity: []schema.WeeklyActivity{{Week: "2026-03-02", Authored: 1}},
		CommentAnalysis: schema.CommentAnalysisResult{
			TotalComments: 4,
			OverallScore:  62.5,
			TopIssues: []schema.TopIssue{
				{Category: "Testing", Count: 2, Percentage: 50, Severity: schema.HighSeverity},
			},
			Recommendations: []schema.Recommendation{
				{Principle: "Test-Driven Development", Description: "Code should be thoroughly tested with appropriate test coverage"},
			},
		},
		ResponseTimes: schema.ResponseTimeMetrics{
			TotalComments:      4,
			RespondedComments:  3,
			ResponseRate:       75,
			MedianResponseTime: 3,
			AvgResponseTime:    5,
			Distribution:       schema.ResponseDistribution{Under4Hours: 2, Under24Hours: 1},
		},
	}

	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	err := writeEngineerTable(report, testConfig(), fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Engineer report for alice")
	assert.Contains(t, out, "Weekly activity")
	assert.Contains(t, out, "Feedback quality score: 62.5/100")
	assert.Contains(t, out, "Test-Driven Development")
	assert.Contains(t, out, "75.0% of 4 comments answered")
}

func TestWriteDashboardTable(t *testing.T) {
	data := schema.DashboardData{
		MergeRequests: []schema.MergeRequest{
			{IID: 1, Title: "Add request tracing", Author: schema.User{Username: "alice"}},
		},
		Complexities: []schema.MRComplexity{
			{IID: 1, FilesChanged: 3, TotalLines: 250, Score: 2.7},
		},
		Engineers: []schema.EngineerStats{
			{User: schema.User{Username: "alice"}, OpenMRs: 1, WorkloadScore: 1.5},
		},
		NextReviewer:          &schema.EngineerStats{User: schema.User{Username: "bob"}, WorkloadScore: 0.5},
		EstimatedComplexities: 1,
	}

	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	err := writeDashboardTable(data, testConfig(), fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Open review workload for grp/repo")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Add request tracing")
	assert.Contains(t, out, "Suggested next reviewer: bob")
	assert.Contains(t, out, "estimated complexity")
}

func TestWriteDashboardCSVRows(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	w := csv.NewWriter(&buf)
	stats := []schema.EngineerStats{
		{User: schema.User{Username: "alice"}, OpenMRs: 2, AssignedReviews: 1, ReviewComplexity: 1.2, AuthorComplexity: 3.4, WorkloadScore: 5.0},
	}
	err := writeEngineerStatRows(w, stats, fmtFloat, intFmt)
	w.Flush()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"alice", "2", "0", "1", "1.2", "3.4", "5.0"}, records[0])
}

func TestFormatHours(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "4.5h", formatHours(4.5, fmtFloat))
	assert.Equal(t, "3.0d", formatHours(72, fmtFloat))
	assert.Equal(t, "-", formatOptionalHours(nil, fmtFloat))
	assert.Equal(t, "2.0h", formatOptionalHours(ptr(2.0), fmtFloat))
}

func TestParquetGoesThroughExport(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	err := WriteTeamResults(schema.TeamAnalytics{}, cfg, 0)
	assert.ErrorIs(t, err, errParquetUnsupported)
}
