package agg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/reviewlens/schema"
)

func metric(iid int, state schema.MRState, ttm *float64, lines, reviewers int) schema.MRMetrics {
	m := schema.MRMetrics{
		IID:           iid,
		State:         state,
		CreatedAt:     created,
		TimeToMerge:   ttm,
		LinesAdded:    lines,
		ReviewerCount: reviewers,
	}
	if ttm != nil {
		mergedAt := created.Add(time.Duration(*ttm * float64(time.Hour)))
		m.MergedAt = &mergedAt
	}
	return m
}

func hoursPtr(h float64) *float64 { return &h }

func TestBuildTeamAnalyticsEmpty(t *testing.T) {
	a := BuildTeamAnalytics(nil)
	assert.Zero(t, a.TotalMRsAnalyzed)
	assert.Zero(t, a.AvgTimeToMerge)
	assert.Empty(t, a.WeeklyTrends)
}

func TestBuildTeamAnalyticsAverages(t *testing.T) {
	metrics := []schema.MRMetrics{
		metric(1, schema.MergedState, hoursPtr(2), 50, 1),
		metric(2, schema.MergedState, hoursPtr(6), 200, 2),
		metric(3, schema.OpenedState, nil, 1200, 0),
	}
	a := BuildTeamAnalytics(metrics)

	assert.Equal(t, 3, a.TotalMRsAnalyzed)
	assert.Equal(t, 2, a.MergedMRsAnalyzed)
	assert.Equal(t, 1, a.OpenMRsAnalyzed)

	// open change without a merge timestamp stays out of the denominator
	assert.InDelta(t, 4.0, a.AvgTimeToMerge, 1e-9)
	assert.InDelta(t, 1.0, a.AvgReviewersPerMR, 1e-9)

	assert.Equal(t, 1, a.MRsBySize.Small)
	assert.Equal(t, 1, a.MRsBySize.Medium)
	assert.Equal(t, 1, a.MRsBySize.XLarge)
	assert.Equal(t, 3, a.MRsBySize.Total())

	assert.Equal(t, 1, a.MRsByReviewers.None)
	assert.Equal(t, 1, a.MRsByReviewers.One)
	assert.Equal(t, 1, a.MRsByReviewers.Two)
}

func TestBuildTeamAnalyticsPhaseDurations(t *testing.T) {
	zero := 0.0
	m1 := metric(1, schema.MergedState, hoursPtr(10), 10, 1)
	m1.DraftDuration = hoursPtr(4)
	m1.ReviewDuration = hoursPtr(6)
	m2 := metric(2, schema.MergedState, hoursPtr(8), 10, 1)
	m2.DraftDuration = &zero
	m2.ReviewDuration = hoursPtr(8)

	a := BuildTeamAnalytics([]schema.MRMetrics{m1, m2})

	// zero-length phases do not drag the average down
	assert.InDelta(t, 4.0, a.AvgDraftDuration, 1e-9)
	assert.InDelta(t, 7.0, a.AvgReviewDuration, 1e-9)
}

func TestWeeklyTrends(t *testing.T) {
	// merged 8 days after creation, so the merge lands in the next
	// calendar week while the change still belongs to its creation week
	slowMerge := metric(1, schema.MergedState, hoursPtr(192), 100, 1)
	stillOpen := metric(2, schema.OpenedState, nil, 1000, 3)
	later := metric(3, schema.MergedState, hoursPtr(4), 200, 2)
	later.CreatedAt = created.AddDate(0, 0, 7)
	mergedLater := later.CreatedAt.Add(4 * time.Hour)
	later.MergedAt = &mergedLater

	trends := weeklyTrends([]schema.MRMetrics{later, slowMerge, stillOpen})
	assert.Len(t, trends, 2)

	assert.Equal(t, "2026-03-02", trends[0].Week)
	assert.Equal(t, 1, trends[0].MergedMRs)
	assert.InDelta(t, 550.0, trends[0].AvgLinesChanged, 1e-9)
	assert.InDelta(t, 2.0, trends[0].AvgReviewers, 1e-9)
	assert.InDelta(t, 192.0, trends[0].AvgTimeToMerge, 1e-9)

	assert.Equal(t, "2026-03-09", trends[1].Week)
	assert.Equal(t, 1, trends[1].MergedMRs)
	assert.InDelta(t, 200.0, trends[1].AvgLinesChanged, 1e-9)
}

func TestMergeExtremesAndLargest(t *testing.T) {
	var metrics []schema.MRMetrics
	for i := 1; i <= 8; i++ {
		metrics = append(metrics, metric(i, schema.MergedState, hoursPtr(float64(i)), i*100, 1))
	}
	a := BuildTeamAnalytics(metrics)

	assert.Len(t, a.FastestMerges, 5)
	assert.Len(t, a.SlowestMerges, 5)
	assert.Len(t, a.LargestMRs, 5)
	assert.Equal(t, 1, a.FastestMerges[0].IID)
	assert.Equal(t, 8, a.SlowestMerges[0].IID)
	assert.Equal(t, 8, a.LargestMRs[0].IID)
}
