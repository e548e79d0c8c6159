package agg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/reviewlens/schema"
)

func TestBuildEngineerStats(t *testing.T) {
	mrs := []schema.MergeRequest{
		{IID: 1, Author: alice, Reviewers: []schema.User{bob}},
		{IID: 2, Author: alice, Draft: true},
		{IID: 3, Author: bob, Reviewers: []schema.User{carol}, Assignees: []schema.User{alice}},
	}
	complexities := map[int]schema.MRComplexity{
		1: {IID: 1, Score: 2.0},
		3: {IID: 3, Score: 4.0},
		// IID 2 missing on purpose, falls back to the default score
	}

	stats := BuildEngineerStats(mrs, complexities)
	assert.Len(t, stats, 3)

	byName := map[string]schema.EngineerStats{}
	for _, s := range stats {
		byName[s.User.Username] = s
	}

	a := byName["alice"]
	assert.Equal(t, 1, a.OpenMRs)
	assert.Equal(t, 1, a.DraftMRs)
	assert.Zero(t, a.AssignedReviews)
	assert.InDelta(t, 3.0, a.AuthorComplexity, 1e-9)
	// 1*1 + 1*0.5 + 3*0.3
	assert.InDelta(t, 2.4, a.WorkloadScore, 1e-9)

	b := byName["bob"]
	assert.Equal(t, 1, b.OpenMRs)
	assert.Equal(t, 1, b.AssignedReviews)
	assert.InDelta(t, 2.0, b.ReviewComplexity, 1e-9)
	assert.InDelta(t, 4.0, b.AuthorComplexity, 1e-9)
	// 1*2 + 1*1 + 2*0.5 + 4*0.3
	assert.InDelta(t, 5.2, b.WorkloadScore, 1e-9)

	c := byName["carol"]
	assert.Equal(t, 1, c.AssignedReviews)
	assert.InDelta(t, 4.0, c.ReviewComplexity, 1e-9)

	// sorted busiest first
	assert.Equal(t, "bob", stats[0].User.Username)
}

func TestBuildEngineerStatsDeterministicOrder(t *testing.T) {
	mrs := []schema.MergeRequest{
		{IID: 1, Author: alice},
		{IID: 2, Author: bob},
	}
	cx := map[int]schema.MRComplexity{1: {Score: 1}, 2: {Score: 1}}
	for range 10 {
		stats := BuildEngineerStats(mrs, cx)
		assert.Equal(t, "alice", stats[0].User.Username) // tied scores break by username
		assert.Equal(t, "bob", stats[1].User.Username)
	}
}

func TestWeeksFor(t *testing.T) {
	assert.Equal(t, 2, WeeksFor(schema.Week))
	assert.Equal(t, 5, WeeksFor(schema.Month))
	assert.Equal(t, 13, WeeksFor(schema.Quarter))
}

func TestBuildWeeklyActivity(t *testing.T) {
	now := created // Wednesday 2026-03-04
	lastWeek := created.AddDate(0, 0, -7)
	authored := []schema.MergeRequest{
		mergedMR(1, alice, 2*time.Hour),
		{IID: 2, Author: alice, State: schema.OpenedState, CreatedAt: lastWeek},
	}
	reviewed := []schema.MergeRequest{
		{IID: 3, Author: bob, CreatedAt: lastWeek},
	}

	weeks := BuildWeeklyActivity(authored, reviewed, now, 2)
	assert.Len(t, weeks, 2)
	assert.Equal(t, "2026-02-23", weeks[0].Week)
	assert.Equal(t, 1, weeks[0].Authored)
	assert.Equal(t, 1, weeks[0].Reviewed)
	assert.Equal(t, "2026-03-02", weeks[1].Week)
	assert.Equal(t, 1, weeks[1].Authored)
	assert.Equal(t, 1, weeks[1].Merged)
	assert.Zero(t, weeks[1].Reviewed)
}

func TestBuildEngineerAverages(t *testing.T) {
	samples := []MRNotes{
		{
			MR: schema.MergeRequest{IID: 1, CreatedAt: created},
			Notes: []schema.Note{
				{Author: bob, Body: "this condition looks inverted", CreatedAt: created.Add(2 * time.Hour)},
				{Author: carol, Body: "needs a clearer name", CreatedAt: created.Add(3 * time.Hour)},
			},
		},
		{MR: schema.MergeRequest{IID: 2, CreatedAt: created}},
	}

	avg := BuildEngineerAverages(samples, "alice")
	assert.Equal(t, 2, avg.TotalComments)
	assert.InDelta(t, 1.0, avg.AvgCommentsPerMR, 1e-9)
	assert.InDelta(t, 1.0, avg.AvgReviewCycles, 1e-9)
	// only the change that received comments contributes
	assert.InDelta(t, 2.0, avg.AvgTimeToFirstComment, 1e-9)
}

func TestBuildEngineerAveragesEmpty(t *testing.T) {
	avg := BuildEngineerAverages(nil, "alice")
	assert.Zero(t, avg.AvgCommentsPerMR)
	assert.Zero(t, avg.AvgTimeToFirstComment)
}

func TestAvgTimeToMerge(t *testing.T) {
	mrs := []schema.MergeRequest{
		mergedMR(1, alice, 2*time.Hour),
		mergedMR(2, alice, 6*time.Hour),
		{IID: 3, Author: alice, State: schema.OpenedState, CreatedAt: created},
	}
	assert.InDelta(t, 4.0, AvgTimeToMerge(mrs), 1e-9)
	assert.Zero(t, AvgTimeToMerge(nil))
}
