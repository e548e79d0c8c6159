package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

var (
	alice = schema.User{ID: 1, Username: "alice"}
	bob   = schema.User{ID: 2, Username: "bob"}

	anchor = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
)

// fakeSource serves canned merge request data and counts calls.
type fakeSource struct {
	mrs     []schema.MergeRequest
	notes   map[int][]schema.Note
	changes map[int]schema.MRChanges

	listCalls    int
	changesCalls int
	failChanges  map[int]bool
}

func (f *fakeSource) ListMergeRequests(_ context.Context, _ string, opts contract.ListMROptions) ([]schema.MergeRequest, error) {
	f.listCalls++
	if opts.State == schema.AnyState || opts.State == "" {
		return f.mrs, nil
	}
	var out []schema.MergeRequest
	for _, mr := range f.mrs {
		if mr.State == opts.State {
			out = append(out, mr)
		}
	}
	return out, nil
}

func (f *fakeSource) ListNotes(_ context.Context, _ string, iid int) ([]schema.Note, error) {
	return f.notes[iid], nil
}

func (f *fakeSource) GetChanges(_ context.Context, _ string, iid int) (schema.MRChanges, error) {
	f.changesCalls++
	if f.failChanges[iid] {
		return schema.MRChanges{}, errors.New("diff unavailable")
	}
	return f.changes[iid], nil
}

type fakeManager struct{ store contract.CacheStore }

func (m *fakeManager) GetResultStore() contract.CacheStore { return m.store }

func newTestAnalyzer(src *fakeSource) (*Analyzer, *memStore) {
	cfg := &contract.Config{
		Project:   "grp/repo",
		Timeframe: schema.Month,
		BatchSize: contract.DefaultBatchSize,
	}
	store := newMemStore()
	a := NewAnalyzer(cfg, src, &fakeManager{store: store})
	a.now = func() time.Time { return anchor }
	a.cache.now = a.now
	return a, store
}

func sampleDiff() schema.MRChanges {
	return schema.MRChanges{Changes: []schema.FileChange{
		{Diff: "@@ -1,3 +1,4 @@\n line1\n-old\n+new\n+added\n line3"},
	}}
}

func TestTeamAnalyticsEndToEnd(t *testing.T) {
	mergedAt := anchor.Add(-24 * time.Hour)
	src := &fakeSource{
		mrs: []schema.MergeRequest{
			{IID: 1, Author: alice, State: schema.MergedState, CreatedAt: mergedAt.Add(-4 * time.Hour), MergedAt: &mergedAt, Reviewers: []schema.User{bob}},
			{IID: 2, Author: bob, State: schema.OpenedState, CreatedAt: anchor.Add(-2 * time.Hour)},
		},
		notes: map[int][]schema.Note{
			1: {{ID: 10, Author: bob, Body: "please simplify this helper", CreatedAt: mergedAt.Add(-2 * time.Hour)}},
		},
		changes: map[int]schema.MRChanges{1: sampleDiff(), 2: sampleDiff()},
	}
	a, _ := newTestAnalyzer(src)

	var stages []string
	a.OnStage(func(s string) { stages = append(stages, s) })

	analytics, err := a.TeamAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalMRsAnalyzed)
	assert.Equal(t, 1, analytics.MergedMRsAnalyzed)
	assert.Equal(t, 1, analytics.OpenMRsAnalyzed)
	assert.InDelta(t, 4.0, analytics.AvgTimeToMerge, 1e-9)
	assert.InDelta(t, 0.5, analytics.AvgCommentsPerMR, 1e-9)
	assert.Equal(t, 2, analytics.MRsBySize.Small)
	assert.Contains(t, stages, StageFetchMRs)
	assert.Contains(t, stages, StageAggregate)

	// second run is served from cache without touching the source
	calls := src.listCalls
	again, err := a.TeamAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.TotalMRsAnalyzed, again.TotalMRsAnalyzed)
	assert.Equal(t, calls, src.listCalls)
}

func TestTeamAnalyticsCacheExpires(t *testing.T) {
	src := &fakeSource{changes: map[int]schema.MRChanges{}}
	a, _ := newTestAnalyzer(src)

	_, err := a.TeamAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.listCalls)

	later := anchor.Add(TeamTTL + time.Minute)
	a.now = func() time.Time { return later }
	a.cache.now = a.now
	_, err = a.TeamAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls)
}

func TestEngineerReportEndToEnd(t *testing.T) {
	mergedAt := anchor.Add(-24 * time.Hour)
	createdAt := mergedAt.Add(-6 * time.Hour)
	src := &fakeSource{
		mrs: []schema.MergeRequest{
			{IID: 1, Author: alice, State: schema.MergedState, CreatedAt: createdAt, MergedAt: &mergedAt},
			{IID: 2, Author: bob, State: schema.OpenedState, CreatedAt: anchor.Add(-3 * time.Hour), Reviewers: []schema.User{alice}},
		},
		notes: map[int][]schema.Note{
			1: {
				{ID: 10, Author: bob, Body: "missing test coverage for the failure path", CreatedAt: createdAt.Add(time.Hour)},
				{ID: 11, Author: alice, Body: "fixed", CreatedAt: createdAt.Add(3 * time.Hour)},
			},
		},
	}
	a, _ := newTestAnalyzer(src)
	var partials []schema.EngineerReport
	a.OnPartial(func(r schema.EngineerReport) { partials = append(partials, r) })

	report, err := a.EngineerReport(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", report.Username)
	assert.Len(t, report.AuthoredMRs, 1)
	assert.Len(t, report.ReviewedMRs, 1)
	assert.Len(t, report.MergedMRs, 1)
	assert.InDelta(t, 6.0, report.AvgTimeToMerge, 1e-9)
	assert.Equal(t, 1, report.TotalComments)
	assert.InDelta(t, 1.0, report.AvgTimeToFirstComment, 1e-9)
	assert.Len(t, report.WeeklyActivity, 5)

	assert.Contains(t, report.CommentAnalysis.Categories, "Testing")
	assert.Equal(t, 1, report.ResponseTimes.TotalComments)
	assert.Equal(t, 1, report.ResponseTimes.RespondedComments)
	assert.InDelta(t, 2.0, report.ResponseTimes.AvgResponseTime, 1e-9)

	// Snapshots arrive after history and after comment averages, in
	// increasing states of completeness.
	require.Len(t, partials, 2)
	assert.Len(t, partials[0].WeeklyActivity, 5)
	assert.Zero(t, partials[0].TotalComments)
	assert.Equal(t, 1, partials[1].TotalComments)
}

func TestDashboardEndToEnd(t *testing.T) {
	src := &fakeSource{
		mrs: []schema.MergeRequest{
			{IID: 1, Author: alice, State: schema.OpenedState, Reviewers: []schema.User{bob}},
			{IID: 2, Author: bob, State: schema.OpenedState, Draft: true},
		},
		changes:     map[int]schema.MRChanges{1: sampleDiff()},
		failChanges: map[int]bool{2: true},
	}
	a, _ := newTestAnalyzer(src)

	data, err := a.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.MergeRequests, 2)
	assert.Len(t, data.Complexities, 2)
	assert.Equal(t, 1, data.EstimatedComplexities)
	assert.Len(t, data.Engineers, 2)

	// alice carries the open change plus an assigned review for bob
	require.NotNil(t, data.NextReviewer)
	assert.Equal(t, "alice", data.NextReviewer.User.Username)
}

func TestDashboardReviewerPool(t *testing.T) {
	src := &fakeSource{
		mrs: []schema.MergeRequest{
			{IID: 1, Author: alice, State: schema.OpenedState, Reviewers: []schema.User{bob}},
		},
		changes: map[int]schema.MRChanges{1: sampleDiff()},
	}
	a, _ := newTestAnalyzer(src)
	a.cfg.ReviewerPool = []string{"bob"}

	data, err := a.Dashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.NextReviewer)
	assert.Equal(t, "bob", data.NextReviewer.User.Username)
}

func TestComplexityCacheReuse(t *testing.T) {
	src := &fakeSource{
		mrs: []schema.MergeRequest{
			{IID: 1, Author: alice, State: schema.OpenedState},
		},
		changes: map[int]schema.MRChanges{1: sampleDiff()},
	}
	a, _ := newTestAnalyzer(src)

	_, err := a.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.changesCalls)

	_, err = a.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.changesCalls)
}

func TestInBatchesHonorsCancel(t *testing.T) {
	a, _ := newTestAnalyzer(&fakeSource{})
	a.cfg.BatchSize = 1
	a.cfg.BatchDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	var ran int
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := a.inBatches(ctx, 10, func(int) { ran++ })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, ran, 10)
}

func TestNextReviewerEmpty(t *testing.T) {
	assert.Nil(t, NextReviewer(nil, nil))
	stats := []schema.EngineerStats{{User: alice, WorkloadScore: 3}}
	assert.Nil(t, NextReviewer(stats, []string{"nobody"}))
}
