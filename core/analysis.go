package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/reviewlens/core/agg"
	"github.com/huangsam/reviewlens/core/classify"
	"github.com/huangsam/reviewlens/core/threads"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// Analysis stages, surfaced through the progress callback.
const (
	StageFetchMRs   = "fetching merge requests"
	StageFetchDiffs = "fetching diffs"
	StageFetchNotes = "fetching notes"
	StageAggregate  = "aggregating results"
)

// StageFunc receives coarse progress notifications during an analysis run.
type StageFunc func(stage string)

// PartialFunc receives intermediate engineer report snapshots as the
// slower stages (comment and thread analysis) are still running.
type PartialFunc func(report schema.EngineerReport)

// Analyzer runs review analytics against one project. It is safe to reuse
// across operations but not across goroutines.
type Analyzer struct {
	cfg     *contract.Config
	client  contract.SourceClient
	cache   resultCache
	stage   StageFunc
	partial PartialFunc
	now     func() time.Time
}

// NewAnalyzer wires an analyzer from its dependencies. The cache manager
// may hand out a no-op store when caching is disabled.
func NewAnalyzer(cfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		client:  client,
		cache:   resultCache{store: mgr.GetResultStore(), now: time.Now},
		stage:   func(string) {},
		partial: func(schema.EngineerReport) {},
		now:     time.Now,
	}
}

// OnStage registers a progress callback. A nil callback silences progress.
func (a *Analyzer) OnStage(fn StageFunc) {
	if fn == nil {
		fn = func(string) {}
	}
	a.stage = fn
}

// OnPartial registers a callback for intermediate engineer report
// snapshots. Cached results never produce partials.
func (a *Analyzer) OnPartial(fn PartialFunc) {
	if fn == nil {
		fn = func(schema.EngineerReport) {}
	}
	a.partial = fn
}

func (a *Analyzer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

func (a *Analyzer) createdAfter() string {
	days := a.cfg.Timeframe.Days()
	return a.now().UTC().AddDate(0, 0, -days).Format(contract.DateTimeFormat)
}

// TeamAnalytics computes the team rollup for the configured project and
// timeframe, serving a cached result when one is still fresh.
func (a *Analyzer) TeamAnalytics(ctx context.Context) (schema.TeamAnalytics, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	key := teamKey(a.cfg.Project, a.cfg.Timeframe)
	want := cacheEnvelope{Kind: schema.TeamCache, Project: a.cfg.Project, Timeframe: a.cfg.Timeframe}
	var cached schema.TeamAnalytics
	if a.cache.lookup(key, want, &cached) {
		return cached, nil
	}

	a.stage(StageFetchMRs)
	mrs, err := a.client.ListMergeRequests(ctx, a.cfg.Project, contract.ListMROptions{
		State:        schema.AnyState,
		CreatedAfter: a.createdAfter(),
	})
	if err != nil {
		return schema.TeamAnalytics{}, fmt.Errorf("list merge requests: %w", err)
	}

	a.stage(StageFetchDiffs)
	complexities, err := a.fetchComplexities(ctx, mrs)
	if err != nil {
		return schema.TeamAnalytics{}, err
	}
	a.stage(StageFetchNotes)
	notes, err := a.fetchNotes(ctx, mrs)
	if err != nil {
		return schema.TeamAnalytics{}, err
	}

	a.stage(StageAggregate)
	metrics := make([]schema.MRMetrics, 0, len(mrs))
	for _, mr := range mrs {
		metrics = append(metrics, agg.BuildMRMetrics(mr, notes[mr.IID], complexities[mr.IID]))
	}
	analytics := agg.BuildTeamAnalytics(metrics)

	a.cache.save(key, want, analytics)
	return analytics, nil
}

// EngineerReport computes the per-engineer report for username within the
// configured project and timeframe.
func (a *Analyzer) EngineerReport(ctx context.Context, username string) (schema.EngineerReport, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	key := engineerKey(a.cfg.Project, username, a.cfg.Timeframe)
	want := cacheEnvelope{
		Kind:      schema.EngineerCache,
		Project:   a.cfg.Project,
		User:      username,
		Timeframe: a.cfg.Timeframe,
	}
	var cached schema.EngineerReport
	if a.cache.lookup(key, want, &cached) {
		return cached, nil
	}

	a.stage(StageFetchMRs)
	mrs, err := a.client.ListMergeRequests(ctx, a.cfg.Project, contract.ListMROptions{
		State:        schema.AnyState,
		CreatedAfter: a.createdAfter(),
	})
	if err != nil {
		return schema.EngineerReport{}, fmt.Errorf("list merge requests: %w", err)
	}

	report := schema.EngineerReport{Username: username}
	for _, mr := range mrs {
		if mr.Author.Username == username {
			report.AuthoredMRs = append(report.AuthoredMRs, mr)
			if mr.State == schema.MergedState {
				report.MergedMRs = append(report.MergedMRs, mr)
			}
			continue
		}
		for _, r := range mr.Reviewers {
			if r.Username == username {
				report.ReviewedMRs = append(report.ReviewedMRs, mr)
				break
			}
		}
	}

	report.WeeklyActivity = agg.BuildWeeklyActivity(
		report.AuthoredMRs, report.ReviewedMRs, a.now(), agg.WeeksFor(a.cfg.Timeframe))
	report.AvgTimeToMerge = agg.AvgTimeToMerge(report.AuthoredMRs)
	a.partial(report)

	a.stage(StageFetchNotes)
	commentSample, err := a.fetchAuthoredNotes(ctx, report.AuthoredMRs, contract.CommentSampleSize)
	if err != nil {
		return schema.EngineerReport{}, err
	}

	a.stage(StageAggregate)
	averages := agg.BuildEngineerAverages(commentSample, username)
	report.AvgCommentsPerMR = averages.AvgCommentsPerMR
	report.AvgReviewCycles = averages.AvgReviewCycles
	report.AvgTimeToFirstComment = averages.AvgTimeToFirstComment
	report.TotalComments = averages.TotalComments
	a.partial(report)

	var comments []string
	var allThreads []schema.ResponseThread
	for i, s := range commentSample {
		comments = append(comments, classify.EligibleComments(s.Notes, username)...)
		if i < contract.ThreadSampleSize {
			allThreads = append(allThreads, threads.Reconstruct(s.Notes, username, s.MR.IID)...)
		}
	}
	report.CommentAnalysis = classify.Analyze(comments)
	report.ResponseTimes = threads.Metrics(allThreads)

	a.cache.save(key, want, report)
	return report, nil
}

// Dashboard builds the current-workload view over open merge requests.
// It is never cached: workload should reflect the live open set.
func (a *Analyzer) Dashboard(ctx context.Context) (schema.DashboardData, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.stage(StageFetchMRs)
	mrs, err := a.client.ListMergeRequests(ctx, a.cfg.Project, contract.ListMROptions{
		State: schema.OpenedState,
	})
	if err != nil {
		return schema.DashboardData{}, fmt.Errorf("list merge requests: %w", err)
	}

	a.stage(StageFetchDiffs)
	complexities, err := a.fetchComplexities(ctx, mrs)
	if err != nil {
		return schema.DashboardData{}, err
	}

	a.stage(StageAggregate)
	data := schema.DashboardData{MergeRequests: mrs}
	for _, mr := range mrs {
		cx := complexities[mr.IID]
		data.Complexities = append(data.Complexities, cx)
		if cx.Estimated {
			data.EstimatedComplexities++
		}
	}
	sort.Slice(data.Complexities, func(i, j int) bool {
		return data.Complexities[i].Score > data.Complexities[j].Score
	})

	data.Engineers = agg.BuildEngineerStats(mrs, complexities)
	data.NextReviewer = NextReviewer(data.Engineers, a.cfg.ReviewerPool)
	return data, nil
}

// MetricsAndThreads computes the raw per-change metric records and
// response threads for the configured project and timeframe. This is the
// columnar export path, so results bypass the cache.
func (a *Analyzer) MetricsAndThreads(ctx context.Context) ([]schema.MRMetrics, []schema.ResponseThread, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	a.stage(StageFetchMRs)
	mrs, err := a.client.ListMergeRequests(ctx, a.cfg.Project, contract.ListMROptions{
		State:        schema.AnyState,
		CreatedAfter: a.createdAfter(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list merge requests: %w", err)
	}

	a.stage(StageFetchDiffs)
	complexities, err := a.fetchComplexities(ctx, mrs)
	if err != nil {
		return nil, nil, err
	}
	a.stage(StageFetchNotes)
	notes, err := a.fetchNotes(ctx, mrs)
	if err != nil {
		return nil, nil, err
	}

	a.stage(StageAggregate)
	metrics := make([]schema.MRMetrics, 0, len(mrs))
	var allThreads []schema.ResponseThread
	for _, mr := range mrs {
		metrics = append(metrics, agg.BuildMRMetrics(mr, notes[mr.IID], complexities[mr.IID]))
		allThreads = append(allThreads, threads.Reconstruct(notes[mr.IID], mr.Author.Username, mr.IID)...)
	}
	return metrics, allThreads, nil
}

// fetchAuthoredNotes fetches notes for up to limit of the engineer's most
// recently created changes.
func (a *Analyzer) fetchAuthoredNotes(ctx context.Context, authored []schema.MergeRequest, limit int) ([]agg.MRNotes, error) {
	sample := make([]schema.MergeRequest, len(authored))
	copy(sample, authored)
	sort.Slice(sample, func(i, j int) bool { return sample[i].CreatedAt.After(sample[j].CreatedAt) })
	if len(sample) > limit {
		sample = sample[:limit]
	}

	notes, err := a.fetchNotes(ctx, sample)
	if err != nil {
		return nil, err
	}
	out := make([]agg.MRNotes, 0, len(sample))
	for _, mr := range sample {
		out = append(out, agg.MRNotes{MR: mr, Notes: notes[mr.IID]})
	}
	return out, nil
}
