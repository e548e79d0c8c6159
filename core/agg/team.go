package agg

import (
	"sort"

	"github.com/huangsam/reviewlens/schema"
)

const (
	maxTrendWeeks = 12
	sampleSize    = 5

	smallSizeLimit  = 100
	mediumSizeLimit = 500
	largeSizeLimit  = 1000
)

// BuildTeamAnalytics folds per-change metrics into the team rollup.
// Duration averages only consider changes where the duration applies:
// time to merge needs a merge timestamp, and draft or review phases only
// count when the change actually spent time in them.
func BuildTeamAnalytics(metrics []schema.MRMetrics) schema.TeamAnalytics {
	a := schema.TeamAnalytics{TotalMRsAnalyzed: len(metrics)}
	if len(metrics) == 0 {
		return a
	}

	var (
		mergeSum, mergeCount           float64
		firstReviewSum, firstReviewCnt float64
		draftSum, draftCount           float64
		reviewSum, reviewCount         float64
		reviewers, comments            int
		added, deleted, files          int
	)
	for i := range metrics {
		m := &metrics[i]
		switch m.State {
		case schema.MergedState:
			a.MergedMRsAnalyzed++
		case schema.OpenedState:
			a.OpenMRsAnalyzed++
		}
		if m.Draft {
			a.DraftMRsAnalyzed++
		}

		if m.TimeToMerge != nil {
			mergeSum += *m.TimeToMerge
			mergeCount++
		}
		if m.TimeToFirstReview != nil {
			firstReviewSum += *m.TimeToFirstReview
			firstReviewCnt++
		}
		if m.DraftDuration != nil && *m.DraftDuration > 0 {
			draftSum += *m.DraftDuration
			draftCount++
		}
		if m.ReviewDuration != nil && *m.ReviewDuration > 0 {
			reviewSum += *m.ReviewDuration
			reviewCount++
		}

		reviewers += m.ReviewerCount
		comments += m.CommentCount
		added += m.LinesAdded
		deleted += m.LinesDeleted
		files += m.FilesChanged

		bucketBySize(&a.MRsBySize, m.TotalLines())
		bucketByReviewers(&a.MRsByReviewers, m.ReviewerCount)
	}

	total := float64(len(metrics))
	a.AvgTimeToMerge = safeDiv(mergeSum, mergeCount)
	a.AvgTimeToFirstReview = safeDiv(firstReviewSum, firstReviewCnt)
	a.AvgDraftDuration = safeDiv(draftSum, draftCount)
	a.AvgReviewDuration = safeDiv(reviewSum, reviewCount)
	a.AvgReviewersPerMR = float64(reviewers) / total
	a.AvgCommentsPerMR = float64(comments) / total
	a.AvgLinesAddedPerMR = float64(added) / total
	a.AvgLinesDeletedPerMR = float64(deleted) / total
	a.AvgFilesChangedPerMR = float64(files) / total

	a.WeeklyTrends = weeklyTrends(metrics)
	a.FastestMerges, a.SlowestMerges = mergeExtremes(metrics)
	a.LargestMRs = largestChanges(metrics)
	return a
}

func safeDiv(sum, count float64) float64 {
	if count == 0 {
		return 0
	}
	return sum / count
}

func bucketBySize(d *schema.SizeDistribution, lines int) {
	switch {
	case lines < smallSizeLimit:
		d.Small++
	case lines < mediumSizeLimit:
		d.Medium++
	case lines < largeSizeLimit:
		d.Large++
	default:
		d.XLarge++
	}
}

func bucketByReviewers(d *schema.ReviewerDistribution, count int) {
	switch count {
	case 0:
		d.None++
	case 1:
		d.One++
	case 2:
		d.Two++
	case 3:
		d.Three++
	default:
		d.FourPlus++
	}
}

// weeklyTrends groups every change by the Monday of its creation week
// and keeps the most recent weeks, oldest first. Line and reviewer
// averages cover the whole bucket; the merged count is the subset that
// landed.
func weeklyTrends(metrics []schema.MRMetrics) []schema.WeeklyTrend {
	type weekAgg struct {
		total     int
		merged    int
		mergeSum  float64
		mergeCnt  int
		lines     int
		reviewers int
	}
	weeks := map[string]*weekAgg{}
	for i := range metrics {
		m := &metrics[i]
		key := mondayOf(m.CreatedAt)
		agg, ok := weeks[key]
		if !ok {
			agg = &weekAgg{}
			weeks[key] = agg
		}
		agg.total++
		agg.lines += m.TotalLines()
		agg.reviewers += m.ReviewerCount
		if m.State == schema.MergedState {
			agg.merged++
		}
		if m.TimeToMerge != nil {
			agg.mergeSum += *m.TimeToMerge
			agg.mergeCnt++
		}
	}

	out := make([]schema.WeeklyTrend, 0, len(weeks))
	for week, agg := range weeks {
		trend := schema.WeeklyTrend{
			Week:            week,
			MergedMRs:       agg.merged,
			AvgLinesChanged: float64(agg.lines) / float64(agg.total),
			AvgReviewers:    float64(agg.reviewers) / float64(agg.total),
		}
		if agg.mergeCnt > 0 {
			trend.AvgTimeToMerge = agg.mergeSum / float64(agg.mergeCnt)
		}
		out = append(out, trend)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	if len(out) > maxTrendWeeks {
		out = out[len(out)-maxTrendWeeks:]
	}
	return out
}

func mergeExtremes(metrics []schema.MRMetrics) (fastest, slowest []schema.MRMetrics) {
	var merged []schema.MRMetrics
	for _, m := range metrics {
		if m.TimeToMerge != nil {
			merged = append(merged, m)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return *merged[i].TimeToMerge < *merged[j].TimeToMerge })

	n := min(sampleSize, len(merged))
	fastest = append(fastest, merged[:n]...)
	for i := len(merged) - 1; i >= len(merged)-n; i-- {
		slowest = append(slowest, merged[i])
	}
	return fastest, slowest
}

func largestChanges(metrics []schema.MRMetrics) []schema.MRMetrics {
	sorted := make([]schema.MRMetrics, len(metrics))
	copy(sorted, metrics)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TotalLines() > sorted[j].TotalLines() })
	return sorted[:min(sampleSize, len(sorted))]
}
