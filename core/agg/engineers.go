package agg

import (
	"sort"
	"time"

	"github.com/huangsam/reviewlens/core/classify"
	"github.com/huangsam/reviewlens/schema"
)

// Workload weights. Review assignments dominate because they block other
// people's changes; drafts and authored complexity weigh less.
const (
	reviewWeight           = 2.0
	openWeight             = 1.0
	draftWeight            = 0.5
	reviewComplexityWeight = 0.5
	authorComplexityWeight = 0.3
)

// missingComplexityScore stands in when an open change has no measured
// complexity record.
const missingComplexityScore = 1.0

// BuildEngineerStats folds the open merge request set into per-engineer
// workload snapshots, sorted busiest first. Assignees with no authored or
// reviewed changes still appear with zero scores so that reviewer
// recommendation can consider them.
func BuildEngineerStats(mrs []schema.MergeRequest, complexities map[int]schema.MRComplexity) []schema.EngineerStats {
	stats := map[string]*schema.EngineerStats{}
	touch := func(u schema.User) *schema.EngineerStats {
		s, ok := stats[u.Username]
		if !ok {
			s = &schema.EngineerStats{User: u}
			stats[u.Username] = s
		}
		return s
	}

	for _, mr := range mrs {
		score := missingComplexityScore
		if cx, ok := complexities[mr.IID]; ok {
			score = cx.Score
		}

		author := touch(mr.Author)
		if mr.Draft {
			author.DraftMRs++
		} else {
			author.OpenMRs++
		}
		author.AuthorComplexity += score

		for _, r := range mr.Reviewers {
			reviewer := touch(r)
			reviewer.AssignedReviews++
			reviewer.ReviewComplexity += score
		}
		for _, a := range mr.Assignees {
			touch(a)
		}
	}

	out := make([]schema.EngineerStats, 0, len(stats))
	for _, s := range stats {
		s.WorkloadScore = float64(s.AssignedReviews)*reviewWeight +
			float64(s.OpenMRs)*openWeight +
			float64(s.DraftMRs)*draftWeight +
			s.ReviewComplexity*reviewComplexityWeight +
			s.AuthorComplexity*authorComplexityWeight
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkloadScore != out[j].WorkloadScore {
			return out[i].WorkloadScore > out[j].WorkloadScore
		}
		return out[i].User.Username < out[j].User.Username
	})
	return out
}

// WeeksFor maps a timeframe to the number of calendar weeks shown in
// weekly activity, current partial week included.
func WeeksFor(tf schema.Timeframe) int {
	switch tf {
	case schema.Week:
		return 2
	case schema.Month:
		return 5
	default:
		return 13
	}
}

// BuildWeeklyActivity buckets one engineer's authored and reviewed changes
// into the trailing weeks ending at now. Weeks with no activity still
// appear so that sparklines keep their shape.
func BuildWeeklyActivity(authored, reviewed []schema.MergeRequest, now time.Time, weeks int) []schema.WeeklyActivity {
	out := make([]schema.WeeklyActivity, 0, weeks)
	index := map[string]*schema.WeeklyActivity{}
	currentMonday, _ := time.Parse("2006-01-02", mondayOf(now))
	for i := weeks - 1; i >= 0; i-- {
		week := currentMonday.AddDate(0, 0, -7*i).Format("2006-01-02")
		out = append(out, schema.WeeklyActivity{Week: week})
		index[week] = &out[len(out)-1]
	}

	for _, mr := range authored {
		if w, ok := index[mondayOf(mr.CreatedAt)]; ok {
			w.Authored++
		}
		if mr.State == schema.MergedState && mr.MergedAt != nil {
			if w, ok := index[mondayOf(*mr.MergedAt)]; ok {
				w.Merged++
			}
		}
	}
	for _, mr := range reviewed {
		if w, ok := index[mondayOf(mr.CreatedAt)]; ok {
			w.Reviewed++
		}
	}
	return out
}

// MRNotes pairs a merge request with its fetched notes for detail metrics.
type MRNotes struct {
	MR    schema.MergeRequest
	Notes []schema.Note
}

// EngineerAverages holds comment-derived averages for one engineer's
// authored changes. Each average guards its own denominator, so a sample
// with no qualifying changes reports zero rather than NaN.
type EngineerAverages struct {
	AvgCommentsPerMR      float64
	AvgReviewCycles       float64
	AvgTimeToFirstComment float64
	TotalComments         int
}

// BuildEngineerAverages derives comment averages from a sample of the
// engineer's authored changes. Review cycles approximate iteration count
// by the number of distinct commenters on a change.
func BuildEngineerAverages(samples []MRNotes, username string) EngineerAverages {
	var avg EngineerAverages
	if len(samples) == 0 {
		return avg
	}

	var cycleSum int
	var firstCommentSum float64
	var firstCommentCnt int
	for _, s := range samples {
		commenters := map[string]struct{}{}
		firstAt := time.Time{}
		for _, n := range s.Notes {
			if !classify.IsHumanReviewComment(n, username) {
				continue
			}
			avg.TotalComments++
			commenters[n.Author.Username] = struct{}{}
			if firstAt.IsZero() || n.CreatedAt.Before(firstAt) {
				firstAt = n.CreatedAt
			}
		}
		cycleSum += len(commenters)
		if !firstAt.IsZero() {
			firstCommentSum += HoursBetween(s.MR.CreatedAt, firstAt)
			firstCommentCnt++
		}
	}

	n := float64(len(samples))
	avg.AvgCommentsPerMR = float64(avg.TotalComments) / n
	avg.AvgReviewCycles = float64(cycleSum) / n
	if firstCommentCnt > 0 {
		avg.AvgTimeToFirstComment = firstCommentSum / float64(firstCommentCnt)
	}
	return avg
}

// AvgTimeToMerge averages creation-to-merge hours over the merged changes
// in the list. Changes without a merge timestamp are skipped.
func AvgTimeToMerge(mrs []schema.MergeRequest) float64 {
	var sum float64
	var count int
	for _, mr := range mrs {
		if mr.State != schema.MergedState || mr.MergedAt == nil {
			continue
		}
		sum += HoursBetween(mr.CreatedAt, *mr.MergedAt)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
