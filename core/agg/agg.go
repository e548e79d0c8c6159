// Package agg folds merge request snapshots, notes and complexities into
// per-change metrics and team or engineer level rollups.
package agg

import (
	"strings"
	"time"

	"github.com/huangsam/reviewlens/core/classify"
	"github.com/huangsam/reviewlens/schema"
)

// HoursBetween returns the duration from start to end in hours, clamped
// to zero when the pair is inverted.
func HoursBetween(start, end time.Time) float64 {
	return max(0, end.Sub(start).Hours())
}

// BuildMRMetrics derives the metric record for one merge request from its
// snapshot, its notes in ascending order, and its diff complexity.
//
// Draft and review durations are only attributed for merged changes. When
// a "marked as ready" event exists the merge window is split at it;
// otherwise the whole window goes to whichever phase the change sits in.
func BuildMRMetrics(mr schema.MergeRequest, notes []schema.Note, cx schema.MRComplexity) schema.MRMetrics {
	m := schema.MRMetrics{
		ID:            mr.ID,
		IID:           mr.IID,
		Title:         mr.Title,
		Author:        mr.Author.Username,
		State:         mr.State,
		Draft:         mr.Draft,
		CreatedAt:     mr.CreatedAt,
		MergedAt:      mr.MergedAt,
		WebURL:        mr.WebURL,
		ReviewerCount: len(mr.Reviewers),
		LinesAdded:    cx.LinesAdded,
		LinesDeleted:  cx.LinesDeleted,
		FilesChanged:  cx.FilesChanged,
	}

	for _, n := range notes {
		if classify.IsHumanReviewComment(n, mr.Author.Username) {
			m.CommentCount++
		}
	}

	if mr.State == schema.MergedState && mr.MergedAt != nil {
		ttm := HoursBetween(mr.CreatedAt, *mr.MergedAt)
		m.TimeToMerge = &ttm

		if readyAt, ok := markedReadyAt(notes); ok {
			draft := HoursBetween(mr.CreatedAt, readyAt)
			review := HoursBetween(readyAt, *mr.MergedAt)
			m.DraftDuration = &draft
			m.ReviewDuration = &review
		} else if mr.Draft {
			zero := 0.0
			m.DraftDuration = &ttm
			m.ReviewDuration = &zero
		} else {
			zero := 0.0
			m.DraftDuration = &zero
			m.ReviewDuration = &ttm
		}
	}

	if reviewAt, ok := reviewRequestedAt(notes); ok {
		ttfr := HoursBetween(mr.CreatedAt, reviewAt)
		m.TimeToFirstReview = &ttfr
	} else if len(mr.Reviewers) > 0 && !mr.Draft {
		zero := 0.0
		m.TimeToFirstReview = &zero
	}

	return m
}

func markedReadyAt(notes []schema.Note) (time.Time, bool) {
	for _, n := range notes {
		if n.System && strings.Contains(strings.ToLower(n.Body), "marked as ready") {
			return n.CreatedAt, true
		}
	}
	return time.Time{}, false
}

func reviewRequestedAt(notes []schema.Note) (time.Time, bool) {
	for _, n := range notes {
		if !n.System {
			continue
		}
		lower := strings.ToLower(n.Body)
		if strings.Contains(lower, "requested review") ||
			(strings.Contains(lower, "assigned") && strings.Contains(lower, "reviewer")) {
			return n.CreatedAt, true
		}
	}
	return time.Time{}, false
}

// mondayOf returns the ISO date of the Monday starting t's calendar week,
// in UTC.
func mondayOf(t time.Time) string {
	d := t.UTC()
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format("2006-01-02")
}
