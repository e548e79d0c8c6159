package core

import (
	"math"

	"github.com/huangsam/reviewlens/schema"
)

// Complexity scoring weights. They are policy constants: changing any of
// them shifts every score in the system, so they live in one place.
const (
	fileCountWeight     = 0.3
	lineCountWeight     = 0.5
	deletionRatioWeight = 0.3

	largeChangeThreshold = 500
	largeChangeDivisor   = 1000

	manyFilesThreshold = 5
	manyFilesPenalty   = 0.1

	minComplexity = 0.1
	maxComplexity = 10.0
)

// Default metrics substituted when diff data could not be fetched.
const (
	defaultFilesChanged = 1
	defaultLinesAdded   = 10
	defaultLinesDeleted = 5
	defaultScore        = 1.0
)

// ComplexityScore converts per-change diff statistics into a single
// review-difficulty number in [0.1, 10.0].
//
// The line-count term is logarithmic so very large diffs do not dominate,
// and the deletion ratio captures that removing code requires understanding
// its context. The two penalty terms flag changes that are hard to review
// because of sheer size or scattered scope.
func ComplexityScore(filesChanged, linesAdded, linesDeleted int) float64 {
	totalLines := linesAdded + linesDeleted
	denom := float64(max(totalLines, 1))

	score := float64(filesChanged) * fileCountWeight
	score += math.Log10(denom) * lineCountWeight
	score += float64(linesDeleted) / denom * deletionRatioWeight

	if totalLines > largeChangeThreshold {
		score += float64(totalLines-largeChangeThreshold) / largeChangeDivisor
	}
	if filesChanged > manyFilesThreshold {
		score += float64(filesChanged-manyFilesThreshold) * manyFilesPenalty
	}

	return math.Max(minComplexity, math.Min(score, maxComplexity))
}

// ComplexityFromChanges builds measured complexity metrics for one
// merge request from its changes payload.
func ComplexityFromChanges(iid int, changes schema.MRChanges) schema.MRComplexity {
	filesChanged, stat := ChangesDiffStats(changes)
	return schema.MRComplexity{
		IID:          iid,
		FilesChanged: filesChanged,
		LinesAdded:   stat.Added,
		LinesDeleted: stat.Deleted,
		TotalLines:   stat.Added + stat.Deleted,
		Score:        ComplexityScore(filesChanged, stat.Added, stat.Deleted),
	}
}

// DefaultComplexity returns the fixed fallback metrics used when change
// data could not be retrieved. Estimated marks the record as filler so
// that consumers can distinguish it from measured signal.
func DefaultComplexity(iid int) schema.MRComplexity {
	return schema.MRComplexity{
		IID:          iid,
		FilesChanged: defaultFilesChanged,
		LinesAdded:   defaultLinesAdded,
		LinesDeleted: defaultLinesDeleted,
		TotalLines:   defaultLinesAdded + defaultLinesDeleted,
		Score:        defaultScore,
		Estimated:    true,
	}
}
