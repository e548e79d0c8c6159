package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/reviewlens/schema"
)

func TestComplexityScoreBounds(t *testing.T) {
	// Empty change clamps to the minimum, not zero
	assert.Equal(t, 0.1, ComplexityScore(0, 0, 0))

	// Huge change clamps to the maximum
	assert.Equal(t, 10.0, ComplexityScore(200, 50000, 50000))

	// Everything in between stays in range
	cases := [][3]int{
		{1, 10, 5}, {3, 120, 40}, {8, 600, 200}, {15, 2000, 1500},
	}
	for _, c := range cases {
		score := ComplexityScore(c[0], c[1], c[2])
		assert.GreaterOrEqual(t, score, 0.1)
		assert.LessOrEqual(t, score, 10.0)
	}
}

func TestComplexityScoreMonotonic(t *testing.T) {
	// Non-decreasing in files changed, holding lines fixed
	prev := 0.0
	for files := 0; files <= 30; files++ {
		score := ComplexityScore(files, 100, 50)
		assert.GreaterOrEqual(t, score, prev, "files=%d", files)
		prev = score
	}

	// Non-decreasing in total lines, holding files fixed
	prev = 0.0
	for lines := 0; lines <= 3000; lines += 100 {
		score := ComplexityScore(3, lines, 0)
		assert.GreaterOrEqual(t, score, prev, "lines=%d", lines)
		prev = score
	}
}

func TestComplexityScorePenalties(t *testing.T) {
	// Crossing the 500-line threshold adds the large-change penalty
	below := ComplexityScore(1, 500, 0)
	above := ComplexityScore(1, 700, 0)
	assert.Greater(t, above-below, 0.19, "large-change penalty should apply")

	// Crossing the 5-file threshold adds the scattered-scope penalty
	compact := ComplexityScore(5, 100, 0)
	scattered := ComplexityScore(7, 100, 0)
	assert.InDelta(t, 2*0.3+2*0.1, scattered-compact, 1e-9)
}

func TestComplexityFromChanges(t *testing.T) {
	changes := schema.MRChanges{
		Changes: []schema.FileChange{
			{Diff: "+a\n+b\n-c\n"},
			{Diff: "+d\n"},
		},
	}

	cx := ComplexityFromChanges(42, changes)
	assert.Equal(t, 42, cx.IID)
	assert.Equal(t, 2, cx.FilesChanged)
	assert.Equal(t, 3, cx.LinesAdded)
	assert.Equal(t, 1, cx.LinesDeleted)
	assert.Equal(t, 4, cx.TotalLines)
	assert.False(t, cx.Estimated)
	assert.InDelta(t, ComplexityScore(2, 3, 1), cx.Score, 1e-9)
}

func TestDefaultComplexity(t *testing.T) {
	cx := DefaultComplexity(7)
	assert.Equal(t, 7, cx.IID)
	assert.Equal(t, 1, cx.FilesChanged)
	assert.Equal(t, 10, cx.LinesAdded)
	assert.Equal(t, 5, cx.LinesDeleted)
	assert.Equal(t, 15, cx.TotalLines)
	assert.Equal(t, 1.0, cx.Score)
	assert.True(t, cx.Estimated)
}
