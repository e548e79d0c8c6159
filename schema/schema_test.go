package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeframeDays(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		want int
	}{
		{Week, 7},
		{Month, 30},
		{Quarter, 90},
		{Timeframe("bogus"), 30}, // unknown values fall back to a month
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.tf.Days(), "timeframe %s", tc.tf)
	}
}

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 3.0, HighSeverity.Weight())
	assert.Equal(t, 2.0, MediumSeverity.Weight())
	assert.Equal(t, 1.0, LowSeverity.Weight())
	assert.Equal(t, 1.0, Severity("bogus").Weight())
}

func TestMRMetricsTotalLines(t *testing.T) {
	m := MRMetrics{LinesAdded: 120, LinesDeleted: 30}
	assert.Equal(t, 150, m.TotalLines())
}

func TestPerfectCommentAnalysis(t *testing.T) {
	res := PerfectCommentAnalysis()
	assert.Equal(t, 100.0, res.OverallScore)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.TopIssues)
	assert.Zero(t, res.TotalComments)
}

func TestSizeDistributionTotal(t *testing.T) {
	d := SizeDistribution{Small: 3, Medium: 2, Large: 1, XLarge: 4}
	assert.Equal(t, 10, d.Total())
}
