package schema

// CategoryBreakdown holds one category's share of the analyzed comments.
type CategoryBreakdown struct {
	Count       int      `json:"count"`
	Percentage  float64  `json:"percentage"`
	Examples    []string `json:"examples"` // up to 3 truncated samples
	Principle   string   `json:"principle"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// TopIssue is one of the most frequent comment categories, ranked by count.
type TopIssue struct {
	Category   string   `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Principle  string   `json:"principle"`
	Severity   Severity `json:"severity"`
}

// Recommendation is a curated improvement suggestion emitted for a top issue.
type Recommendation struct {
	Principle   string   `json:"principle"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
	Priority    Severity `json:"priority"`
}

// CommentAnalysisResult is the outcome of classifying review comments
// into engineering-principle categories. OverallScore is in [20, 100],
// higher is better; zero comments yields a perfect 100.
type CommentAnalysisResult struct {
	TotalComments   int                          `json:"total_comments"`
	Categories      map[string]CategoryBreakdown `json:"categories"`
	TopIssues       []TopIssue                   `json:"top_issues"`
	Recommendations []Recommendation             `json:"recommendations"`
	OverallScore    float64                      `json:"overall_score"`
}

// PerfectCommentAnalysis returns the result for an empty comment set.
func PerfectCommentAnalysis() CommentAnalysisResult {
	return CommentAnalysisResult{
		Categories:   map[string]CategoryBreakdown{},
		OverallScore: 100,
	}
}
