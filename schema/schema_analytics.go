package schema

// WeeklyTrend summarizes one calendar week of merge request activity.
// Week is the ISO date of the Monday that starts the week.
type WeeklyTrend struct {
	Week            string  `json:"week"`
	MergedMRs       int     `json:"merged_mrs"`
	AvgTimeToMerge  float64 `json:"avg_time_to_merge"`
	AvgLinesChanged float64 `json:"avg_lines_changed"`
	AvgReviewers    float64 `json:"avg_reviewers"`
}

// SizeDistribution buckets changes by total lines changed.
type SizeDistribution struct {
	Small  int `json:"small"`  // < 100 lines
	Medium int `json:"medium"` // 100-499 lines
	Large  int `json:"large"`  // 500-999 lines
	XLarge int `json:"xlarge"` // >= 1000 lines
}

// Total returns the number of changes across all size buckets.
func (d SizeDistribution) Total() int {
	return d.Small + d.Medium + d.Large + d.XLarge
}

// ReviewerDistribution buckets changes by exact reviewer count.
type ReviewerDistribution struct {
	None     int `json:"none"`
	One      int `json:"one"`
	Two      int `json:"two"`
	Three    int `json:"three"`
	FourPlus int `json:"four_plus"`
}

// TeamAnalytics is the team-wide rollup of per-change metrics. It is
// recomputed from MRMetrics on each analysis run and never persisted
// beyond the result cache.
type TeamAnalytics struct {
	AvgTimeToMerge       float64 `json:"avg_time_to_merge"`
	AvgTimeToFirstReview float64 `json:"avg_time_to_first_review"`
	AvgDraftDuration     float64 `json:"avg_draft_duration"`
	AvgReviewDuration    float64 `json:"avg_review_duration"`

	AvgReviewersPerMR float64 `json:"avg_reviewers_per_mr"`
	AvgCommentsPerMR  float64 `json:"avg_comments_per_mr"`

	AvgLinesAddedPerMR   float64 `json:"avg_lines_added_per_mr"`
	AvgLinesDeletedPerMR float64 `json:"avg_lines_deleted_per_mr"`
	AvgFilesChangedPerMR float64 `json:"avg_files_changed_per_mr"`

	WeeklyTrends   []WeeklyTrend        `json:"weekly_trends"`
	MRsBySize      SizeDistribution     `json:"mrs_by_size"`
	MRsByReviewers ReviewerDistribution `json:"mrs_by_reviewers"`

	// Sample lists for human-readable context, not further computation.
	FastestMerges []MRMetrics `json:"fastest_merges"`
	SlowestMerges []MRMetrics `json:"slowest_merges"`
	LargestMRs    []MRMetrics `json:"largest_mrs"`

	TotalMRsAnalyzed  int `json:"total_mrs_analyzed"`
	MergedMRsAnalyzed int `json:"merged_mrs_analyzed"`
	OpenMRsAnalyzed   int `json:"open_mrs_analyzed"`
	DraftMRsAnalyzed  int `json:"draft_mrs_analyzed"`
}

// EngineerStats is one engineer's current workload snapshot, built from
// the open merge request set and its complexities.
type EngineerStats struct {
	User             User    `json:"user"`
	OpenMRs          int     `json:"open_mrs"` // open, non-draft, authored
	DraftMRs         int     `json:"draft_mrs"`
	AssignedReviews  int     `json:"assigned_reviews"`
	ReviewComplexity float64 `json:"review_complexity"`
	AuthorComplexity float64 `json:"author_complexity"`
	WorkloadScore    float64 `json:"workload_score"` // lower is more available
}

// WeeklyActivity counts one engineer's authored/reviewed/merged changes
// for one calendar week.
type WeeklyActivity struct {
	Week     string `json:"week"`
	Authored int    `json:"authored"`
	Reviewed int    `json:"reviewed"`
	Merged   int    `json:"merged"`
}

// EngineerReport is the full per-engineer analysis result.
type EngineerReport struct {
	Username    string         `json:"username"`
	AuthoredMRs []MergeRequest `json:"authored_mrs"`
	ReviewedMRs []MergeRequest `json:"reviewed_mrs"`
	MergedMRs   []MergeRequest `json:"merged_mrs"`

	WeeklyActivity []WeeklyActivity `json:"weekly_activity"`

	AvgCommentsPerMR      float64 `json:"avg_comments_per_mr"`
	AvgReviewCycles       float64 `json:"avg_review_cycles"`
	AvgTimeToMerge        float64 `json:"avg_time_to_merge"`
	AvgTimeToFirstComment float64 `json:"avg_time_to_first_comment"`
	TotalComments         int     `json:"total_comments"`

	CommentAnalysis CommentAnalysisResult `json:"comment_analysis"`
	ResponseTimes   ResponseTimeMetrics   `json:"response_times"`
}

// DashboardData is the current-workload view over open merge requests.
type DashboardData struct {
	MergeRequests []MergeRequest  `json:"merge_requests"`
	Complexities  []MRComplexity  `json:"complexities"`
	Engineers     []EngineerStats `json:"engineers"`
	NextReviewer  *EngineerStats  `json:"next_reviewer"`

	// EstimatedComplexities counts changes whose diff data could not be
	// fetched, so default metrics were substituted.
	EstimatedComplexities int `json:"estimated_complexities"`
}
