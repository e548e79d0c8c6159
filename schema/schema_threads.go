package schema

import "time"

// ResponseThread pairs one reviewer comment with the author's subsequent
// reply, if any. Threads are created during reconstruction and never
// mutated afterward. ResponseHours is only meaningful when Resolved.
type ResponseThread struct {
	ID            string     `json:"id"` // "<mr iid>-<note id>"
	Reviewer      string     `json:"reviewer"`
	CommentedAt   time.Time  `json:"commented_at"`
	CommentBody   string     `json:"comment_body"`
	RespondedAt   *time.Time `json:"responded_at"`
	ResponseBody  string     `json:"response_body"`
	Resolved      bool       `json:"resolved"`
	ResponseHours float64    `json:"response_hours"`
}

// ResponseDistribution is a five-bucket histogram of response latency.
type ResponseDistribution struct {
	Under1Hour   int `json:"under_1_hour"`
	Under4Hours  int `json:"under_4_hours"`
	Under24Hours int `json:"under_24_hours"`
	Under3Days   int `json:"under_3_days"`
	Over3Days    int `json:"over_3_days"`
}

// DayActivity is a per-calendar-day rollup of reviewer comments received
// and responded to. Date is an ISO date (YYYY-MM-DD).
type DayActivity struct {
	Date              string  `json:"date"`
	CommentsReceived  int     `json:"comments_received"`
	CommentsResponded int     `json:"comments_responded"`
	AvgResponseTime   float64 `json:"avg_response_time"`
}

// ResponseTimeMetrics aggregates response threads into latency statistics.
// All times are in hours. A zero thread set yields all-zero metrics.
type ResponseTimeMetrics struct {
	AvgResponseTime    float64              `json:"avg_response_time"`
	MedianResponseTime float64              `json:"median_response_time"`
	FastestResponse    float64              `json:"fastest_response"`
	SlowestResponse    float64              `json:"slowest_response"`
	ResponseRate       float64              `json:"response_rate"` // percent
	TotalComments      int                  `json:"total_comments"`
	RespondedComments  int                  `json:"responded_comments"`
	UnresolvedComments int                  `json:"unresolved_comments"`
	Distribution       ResponseDistribution `json:"distribution"`
	CommentsByDay      []DayActivity        `json:"comments_by_day"`
}
