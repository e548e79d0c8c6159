// Package schema has configs, models and global variables for all parts of reviewlens.
package schema

import "time"

// User identifies a platform account referenced by merge requests and notes.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// MergeRequest is an immutable snapshot of a merge request, fetched once
// per analysis run. Field names follow the GitLab REST payload.
type MergeRequest struct {
	ID        int        `json:"id"`
	IID       int        `json:"iid"` // sequential index within the project
	ProjectID int        `json:"project_id"`
	Title     string     `json:"title"`
	Author    User       `json:"author"`
	State     MRState    `json:"state"`
	Draft     bool       `json:"draft"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at"`
	Reviewers []User     `json:"reviewers"`
	Assignees []User     `json:"assignees"`
	WebURL    string     `json:"web_url"`
}

// Note is a single comment or event entry attached to a merge request.
// System is true for platform-generated notes, never a human comment.
type Note struct {
	ID        int       `json:"id"`
	Author    User      `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	System    bool      `json:"system"`
}

// FileChange is one file's entry in a merge request changes payload.
type FileChange struct {
	Diff        string `json:"diff"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
}

// MRChanges is the changes payload for one merge request.
type MRChanges struct {
	Changes []FileChange `json:"changes"`
}

// DiffStat holds added/deleted line counts derived from one diff blob.
type DiffStat struct {
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// MRComplexity holds the review-difficulty metrics for one merge request.
// Estimated is true when change data could not be fetched and the fixed
// default metrics were substituted instead of measured ones.
type MRComplexity struct {
	IID          int     `json:"iid"`
	FilesChanged int     `json:"files_changed"`
	LinesAdded   int     `json:"lines_added"`
	LinesDeleted int     `json:"lines_deleted"`
	TotalLines   int     `json:"total_lines"`
	Score        float64 `json:"score"`
	Estimated    bool    `json:"estimated"`
}

// MRMetrics is the per-change metric record derived from a merge request
// snapshot, its notes and its diff statistics.
//
// TimeToMerge is only set for merged changes with a known merge timestamp.
// All durations are in hours and clamped to zero when the timestamp pair
// is inverted.
type MRMetrics struct {
	ID                int        `json:"id"`
	IID               int        `json:"iid"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	State             MRState    `json:"state"`
	Draft             bool       `json:"draft"`
	CreatedAt         time.Time  `json:"created_at"`
	MergedAt          *time.Time `json:"merged_at"`
	WebURL            string     `json:"web_url"`
	TimeToMerge       *float64   `json:"time_to_merge"`
	ReviewerCount     int        `json:"reviewer_count"`
	CommentCount      int        `json:"comment_count"`
	LinesAdded        int        `json:"lines_added"`
	LinesDeleted      int        `json:"lines_deleted"`
	FilesChanged      int        `json:"files_changed"`
	DraftDuration     *float64   `json:"draft_duration"`
	ReviewDuration    *float64   `json:"review_duration"`
	TimeToFirstReview *float64   `json:"time_to_first_review"`
}

// TotalLines returns the total number of changed lines.
func (m *MRMetrics) TotalLines() int {
	return m.LinesAdded + m.LinesDeleted
}
