package classify

import (
	"regexp"
	"strings"

	"github.com/huangsam/reviewlens/schema"
)

// minCommentLength is the shortest trimmed body still considered substantive.
const minCommentLength = 3

// automatedPatterns match bodies produced by the platform or by bots rather
// than a human reviewer. Anchored patterns keep short action phrases from
// swallowing ordinary prose that merely mentions the same words.
var automatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(approved|mentioned in|changed the description|added|removed|assigned|unassigned|requested review|marked as draft|marked as ready|merged|closed|rebased|force-pushed|updated|resolved all threads)`),
	regexp.MustCompile(`(?i)pipeline (passed|failed|succeeded)`),
	regexp.MustCompile(`(?i)build (passed|failed|succeeded)`),
	regexp.MustCompile(`(?i)automatically`),
	regexp.MustCompile(`(?i)^ci\/cd`),
}

// automatedMarkers is a looser substring list used where a single false
// negative matters less than dropping every event-style body. It catches
// label churn and approval notes that carry no review feedback.
var automatedMarkers = []string{
	"pipeline",
	"ci/cd",
	"approved this merge request",
	"mentioned in",
	"changed the description",
	"added label",
	"removed label",
	"assigned to",
	"unassigned",
	"requested review",
	"marked as draft",
	"marked as ready",
	"merged",
	"closed this merge request",
}

// countingMarkers is the variant used when counting review comments for
// per-change metrics. It is broader still, trading precision for keeping
// comment counts free of event noise.
var countingMarkers = []string{
	"pipeline",
	"ci/cd",
	"build",
	"approved this merge request",
	"mentioned in",
	"changed the description",
	"added",
	"removed",
	"assigned",
	"unassigned",
	"requested review",
	"marked as draft",
	"marked as ready",
	"merge request",
	"automatically",
}

// IsAutomated reports whether a note body looks platform-generated,
// using the strict anchored patterns.
func IsAutomated(body string) bool {
	for _, p := range automatedPatterns {
		if p.MatchString(body) {
			return true
		}
	}
	return false
}

// IsEventLike reports whether a note body matches the loose marker list.
func IsEventLike(body string) bool {
	lower := strings.ToLower(body)
	for _, m := range automatedMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsHumanReviewComment reports whether a note counts as a human review
// comment for per-change comment totals. The author of the change and
// system notes never count.
func IsHumanReviewComment(note schema.Note, authorUsername string) bool {
	if note.System || note.Author.Username == authorUsername {
		return false
	}
	if strings.TrimSpace(note.Body) == "" {
		return false
	}
	lower := strings.ToLower(note.Body)
	for _, m := range countingMarkers {
		if strings.Contains(lower, m) {
			return false
		}
	}
	return true
}

// EligibleComments returns the bodies worth classifying: non-system notes
// from someone other than the change author, long enough to carry meaning,
// and not matching the automated patterns.
func EligibleComments(notes []schema.Note, authorUsername string) []string {
	var out []string
	for _, n := range notes {
		if n.System || n.Author.Username == authorUsername {
			continue
		}
		body := strings.TrimSpace(n.Body)
		if len(body) < minCommentLength {
			continue
		}
		if IsAutomated(body) {
			continue
		}
		out = append(out, body)
	}
	return out
}
