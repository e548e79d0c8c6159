// Package threads reconstructs reviewer-comment response threads from flat
// note lists and derives latency metrics from them.
package threads

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/reviewlens/core/classify"
	"github.com/huangsam/reviewlens/schema"
)

// responseWindow bounds how long after a reviewer comment an author note
// can still count as the response to it.
const responseWindow = 7 * 24 * time.Hour

// ackPhrases are short author replies that clearly acknowledge feedback.
// Anything longer than minCommentLength counts as a response regardless.
var ackPhrases = []string{
	"thanks", "thank you", "fixed", "done", "updated", "changed",
	"addressed", "good point", "you're right", "agreed", "makes sense",
	"will do", "implemented", "refactored", "added", "removed", "modified",
	"ok", "lgtm", "ack", "sgtm", "yes", "👍", "💯",
}

const minResponseLength = 3

// Reconstruct pairs each eligible reviewer note on one merge request with
// the author's first plausible reply. Notes must be in ascending creation
// order, the way the source API returns them. A reviewer note with no
// author reply inside the window yields an unresolved thread.
//
// The pairing is an approximation: the source API exposes flat note lists
// without discussion structure, so one author reply can close several
// reviewer threads at once.
func Reconstruct(notes []schema.Note, authorUsername string, mrIID int) []schema.ResponseThread {
	var out []schema.ResponseThread
	for i, n := range notes {
		if n.System || n.Author.Username == authorUsername {
			continue
		}
		body := strings.TrimSpace(n.Body)
		if len(body) < minResponseLength || classify.IsEventLike(body) {
			continue
		}

		thread := schema.ResponseThread{
			ID:          fmt.Sprintf("%d-%d", mrIID, n.ID),
			Reviewer:    n.Author.Username,
			CommentedAt: n.CreatedAt,
			CommentBody: body,
		}
		deadline := n.CreatedAt.Add(responseWindow)
		for _, reply := range notes[i+1:] {
			if reply.System || reply.Author.Username != authorUsername {
				continue
			}
			if reply.CreatedAt.After(deadline) {
				break
			}
			// event-style author notes like label churn are not replies
			if classify.IsEventLike(reply.Body) || !isLikelyResponse(reply.Body) {
				continue
			}
			respondedAt := reply.CreatedAt
			thread.RespondedAt = &respondedAt
			thread.ResponseBody = strings.TrimSpace(reply.Body)
			thread.Resolved = true
			thread.ResponseHours = max(0, respondedAt.Sub(n.CreatedAt).Hours())
			break
		}
		out = append(out, thread)
	}
	return out
}

// isLikelyResponse reports whether an author note reads like a reply to
// feedback rather than a drive-by remark.
func isLikelyResponse(body string) bool {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) > minResponseLength {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, p := range ackPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
