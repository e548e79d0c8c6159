package classify

import (
	"sort"
	"strings"

	"github.com/huangsam/reviewlens/schema"
)

const (
	maxExamples      = 3
	exampleWidth     = 100
	maxTopIssues     = 5
	penaltyScale     = 80.0
	maxPenalty       = 80.0
	minOverallScore  = 20.0
	perfectScore     = 100.0
)

// Analyze classifies comment bodies against the category table and scores
// the overall feedback quality. A comment may land in several categories.
// An empty input yields a perfect score with no categories.
func Analyze(comments []string) schema.CommentAnalysisResult {
	if len(comments) == 0 {
		return schema.PerfectCommentAnalysis()
	}

	categories := map[string]schema.CategoryBreakdown{}
	for _, body := range comments {
		lower := strings.ToLower(body)
		for _, p := range Patterns {
			if !matchesAny(lower, p.Keywords) {
				continue
			}
			cb, ok := categories[p.Category]
			if !ok {
				cb = schema.CategoryBreakdown{
					Principle:   p.Principle,
					Description: p.Description,
					Severity:    p.Severity,
				}
			}
			cb.Count++
			if len(cb.Examples) < maxExamples {
				cb.Examples = append(cb.Examples, truncateExample(body))
			}
			categories[p.Category] = cb
		}
	}

	total := len(comments)
	for name, cb := range categories {
		cb.Percentage = float64(cb.Count) / float64(total) * 100
		categories[name] = cb
	}

	topIssues := rankTopIssues(categories)

	return schema.CommentAnalysisResult{
		TotalComments:   total,
		Categories:      categories,
		TopIssues:       topIssues,
		Recommendations: buildRecommendations(topIssues),
		OverallScore:    overallScore(topIssues),
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncateExample(body string) string {
	runes := []rune(body)
	if len(runes) <= exampleWidth {
		return body
	}
	return string(runes[:exampleWidth]) + "..."
}

func rankTopIssues(categories map[string]schema.CategoryBreakdown) []schema.TopIssue {
	issues := make([]schema.TopIssue, 0, len(categories))
	for name, cb := range categories {
		issues = append(issues, schema.TopIssue{
			Category:   name,
			Count:      cb.Count,
			Percentage: cb.Percentage,
			Principle:  cb.Principle,
			Severity:   cb.Severity,
		})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].Category < issues[j].Category
	})
	if len(issues) > maxTopIssues {
		issues = issues[:maxTopIssues]
	}
	return issues
}

func buildRecommendations(topIssues []schema.TopIssue) []schema.Recommendation {
	if len(topIssues) == 0 {
		return []schema.Recommendation{DefaultRecommendation}
	}
	recs := make([]schema.Recommendation, 0, len(topIssues))
	for _, issue := range topIssues {
		for _, p := range Patterns {
			if p.Category != issue.Category {
				continue
			}
			recs = append(recs, schema.Recommendation{
				Principle:   p.Principle,
				Description: p.Description,
				ActionItems: p.ActionItems,
				Priority:    p.Severity,
			})
			break
		}
	}
	return recs
}

// overallScore turns the severity-weighted issue share into a score in
// [minOverallScore, perfectScore]. No matched categories means a perfect
// score even when comments were present.
func overallScore(topIssues []schema.TopIssue) float64 {
	penalty := 0.0
	for _, issue := range topIssues {
		penalty += issue.Percentage * issue.Severity.Weight() / 100
	}
	penalty = min(penalty*penaltyScale, maxPenalty)
	return max(minOverallScore, perfectScore-penalty)
}
