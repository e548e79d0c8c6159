package core

import "github.com/huangsam/reviewlens/schema"

// NextReviewer picks the least-loaded engineer from stats. A non-empty
// pool restricts candidates to those usernames; when no candidate
// qualifies the result is nil.
func NextReviewer(stats []schema.EngineerStats, pool []string) *schema.EngineerStats {
	allowed := map[string]struct{}{}
	for _, name := range pool {
		allowed[name] = struct{}{}
	}

	var best *schema.EngineerStats
	for i := range stats {
		s := &stats[i]
		if len(allowed) > 0 {
			if _, ok := allowed[s.User.Username]; !ok {
				continue
			}
		}
		if best == nil || s.WorkloadScore < best.WorkloadScore {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	pick := *best
	return &pick
}
