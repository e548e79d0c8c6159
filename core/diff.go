// Package core has analysis logic for merge request review data.
package core

import (
	"strings"

	"github.com/huangsam/reviewlens/schema"
)

// ParseDiffStats counts added and deleted lines in one unified diff blob.
// File header lines (+++/---) are not counted. Empty input yields zeros.
func ParseDiffStats(diff string) schema.DiffStat {
	var stat schema.DiffStat
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stat.Added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stat.Deleted++
		}
	}
	return stat
}

// ChangesDiffStats folds diff stats over every file in a changes payload.
func ChangesDiffStats(changes schema.MRChanges) (filesChanged int, stat schema.DiffStat) {
	filesChanged = len(changes.Changes)
	for _, change := range changes.Changes {
		if change.Diff == "" {
			continue
		}
		fileStat := ParseDiffStats(change.Diff)
		stat.Added += fileStat.Added
		stat.Deleted += fileStat.Deleted
	}
	return filesChanged, stat
}
