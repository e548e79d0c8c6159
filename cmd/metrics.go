package cmd

import (
	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scores.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for all review scores",
	Long: `Show the formal definitions, formulas, and weights behind every score.

Provides complete transparency into how results are computed, including:
- Complexity score factors and label thresholds
- Workload score weights used for reviewer suggestions
- Feedback quality scoring and comment categories

No API calls are performed - this is purely informational.

Examples:
  # Show scoring reference
  reviewlens metrics`,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScoringReference(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
