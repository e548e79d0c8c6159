package cmd

import (
	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/spf13/cobra"
)

// teamCmd performs team-level review analysis.
var teamCmd = &cobra.Command{
	Use:   "team [project]",
	Short: "Show team-level review health for a project.",
	Long: `Analyze merge request activity across the whole team.

Fetches merge requests in the selected timeframe and computes:
- Merged, open, and draft counts with per-change averages
- Time to merge and time to first review
- Draft and active review phase durations
- Distribution of changes by size and reviewer count
- Weekly merge trends and notable fastest/slowest merges

Results are cached, so repeat runs within the cache window are instant.

Examples:
  # Month of review activity for a project
  reviewlens team --project group/repo

  # Quarterly view with CSV trend export
  reviewlens team --project group/repo --timeframe 90d --output csv --output-file trends.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeamReport(rootCtx, cfg, sourceClient, cacheManager); err != nil {
			contract.LogFatal("Cannot run team analysis", err)
		}
	},
}
