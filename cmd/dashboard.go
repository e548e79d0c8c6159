package cmd

import (
	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd shows the live open-review picture.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard [project]",
	Short: "Show open reviews, reviewer workload, and a suggested next reviewer.",
	Long: `Display the current open merge requests and who is carrying them.

Computes per-engineer workload from open authored changes, active review
assignments, and the complexity of both, then suggests the least loaded
reviewer. Restrict suggestions to a subset with --reviewers.

This view always reflects the live open set and is never cached.

Examples:
  # Full workload picture
  reviewlens dashboard --project group/repo

  # Suggest only from a reviewer pool
  reviewlens dashboard --project group/repo --reviewers alice,bob,carol`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, sourceClient, cacheManager); err != nil {
			contract.LogFatal("Cannot run dashboard", err)
		}
	},
}
