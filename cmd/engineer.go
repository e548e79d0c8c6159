package cmd

import (
	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/spf13/cobra"
)

// engineerCmd performs per-engineer review analysis.
var engineerCmd = &cobra.Command{
	Use:   "engineer <username> [project]",
	Short: "Show an individual engineer's review activity and feedback quality.",
	Long: `Analyze one engineer's authored and reviewed merge requests.

Builds a per-engineer report covering:
- Weekly authored, reviewed, and merged activity
- Average time to merge and review cycle counts
- Feedback quality score from classified review comments
- Response behavior on threads the engineer opened as a reviewer

Comment classification samples recent merge requests only, to bound
API calls against large projects.

Examples:
  # Report for one engineer over the default month
  reviewlens engineer alice --project group/repo

  # Quarterly report as JSON
  reviewlens engineer alice --project group/repo --timeframe 90d --output json`,
	Args: cobra.RangeArgs(1, 2),
	// The first argument is the username; an optional second names the project.
	PreRunE: func(cmd *cobra.Command, args []string) error {
		project := ""
		if len(args) == 2 {
			project = args[1]
		}
		return sharedSetup(rootCtx, cmd, project)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteEngineerReport(rootCtx, cfg, sourceClient, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot run engineer analysis", err)
		}
	},
}
