package cmd

import (
	"github.com/huangsam/reviewlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Reviewlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to query review analytics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, "")
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, sourceClient, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
