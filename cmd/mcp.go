package cmd

import (
	"github.com/huangsam/repocat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [table]",
	Short: "Start the repocat MCP server",
	Long: `Launch an MCP server on stdio so AI agents can classify projects via standard tools.

The optional table and every flag become defaults that each tool call may override.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, tableManager)
	},
}
