package cli

import (
	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/supportrag/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the knowledge base over MCP on stdio",
	Long: `Exposes the ask and health operations as MCP tools, so agent
tooling can query the support knowledge base directly.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := initChat(cmd.Context()); err != nil {
		return err
	}
	return mcp.NewServer(chatService).Run(cmd.Context())
}
