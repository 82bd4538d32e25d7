package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlmathbook/mlmath/internal/config"
	mcpserver "github.com/mlmathbook/mlmath/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing chapter listing, content, outline, and search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "mlmath MCP server started on stdio (content=%s)\n", cfg.ContentDir)

		srv := mcpserver.NewServer(cfg.ContentDir)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
