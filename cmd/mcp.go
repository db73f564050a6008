package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The timer runs headless while the server is up; every timer command is
available as a tool.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return errors.New("the MCP server is disabled (set mcp.enabled = true in the config)")
		}

		// stdout carries the protocol
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "🚀 Starting MCP server...")
		fmt.Fprintln(errOut, "   The server will communicate via stdio")
		fmt.Fprintln(errOut, "   Press Ctrl+C to stop")

		ctx, cancel := setupSignalHandler(cmd.Context())
		defer cancel()

		engine, err := startEngine(ctx)
		if err != nil {
			return err
		}

		server := mcp.NewServer(engine, app.stats)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
