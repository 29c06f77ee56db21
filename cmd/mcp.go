/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"

	"github.com/josephgoksu/promptfy/internal/mcp"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server over stdin/stdout.

Each methodology is offered as an MCP prompt whose arguments are its fields.
Two tools are also available: list-methodologies and build-prompt.

Example usage with an MCP client:
  promptfy mcp

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func runMCPServer(ctx context.Context) error {
	// stdout carries the protocol, so logging stays on stderr and off by default.
	log := newLogger(false)
	defer log.Sync()
	tel := newTelemetryClient()
	defer func() { _ = tel.Close() }()

	server := mcp.NewServer(version, &mcp.Handlers{
		Catalog:   methodology.Default(),
		Logger:    log,
		Telemetry: tel,
	})
	return mcp.Run(ctx, server)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
