package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer registers every methodology as a prompt, plus the catalog tools.
func NewServer(version string, h *Handlers) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    ServerName,
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{})

	for _, d := range h.Catalog.All() {
		server.AddPrompt(&mcpsdk.Prompt{
			Name:        string(d.ID),
			Description: d.Summary,
			Arguments:   PromptArguments(d),
		}, h.PromptHandler(d))
	}

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolListMethodologies,
		Description: "Describe the prompt methodologies and the fields each one accepts.",
	}, h.ListMethodologiesHandler())

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolBuildPrompt,
		Description: "Validate field values for a methodology and return the assembled prompt.",
	}, h.BuildPromptHandler())

	return server
}

// Run serves over stdin/stdout until the client disconnects.
func Run(ctx context.Context, server *mcpsdk.Server) error {
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
