// Package mcp exposes the methodology catalog to MCP clients: one prompt per
// methodology plus tools to list the catalog and build a prompt.
package mcp

// Tool names
const (
	ToolBuildPrompt       = "build-prompt"
	ToolListMethodologies = "list-methodologies"
)

// ServerName is reported in the MCP implementation info.
const ServerName = "promptfy"
