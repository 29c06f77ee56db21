/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// MCP Tool Parameter Types

// BuildPromptParams for assembling a prompt from one methodology
type BuildPromptParams struct {
	Methodology string            `json:"methodology" mcp:"Methodology id: diverge, tracer-bullet, agent-planning (required)"`
	Fields      map[string]string `json:"fields" mcp:"Field values keyed by field name; see list-methodologies"`
}

// ListMethodologiesParams for listing the methodology catalog
type ListMethodologiesParams struct {
	Methodology string `json:"methodology,omitempty" mcp:"Only describe this methodology"`
}

// MCP Tool Response Types

// PromptResponse is the result of build-prompt
type PromptResponse struct {
	Methodology string   `json:"methodology"`
	Prompt      string   `json:"prompt"`
	Sections    []string `json:"sections"`
}
