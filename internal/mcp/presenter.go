package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/promptfy/internal/methodology"
)

// FormatError returns a Markdown error for the LLM to read.
func FormatError(message string) string {
	return fmt.Sprintf("## ❌ Error\n\n**Details**: %s", message)
}

// FormatFieldErrors lists every rejected field in field order.
func FormatFieldErrors(fe *methodology.FieldErrors) string {
	var sb strings.Builder
	sb.WriteString("## ❌ Validation Error\n\n")
	fmt.Fprintf(&sb, "**Methodology**: `%s`\n", fe.Methodology)
	for _, e := range fe.Errors {
		fmt.Fprintf(&sb, "- **Field** `%s`: %s\n", e.Field, e.Message)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatDefinition describes a methodology and its fields as Markdown.
func FormatDefinition(d *methodology.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (`%s`)\n\n", d.Name, d.ID)
	sb.WriteString(d.Summary)
	sb.WriteString("\n\n")
	for _, f := range d.Fields {
		req := "optional"
		if f.Required {
			req = "required"
			if f.MinLength > 0 {
				req = fmt.Sprintf("required, min %d chars", f.MinLength)
			}
		}
		fmt.Fprintf(&sb, "- `%s` (%s): %s\n", f.Name, req, f.Label)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatCatalog describes every methodology.
func FormatCatalog(defs []*methodology.Definition) string {
	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		parts = append(parts, FormatDefinition(d))
	}
	return strings.Join(parts, "\n\n")
}
