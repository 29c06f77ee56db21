/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/ui"
	"github.com/spf13/cobra"
)

type listOptions struct {
	asJSON bool
	fields bool
}

var listOpts listOptions

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the available methodologies",
	Long: `List the three prompt methodologies with a one-line summary each.
Use --fields to also show every field a methodology accepts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, listOpts)
	},
}

func runList(cmd *cobra.Command, opts listOptions) error {
	defs := methodology.Default().All()
	out := cmd.OutOrStdout()

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Methodologies []*methodology.Definition `json:"methodologies"`
		}{defs})
	}

	ui.RenderPageHeader(out, "Promptfy methodologies", "Run 'promptfy form <id>' or 'promptfy build <id> --set field=value'.")

	table := &ui.Table{
		Headers:  []string{"ID", "Name", "Required", "Summary"},
		MaxWidth: 60,
	}
	for _, d := range defs {
		table.Rows = append(table.Rows, []string{string(d.ID), d.Name, d.RequiredField().Name, d.Summary})
	}
	fmt.Fprint(out, table.Render())

	if !opts.fields {
		return nil
	}
	for _, d := range defs {
		var body strings.Builder
		for i, f := range d.Fields {
			rule := "optional"
			if f.Required {
				rule = fmt.Sprintf("required, min %d", f.MinLength)
			}
			if i > 0 {
				body.WriteString("\n")
			}
			fmt.Fprintf(&body, "%-18s %-20s %s", f.Name, "("+rule+")", f.Label)
		}
		fmt.Fprintf(out, "\n%s\n", ui.NewPanel(ui.TitleCase(d.Name), body.String()).Render())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listOpts.asJSON, "json", false, "print the methodology schemas as JSON")
	listCmd.Flags().BoolVar(&listOpts.fields, "fields", false, "show every field of each methodology")
}
