/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/promptfy/internal/clipboard"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/josephgoksu/promptfy/internal/ui"
	"github.com/josephgoksu/promptfy/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// appFs is the filesystem --out writes to. Swapped in tests.
	appFs = afero.NewOsFs()
	// publisher is the clipboard used by --copy and the terminal form.
	publisher clipboard.Publisher = clipboard.NewSystem()
)

type buildOptions struct {
	sets       []string
	stdinField string
	copy       bool
	out        string
	asJSON     bool
}

var buildOpts buildOptions

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <methodology>",
	Short: "Build a prompt in one shot from flags",
	Long: `Validate field values and print the assembled prompt.

Each --set takes field=value; run 'promptfy list --fields' for field names.
Use --stdin to read one field (usually the long one) from standard input.`,
	Example: `  promptfy build agent-planning --set goal="Build a collaborative task app"
  git diff | promptfy build tracer-bullet --stdin workingCode --set nextSlice="Add auth"
  promptfy build diverge --set problemStatement="Onboarding drops users" --copy`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: methodologyIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd, args[0], buildOpts)
	},
}

func runBuild(cmd *cobra.Command, id string, opts buildOptions) error {
	def, err := resolveMethodology(id)
	if err != nil {
		return err
	}

	in, err := parseFieldSets(def, opts.sets)
	if err != nil {
		return err
	}
	if opts.stdinField != "" {
		if _, ok := def.Field(opts.stdinField); !ok {
			return unknownFieldError(def, opts.stdinField)
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		in[opts.stdinField] = string(data)
	}

	log := newLogger(false)
	defer log.Sync()
	tel := newTelemetryClient()
	defer func() { _ = tel.Close() }()

	v, err := def.Validate(in)
	if err != nil {
		var fe *methodology.FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		tel.Track(telemetry.ValidationFailed(string(def.ID), telemetry.SurfaceCLI, fe.Fields()))
		return reportFieldErrors(cmd, fe, opts.asJSON)
	}

	prompt, err := def.Assemble(v)
	if err != nil {
		return err
	}
	sections := def.Sections(v)
	tel.Track(telemetry.PromptGenerated(string(def.ID), telemetry.SurfaceCLI, len(sections)))
	log.Debug("prompt built", "methodology", def.ID, "sections", len(sections))

	switch {
	case opts.out != "":
		if err := afero.WriteFile(appFs, opts.out, []byte(prompt), 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Prompt written to %s\n", ui.StylePrefixDone.Render("✓"), opts.out)
	case opts.asJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(types.PromptResponse{Methodology: string(def.ID), Prompt: prompt, Sections: sections}); err != nil {
			return err
		}
	default:
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
	}

	if opts.copy {
		copyErr := publisher.Publish(prompt)
		tel.Track(telemetry.PromptCopied(string(def.ID), telemetry.SurfaceCLI, copyErr == nil))
		if copyErr != nil {
			log.Debug("clipboard write failed", "error", copyErr)
			fmt.Fprintln(cmd.ErrOrStderr(), ui.StylePrefixWarn.Render("Clipboard unavailable; copy the prompt from the output instead."))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Copied to clipboard\n", ui.StylePrefixDone.Render("✓"))
		}
	}
	return nil
}

// parseFieldSets turns repeated field=value flags into an input. A later
// value for the same field wins.
func parseFieldSets(def *methodology.Definition, sets []string) (methodology.Input, error) {
	in := def.EmptyInput()
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", s)
		}
		name = strings.TrimSpace(name)
		if _, known := def.Field(name); !known {
			return nil, unknownFieldError(def, name)
		}
		in[name] = value
	}
	return in, nil
}

func unknownFieldError(def *methodology.Definition, name string) error {
	return fmt.Errorf("%s has no field %q (fields: %s)", def.ID, name, strings.Join(def.FieldNames(), ", "))
}

// reportFieldErrors prints one line per rejected field and returns errSilent
// so the exit status is 1 without repeating the message.
func reportFieldErrors(cmd *cobra.Command, fe *methodology.FieldErrors, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(types.NewValidationError(string(fe.Methodology), fe.Map()))
	}
	lines := make([]string, 0, len(fe.Errors))
	for _, e := range fe.Errors {
		lines = append(lines, fmt.Sprintf("%s %s: %s", ui.StylePrefixError.Render("✗"), e.Field, e.Message))
	}
	title := fmt.Sprintf("%s: fix %d field(s)", fe.Methodology, len(lines))
	fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderErrorPanel(title, strings.Join(lines, "\n")))
	return errSilent
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringArrayVarP(&buildOpts.sets, "set", "s", nil, "field=value (repeatable)")
	buildCmd.Flags().StringVar(&buildOpts.stdinField, "stdin", "", "read this field's value from standard input")
	buildCmd.Flags().BoolVar(&buildOpts.copy, "copy", false, "also copy the prompt to the clipboard")
	buildCmd.Flags().StringVarP(&buildOpts.out, "out", "o", "", "write the prompt to a file instead of stdout")
	buildCmd.Flags().BoolVar(&buildOpts.asJSON, "json", false, "print the result as JSON")
}
