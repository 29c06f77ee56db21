/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/josephgoksu/promptfy/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// isInteractive and runForm are swapped in tests.
	isInteractive = ui.IsInteractive
	runForm       = ui.RunForm
)

var formPrint bool

// formCmd represents the form command
var formCmd = &cobra.Command{
	Use:   "form <methodology>",
	Short: "Fill a methodology form in the terminal",
	Long: `Open an interactive form for one methodology.

  tab / shift+tab   move between fields
  ctrl+s            generate the prompt
  c                 copy it (in the preview)
  e                 back to editing
  esc / ctrl+c      quit`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: methodologyIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormCmd(cmd, args[0])
	},
}

func runFormCmd(cmd *cobra.Command, id string) error {
	def, err := resolveMethodology(id)
	if err != nil {
		return err
	}
	if !isInteractive() {
		return fmt.Errorf("form needs an interactive terminal; try 'promptfy build %s --set ...'", def.ID)
	}

	log := newLogger(false)
	defer log.Sync()
	defer logger.HandlePanic(log, os.Stderr, "form")

	tel := newTelemetryClient()
	defer func() { _ = tel.Close() }()

	prompt, err := runForm(def, ui.FormOptions{
		Prefill:   GetConfig().Form.Prefill,
		Publisher: publisher,
		Telemetry: tel,
	})
	if err != nil {
		return err
	}
	if formPrint && prompt != "" {
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.Flags().BoolVar(&formPrint, "print", false, "print the last generated prompt after the form closes")
}
