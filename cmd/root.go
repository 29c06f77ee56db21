/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "1.0.0"
)

// errSilent marks failures whose details were already printed.
var errSilent = errors.New("")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptfy",
	Short: "Promptfy builds structured prompts for AI coding assistants.",
	Long: `Promptfy turns what you know about a problem into a ready-to-paste prompt,
using one of three methodologies:

  diverge         explore alternative designs before converging
  tracer-bullet   grow a working end-to-end slice one step at a time
  agent-planning  plan up front with high-level specs and mini-ADRs

Fill a form in the browser (serve), in the terminal (form), in one shot
from the command line (build), or from an MCP client (mcp).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanicFunc(func() *logger.Logger { return newLogger(false) }, os.Stderr, "cli")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			PrintError(fmt.Sprintf("Error: %v", err), err)
		}
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.promptfy.yaml or $HOME/.promptfy.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
