/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/spf13/cobra"
)

// telemetryStore is swapped in tests.
var telemetryStore = telemetry.DefaultStore

// newTelemetryClient returns a PostHog client when an API key is configured
// and the user opted in. Any failure degrades to a no-op client.
func newTelemetryClient() telemetry.Client {
	cfg := GetConfig()
	if cfg.Telemetry.APIKey == "" {
		return telemetry.NewNoopClient()
	}

	store, err := telemetryStore()
	if err != nil {
		LogError("telemetry store unavailable", err)
		return telemetry.NewNoopClient()
	}
	tc, err := store.Load()
	if err != nil {
		LogError("telemetry config unreadable", err)
		return telemetry.NewNoopClient()
	}

	client, err := telemetry.New(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Endpoint: cfg.Telemetry.Endpoint,
		Version:  version,
		Config:   tc,
	})
	if err != nil {
		LogError("telemetry client setup failed", err)
		return telemetry.NewNoopClient()
	}
	return client
}

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage Promptfy's anonymous telemetry settings.

Telemetry is off until you enable it. When on, Promptfy records which
methodology was used, from which surface, and how many sections the prompt
had. The text you type is never sent.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelemetryStatus(cmd)
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd, true)
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd, false)
	},
}

func runTelemetryStatus(cmd *cobra.Command) error {
	store, err := telemetryStore()
	if err != nil {
		return fmt.Errorf("failed to read telemetry status: %w", err)
	}
	tc, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to read telemetry status: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case !tc.ConsentAsked:
		fmt.Fprintln(out, "📊 Telemetry: not configured (off)")
		fmt.Fprintln(out, "   To enable: promptfy telemetry enable")
	case tc.IsEnabled():
		fmt.Fprintln(out, "📊 Telemetry: enabled")
		fmt.Fprintf(out, "   Anonymous ID: %s\n", tc.AnonymousID)
		fmt.Fprintln(out, "   To disable: promptfy telemetry disable")
	default:
		fmt.Fprintln(out, "📊 Telemetry: disabled")
		fmt.Fprintln(out, "   To enable: promptfy telemetry enable")
	}
	if GetConfig().Telemetry.APIKey == "" {
		fmt.Fprintln(out, "   No telemetry.apiKey configured; nothing will be sent.")
	}
	return nil
}

func setTelemetry(cmd *cobra.Command, enabled bool) error {
	action := "disable"
	if enabled {
		action = "enable"
	}

	store, err := telemetryStore()
	if err != nil {
		return fmt.Errorf("failed to %s telemetry: %w", action, err)
	}
	tc, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to %s telemetry: %w", action, err)
	}
	if enabled {
		tc.Enable()
	} else {
		tc.Disable()
	}
	if err := store.Save(tc); err != nil {
		return fmt.Errorf("failed to %s telemetry: %w", action, err)
	}

	if enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry enabled. Thank you for helping improve Promptfy!")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry disabled.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
