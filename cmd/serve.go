/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/promptfy/internal/config"
	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/josephgoksu/promptfy/internal/server"
	"github.com/josephgoksu/promptfy/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the methodology pages and JSON API",
	Long: `Start the web interface: a landing page, one form page per methodology,
and a JSON API under /api.

Edits to the config file are picked up while running: form.prefill and
log.level apply immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg := GetConfig()
	host, port := cfg.Server.Host, cfg.Server.Port
	if cmd.Flags().Changed("host") {
		host = serveHost
	}
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	log := newLogger(true)
	defer log.Sync()
	tel := newTelemetryClient()
	defer func() { _ = tel.Close() }()

	srv, err := server.New(server.Options{
		Host:           host,
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Prefill:        cfg.Form.Prefill,
		Logger:         log,
		Telemetry:      tel,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		config.Watch(viper.GetViper(), func(next types.AppConfig, e fsnotify.Event) {
			applyConfigReload(srv, log, cfg.Verbose, next, e.Name)
		}, func(err error) {
			log.Warn("config change rejected", "error", err)
		})
		log.Debug("watching config", "file", used)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)
	fmt.Fprintf(cmd.OutOrStdout(), "🚀 Promptfy is running at http://%s (ctrl+c to stop)\n", srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		fmt.Fprintln(cmd.OutOrStdout(), "\n⏹️  Shutting down...")
	case runErr = <-errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown error", "error", err)
	}
	wg.Wait()

	return runErr
}

// applyConfigReload hot-applies the settings serve can change while running.
// --verbose pins the level at debug.
func applyConfigReload(srv *server.Server, log *logger.Logger, verbose bool, next types.AppConfig, file string) {
	srv.SetPrefill(next.Form.Prefill)

	level := next.Log.Level
	if verbose {
		level = "debug"
	}
	if err := log.SetLevel(level); err != nil {
		log.Warn("log level not applied", "error", err)
	}
	log.Info("config reloaded", "file", file, "prefill", next.Form.Prefill, "level", log.Level())
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "interface to listen on")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", config.DefaultPort, "port to listen on")
}
