/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/josephgoksu/promptfy/internal/config"
	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/josephgoksu/promptfy/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// configErr is reported by the root command before any subcommand runs.
var configErr error

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	GlobalAppConfig, configErr = config.Load(viper.GetViper(), cfgFile)
	if configErr != nil {
		return
	}
	if GlobalAppConfig.Verbose {
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintln(os.Stderr, "Using config file:", used)
		}
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// newLogger builds the zap logger for a command. Terminal commands stay quiet
// unless --verbose is set; servers always log at the configured level.
func newLogger(server bool) *logger.Logger {
	cfg := GetConfig()
	if !server && !cfg.Verbose {
		return logger.Nop()
	}

	mode, level := cfg.Log.Mode, cfg.Log.Level
	if mode == "" {
		mode = config.DefaultLogMode
	}
	if level == "" {
		level = config.DefaultLogLevel
	}
	if cfg.Verbose {
		level = "debug"
	}

	l, err := logger.New(mode, level)
	if err != nil {
		LogError("logger setup failed", err)
		return logger.Nop()
	}
	return l
}
