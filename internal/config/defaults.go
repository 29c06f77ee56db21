// Package config provides centralized configuration defaults and loading for Promptfy.
// All default values are defined here to ensure a single source of truth.
package config

import "github.com/spf13/viper"

const (
	// ConfigName is the config file name searched for (without extension)
	ConfigName = ".promptfy"

	// EnvPrefix is prepended to environment overrides, e.g. PROMPTFY_SERVER_PORT
	EnvPrefix = "PROMPTFY"
)

// Server defaults
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 5173
)

// DefaultAllowedOrigins are the origins allowed to call the JSON API
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Logging defaults
const (
	DefaultLogMode  = "dev"
	DefaultLogLevel = "info"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.allowedOrigins", DefaultAllowedOrigins)

	v.SetDefault("log.mode", DefaultLogMode)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetDefault("form.prefill", true)

	v.SetDefault("telemetry.apiKey", "")
	v.SetDefault("telemetry.endpoint", "")
}
