/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Form      FormConfig      `mapstructure:"form"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds settings for the web surface
type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" validate:"dive,url"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Mode  string `mapstructure:"mode" validate:"required,oneof=dev prod"`
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// FormConfig controls how forms start out
type FormConfig struct {
	// Prefill populates new forms with each field's example text
	Prefill bool `mapstructure:"prefill"`
}

// TelemetryConfig holds the (optional) PostHog project settings
type TelemetryConfig struct {
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}
