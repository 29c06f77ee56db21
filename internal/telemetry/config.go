// Package telemetry manages opt-in, anonymous usage events for Promptfy.
// Only methodology ids, surfaces and counts are ever sent; field text never is.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ConfigFileName is the name of the telemetry configuration file.
const ConfigFileName = "telemetry.json"

// Config holds the telemetry state and user preferences.
// Stored at ~/.promptfy/telemetry.json (separate from main config).
type Config struct {
	// Enabled indicates whether telemetry is currently enabled.
	Enabled bool `json:"enabled"`

	// ConsentAsked indicates whether the user has made a choice.
	ConsentAsked bool `json:"consent_asked"`

	// AnonymousID is a random UUID generated once on first load.
	AnonymousID string `json:"anonymous_id"`
}

// Store reads and writes the telemetry config on a filesystem.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir on fs.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// DefaultStore returns the store at ~/.promptfy on the OS filesystem.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return NewStore(afero.NewOsFs(), filepath.Join(home, ".promptfy")), nil
}

// Path returns the full path to the telemetry config file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, ConfigFileName)
}

// Load reads the telemetry configuration. A missing file yields a disabled
// config with a fresh anonymous ID.
func (s *Store) Load() (*Config, error) {
	cfg := &Config{}

	data, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.AnonymousID = uuid.New().String()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the configuration with owner-only permissions.
func (s *Store) Save(c *Config) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.Path(), data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Enable turns on telemetry and marks consent as given.
func (c *Config) Enable() {
	c.Enabled = true
	c.ConsentAsked = true
}

// Disable turns off telemetry and marks consent as given.
func (c *Config) Disable() {
	c.Enabled = false
	c.ConsentAsked = true
}

// IsEnabled returns true if telemetry is currently enabled.
func (c *Config) IsEnabled() bool {
	return c.Enabled
}
