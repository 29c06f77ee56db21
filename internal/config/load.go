package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/promptfy/types"
	"github.com/spf13/viper"
)

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// Prepare wires env handling, defaults and the config file location into v.
// An explicit cfgFile wins over the search paths.
func Prepare(v *viper.Viper, cfgFile string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return
	}
	for _, p := range SearchPaths() {
		v.AddConfigPath(p)
	}
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
}

// Read loads the config file if one exists. A missing file is not an error
// unless it was requested explicitly.
func Read(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && !explicit {
		return nil
	}
	return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
}

// Unmarshal decodes v into an AppConfig and validates it.
func Unmarshal(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load runs Prepare, Read and Unmarshal.
func Load(v *viper.Viper, cfgFile string) (types.AppConfig, error) {
	Prepare(v, cfgFile)
	if err := Read(v, cfgFile != ""); err != nil {
		return types.AppConfig{}, err
	}
	return Unmarshal(v)
}

// Watch re-reads the config file whenever it changes on disk and hands the
// validated result to onChange. Invalid edits go to onError and the previous
// config stays in effect.
func Watch(v *viper.Viper, onChange func(types.AppConfig, fsnotify.Event), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := Unmarshal(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg, e)
	})
	v.WatchConfig()
}
