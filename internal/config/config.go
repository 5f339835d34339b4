// Package config provides settings for the somnoset CLI itself using
// Viper: log level and format, plus root-hint overrides for the
// bootstrap search. This is distinct from the managed Somno settings
// document, which internal/schema owns.
package config

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/adrg/xdg"

	"github.com/stafne/somno/internal/locate"
)

// AppName is the tool name used for config file placement.
const AppName = "somnoset"

// Config represents the top-level somnoset configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Root-hint overrides. Empty values defer to locate.DefaultRoots.
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	ResourceDir string `mapstructure:"resource_dir" yaml:"resource_dir"`
	RuntimeDir  string `mapstructure:"runtime_dir" yaml:"runtime_dir"`
	DevRoot     string `mapstructure:"dev_root" yaml:"dev_root"`
}

// Init initializes Viper with defaults and search paths.
// Call this once at startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	viper.SetEnvPrefix("SOMNO")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back
// to defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// An explicitly requested file must exist.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Roots derives bootstrap root hints: platform defaults overlaid with
// any overrides from the config file or environment.
func (c *Config) Roots() locate.Roots {
	roots := locate.DefaultRoots()
	if c.DataDir != "" {
		roots.UserDataDir = c.DataDir
	}
	if c.ResourceDir != "" {
		roots.ResourceDir = c.ResourceDir
	}
	if c.RuntimeDir != "" {
		roots.RuntimeDir = c.RuntimeDir
	}
	if c.DevRoot != "" {
		roots.DevRoot = c.DevRoot
	}
	return roots
}
