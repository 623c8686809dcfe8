package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	configData Config
	v          *viper.Viper
)

// Config holds all configuration settings.
type Config struct {
	// Package manager configuration
	PackageManager struct {
		Binary   string `mapstructure:"binary"`
		UserFlag string `mapstructure:"user_flag"`
	} `mapstructure:"package_manager"`
	// Probe configuration
	Probe struct {
		Interpreter string
	}
	// Plugin list configuration
	Plugins struct {
		ListPath string `mapstructure:"list_path"`
	}
	// Logging configuration
	Log struct {
		Level  string
		Format string
	}
}

// Initialize sets up the configuration system.
func Initialize() error {
	v = viper.New()

	// Set config name and paths
	v.SetConfigName("config")         // name of config file (without extension)
	v.SetConfigType("yaml")           // config file type
	v.AddConfigPath(".")              // optionally look for config in working directory
	v.AddConfigPath("$HOME/.plugman") // look for config in .plugman directory in home
	v.AddConfigPath("/etc/plugman/")  // path to look for the config file in

	// Set default values
	setDefaults()

	// Environment variables
	v.SetEnvPrefix("PLUGMAN") // prefix for env vars
	v.AutomaticEnv()          // read in environment variables that match
	v.SetEnvKeyReplacer(      // replace dots with underscores in env vars
		strings.NewReplacer(".", "_"),
	)

	// Create config file if it doesn't exist
	if err := ensureConfig(); err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}

	// Read in config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if we can't find a config file, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal config into struct
	if err := v.Unmarshal(&configData); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return nil
}

// setDefaults sets default values for all configuration options.
func setDefaults() {
	// Package manager defaults
	v.SetDefault("package_manager.binary", "pip")
	v.SetDefault("package_manager.user_flag", "--user")

	// Probe defaults
	v.SetDefault("probe.interpreter", "python3")

	// Plugin list default; empty means derive from the application root
	v.SetDefault("plugins.list_path", "")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
}

// ensureConfig creates a default config file if none exists.
func ensureConfig() error {
	// Check if config file exists
	if _, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".plugman")); os.IsNotExist(err) {
		// Create directory
		if err := os.MkdirAll(filepath.Join(os.Getenv("HOME"), ".plugman"), 0o755); err != nil {
			return err
		}
	}

	configFile := filepath.Join(os.Getenv("HOME"), ".plugman", "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// Create default config file
		defaultConfig := `# Plugman Configuration File
package_manager:
  binary: pip
  user_flag: --user

probe:
  interpreter: python3

plugins:
  # empty means <app root>/resources/plugin_list.yml
  list_path: ""

log:
  level: info
  format: human
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the current configuration.
func Get() *Config {
	return &configData
}

// GetViper returns the viper instance.
func GetViper() *viper.Viper {
	return v
}
