// Package config provides configuration management for freqwatch using
// Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with the FREQWATCH_ prefix. Defaults reproduce the classic
// setup: scan the "files" directory every 15 seconds with two consumers.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Root is the directory tree scanned for .txt files.
	Root string `yaml:"root" mapstructure:"root"`
	// Interval is the pause between two scan passes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Consumers is the number of counting workers. The work queue
	// capacity equals this value.
	Consumers int         `yaml:"consumers" mapstructure:"consumers"`
	Watch     WatchConfig `yaml:"watch" mapstructure:"watch"`
	Log       LogConfig   `yaml:"log" mapstructure:"log"`
}

type WatchConfig struct {
	// Enabled turns on the fsnotify trigger that starts a scan pass as
	// soon as files under the root change, instead of waiting out the
	// interval.
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

const (
	DefaultRoot      = "files"
	DefaultInterval  = 15 * time.Second
	DefaultConsumers = 2
	DefaultDebounce  = 300 * time.Millisecond
)

// Default returns the configuration used when no file, environment
// variable, or flag overrides anything.
func Default() *Config {
	return &Config{
		Root:      DefaultRoot,
		Interval:  DefaultInterval,
		Consumers: DefaultConsumers,
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: DefaultDebounce,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for anything not explicitly set
	if config.Root == "" {
		config.Root = DefaultRoot
	}
	if !viper.IsSet("interval") && config.Interval == 0 {
		config.Interval = DefaultInterval
	}
	if !viper.IsSet("consumers") && config.Consumers == 0 {
		config.Consumers = DefaultConsumers
	}
	if !viper.IsSet("watch.debounce") && config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	// Handle watch enable set via viper (workaround for viper bool handling)
	if viper.IsSet("watch.enabled") {
		config.Watch.Enabled = viper.GetBool("watch.enabled")
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validatePath(config.Root); err != nil {
		return fmt.Errorf("root: %w", err)
	}

	if config.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", config.Interval)
	}

	if config.Consumers < 1 {
		return fmt.Errorf("consumers must be at least 1, got %d", config.Consumers)
	}

	if config.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %s", config.Watch.Debounce)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", config.Log.Format)
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
