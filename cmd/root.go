// Package cmd provides the command-line interface for freqwatch with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration with clear precedence:
//	1. Command-line flags (--root, --interval, etc.) - highest priority
//	2. Individual environment variables (FREQWATCH_ROOT, etc.)
//	3. Configuration file (.freqwatch.yml) - lowest priority
//
// Environment Variables:
//
//	FREQWATCH_CONFIG_FILE: Path to custom configuration file
//	FREQWATCH_ROOT: Override the scanned directory
//	FREQWATCH_INTERVAL: Override the scan interval
//	And more following the FREQWATCH_<SECTION>_<OPTION> pattern
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzielinski/freqwatch/internal/config"
	"github.com/mzielinski/freqwatch/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "freqwatch",
	Short: "Periodic word-frequency statistics for a directory of text files",
	Long: `Freqwatch periodically scans a directory tree for .txt files and reports,
per file, the ten most frequent words.

A single producer walks the directory on a fixed interval and feeds
discovered files into a bounded queue; a small pool of consumers drains the
queue and computes the ranked word counts.

Quick Start:
  freqwatch init                  Write a default .freqwatch.yml
  freqwatch run                   Start the pipeline (Ctrl-C stops it)
  freqwatch scan                  Run a single pass and exit
  freqwatch version               Show version information`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .freqwatch.yml, can also use FREQWATCH_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. FREQWATCH_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .freqwatch.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("FREQWATCH_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".freqwatch")
	}

	viper.SetEnvPrefix("FREQWATCH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file falls back to defaults.
	_ = viper.ReadInConfig()
}

// newLogger builds the process logger from loaded configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
}
