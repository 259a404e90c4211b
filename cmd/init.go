package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mzielinski/freqwatch/internal/config"
)

const configFileName = ".freqwatch.yml"

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Init writes a .freqwatch.yml with the default configuration to the
current directory, ready to be edited.

Examples:
  freqwatch init            # Create .freqwatch.yml
  freqwatch init --force    # Overwrite an existing one`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

// configFile mirrors config.Config with durations as strings, so the
// scaffolded YAML reads "15s" instead of raw nanoseconds.
type configFile struct {
	Root      string `yaml:"root"`
	Interval  string `yaml:"interval"`
	Consumers int    `yaml:"consumers"`
	Watch     struct {
		Enabled  bool   `yaml:"enabled"`
		Debounce string `yaml:"debounce"`
	} `yaml:"watch"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(configFileName); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", configFileName)
		}
	}

	defaults := config.Default()

	var out configFile
	out.Root = defaults.Root
	out.Interval = defaults.Interval.String()
	out.Consumers = defaults.Consumers
	out.Watch.Enabled = defaults.Watch.Enabled
	out.Watch.Debounce = defaults.Watch.Debounce.String()
	out.Log.Level = defaults.Log.Level
	out.Log.Format = defaults.Log.Format

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encoding default configuration: %w", err)
	}

	content := append([]byte("# freqwatch configuration\n"), data...)
	if err := os.WriteFile(configFileName, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configFileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configFileName)

	return nil
}
