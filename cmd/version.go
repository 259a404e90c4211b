package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzielinski/freqwatch/internal/version"
)

var versionFormat string

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for freqwatch including the semantic
version, git commit, build time, Go version and target platform.

Examples:
  freqwatch version                # Show version info
  freqwatch version --format json  # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	info := version.GetBuildInfo()

	switch versionFormat {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "freqwatch %s\n", info.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", info.GitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:      %s\n", info.BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", info.GoVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "  platform:   %s\n", info.Platform)
	}

	return nil
}
