package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mzielinski/freqwatch/internal/config"
	freqerrors "github.com/mzielinski/freqwatch/internal/errors"
	"github.com/mzielinski/freqwatch/internal/scanner"
	"github.com/mzielinski/freqwatch/internal/wordcount"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scan pass and print the word frequencies",
	Long: `Scan walks the root directory once, counts word frequencies for every
.txt file synchronously, and prints the ranked tables to stdout. Unreadable
files are skipped with a warning.

Examples:
  freqwatch scan                  # Scan ./files once
  freqwatch scan --root corpus    # Scan a different directory`,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindScanFlags(cmd.Flags())
	},
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	addScanFlags(scanCmd.Flags())
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var counted, failed int
	err = scanner.NewScanner(logger).Scan(ctx, cfg.Root, func(path string) error {
		table, err := wordcount.CountFile(path)
		if err != nil {
			failed++
			logger.Warn(ctx, freqerrors.NewReadError(path, err), "skipping file", "file", path)
			return nil
		}

		counted++
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, table.String())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "scan complete", "counted", counted, "failed", failed)

	return nil
}
