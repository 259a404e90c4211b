package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzielinski/freqwatch/internal/config"
	"github.com/mzielinski/freqwatch/internal/pipeline"
	"github.com/mzielinski/freqwatch/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the word-frequency pipeline until interrupted",
	Long: `Run starts the producer/consumer pipeline: the producer rescans the root
directory on the configured interval and the consumers report the ten most
frequent words of every discovered .txt file.

The first interrupt (Ctrl-C) requests a graceful stop: the producer hands
one end-of-stream sentinel to every consumer and queued files are still
processed. A second interrupt forces an immediate shutdown, discarding
whatever is left in the queue.

Examples:
  freqwatch run                       # Scan ./files every 15s
  freqwatch run --root corpus -i 5s   # Different root and interval
  freqwatch run --watch               # Rescan immediately on file changes`,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindScanFlags(cmd.Flags())
		_ = viper.BindPFlag("watch.enabled", cmd.Flags().Lookup("watch"))
	},
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	addScanFlags(runCmd.Flags())
	runCmd.Flags().BoolP("watch", "w", false, "trigger a scan pass as soon as files change")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg)
	ctx := context.Background()

	controller := pipeline.NewController(cfg, logger)
	if err := controller.Start(ctx); err != nil {
		return err
	}

	if cfg.Watch.Enabled {
		trigger, err := watcher.NewScanTrigger(cfg.Watch.Debounce, controller.TriggerScan, logger)
		if err != nil {
			logger.Warn(ctx, err, "file watching unavailable, falling back to interval only")
		} else {
			defer trigger.Stop()
			if err := trigger.AddRecursive(cfg.Root); err != nil {
				logger.Warn(ctx, err, "watching root failed, falling back to interval only", "root", cfg.Root)
			} else {
				trigger.Start(ctx)
				logger.Info(ctx, "watching for changes", "root", cfg.Root, "debounce", cfg.Watch.Debounce.String())
			}
		}
	}

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	go func() {
		<-sig
		logger.Info(ctx, "interrupt received, draining (interrupt again to force shutdown)")
		controller.Stop()
		<-sig
		controller.Shutdown()
	}()

	if err := controller.Wait(ctx); err != nil {
		return err
	}

	snapshot := controller.Metrics()
	logger.Info(ctx, "run complete",
		"scan_passes", snapshot.ScanPasses,
		"files_processed", snapshot.FilesProcessed,
		"files_failed", snapshot.FilesFailed,
		"avg_duration", snapshot.AverageDuration.String(),
	)

	return nil
}
