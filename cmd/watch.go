package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/daemon"
	"github.com/quietdesk/cockpit/internal/snapshot"
	"github.com/quietdesk/cockpit/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start the watcher daemon",
	Long: `Watch the configured directories for file changes and capture a
context snapshot for every change. The snapshot store is trimmed to the
configured maximum at the end of every polling cycle.

Stop with Ctrl+C; the current batch is always finished before exit.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	filter := watcher.NewIgnoreFilter(cfg.IgnorePatterns)
	notifier, err := watcher.NewNotifier(cfg.Directories, filter, logger)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer notifier.Close()

	fmt.Println("Starting file watcher...")
	fmt.Println("Watching directories:")
	for _, dir := range cfg.Directories {
		fmt.Printf("  - %s\n", dir)
	}
	fmt.Println("\nPress Ctrl+C to stop.")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := snapshot.NewService(st, logger)
	loop := daemon.New(notifier, service, st, cfg.Database.MaxSnapshots, logger)
	loop.Run(ctx)

	logger.Info("watcher stopped")
	return nil
}
