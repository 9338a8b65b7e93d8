package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/snapshot"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Enforce retention limits on the database",
	Long: `Trim the snapshot store to the configured maximum and delete file
events older than the configured retention period. The watch daemon trims
snapshots on its own at the end of every polling cycle; this command exists
for administrative runs against an idle database.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	service := snapshot.NewService(st, newLogger())
	deletedSnapshots, err := service.Cleanup(cfg.Database.MaxSnapshots)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Database.EventRetentionDays)
	deletedEvents, err := st.CleanupFileEvents(cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up file events: %w", err)
	}

	fmt.Printf("Deleted %d snapshot(s) beyond the cap of %d\n", deletedSnapshots, cfg.Database.MaxSnapshots)
	fmt.Printf("Deleted %d file event(s) older than %d days\n", deletedEvents, cfg.Database.EventRetentionDays)

	return nil
}
