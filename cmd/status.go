package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and database status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Cockpit Status")
	fmt.Println()

	fmt.Println("Configuration:")
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("  Config file: %s\n", used)
	} else {
		fmt.Println("  Config file: not found, using defaults")
	}

	fmt.Printf("  Watched directories: %d\n", len(cfg.Directories))
	for _, dir := range cfg.Directories {
		state := "OK"
		if _, err := os.Stat(dir); err != nil {
			state = "MISSING"
		}
		fmt.Printf("    - %s [%s]\n", dir, state)
	}

	fmt.Println("\nDatabase:")
	fmt.Printf("  Path: %s\n", cfg.Database.Path)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	snapshots, err := st.RecentSnapshots(cfg.Database.MaxSnapshots)
	if err != nil {
		return fmt.Errorf("counting snapshots: %w", err)
	}
	fmt.Printf("  Snapshots: %d\n", len(snapshots))
	fmt.Printf("  Search index: %s\n", filepath.Join(filepath.Dir(cfg.Database.Path), "search_index"))

	fmt.Println("\nNotifications:")
	fmt.Printf("  Daily digest hour: %d:00\n", cfg.Notifications.DailyDigestHour)
	fmt.Printf("  Max nudges per day: %d\n", cfg.Notifications.MaxNudgesPerDay)
	switchState := "disabled"
	if cfg.Notifications.EnableContextSwitchNudges {
		switchState = "enabled"
	}
	fmt.Printf("  Context switch nudges: %s\n", switchState)

	return nil
}
