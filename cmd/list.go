package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/format"
	"github.com/quietdesk/cockpit/internal/snapshot"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent snapshots",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 10, "Number of snapshots to show")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	snapshots, err := snapshot.NewService(st, newLogger()).Recent(listLimit)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		return nil
	}

	fmt.Println("Recent snapshots:")
	fmt.Println()
	for _, snap := range snapshots {
		dir := snap.ActiveDirectory
		if dir == "" {
			dir = "-"
		}
		fmt.Printf("  %s | %s | %s\n", snap.ID[:8], format.RelativeTime(snap.Timestamp), dir)
		if snap.GitBranch != "" {
			fmt.Printf("       branch: %s\n", snap.GitBranch)
		}
		if snap.Notes != "" {
			fmt.Printf("       note: %s\n", format.Truncate(snap.Notes, 72))
		}
	}

	return nil
}
