package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/format"
	"github.com/quietdesk/cockpit/internal/snapshot"
)

var snapshotNote string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [path]",
	Short: "Capture a snapshot of the current context",
	Long: `Capture the working context of a path (default ".") as a persisted
snapshot: active file, active directory, and the git branch when the
directory is inside a repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotNote, "note", "n", "", "Optional note to attach")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	service := snapshot.NewService(st, newLogger())
	snap, err := service.Capture(snapshot.ContextFromPath(path), snapshotNote)
	if err != nil {
		return fmt.Errorf("capturing snapshot: %w", err)
	}

	fmt.Println("Snapshot captured:")
	fmt.Printf("  ID:   %s\n", snap.ID)
	fmt.Printf("  Time: %s\n", format.LocalTime(snap.Timestamp))
	if snap.ActiveFile != "" {
		fmt.Printf("  File: %s\n", snap.ActiveFile)
	}
	if snap.ActiveDirectory != "" {
		fmt.Printf("  Directory: %s\n", snap.ActiveDirectory)
	}
	if snap.GitBranch != "" {
		fmt.Printf("  Git branch: %s\n", snap.GitBranch)
	}
	if snap.Notes != "" {
		fmt.Printf("  Note: %s\n", snap.Notes)
	}

	return nil
}
