package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/gatekeeper"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Get nudges and suggestions from recent activity",
	RunE:  runNudge,
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}

func runNudge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	gkConfig := gatekeeper.DefaultConfig()
	gkConfig.MaxNudgesPerDay = cfg.Notifications.MaxNudgesPerDay
	gkConfig.EnableContextSwitchNudges = cfg.Notifications.EnableContextSwitchNudges

	nudges := gatekeeper.New(st, gkConfig).Analyze()

	if len(nudges) == 0 {
		fmt.Println("No nudges right now. Keep up the good work!")
		return nil
	}

	fmt.Println("Nudges & Suggestions:")
	fmt.Println()
	for _, n := range nudges {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(n.Priority.String()), n.Message)
	}

	return nil
}
