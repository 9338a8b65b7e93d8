package cmd

import (
	"fmt"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/config"
	"github.com/quietdesk/cockpit/internal/gatekeeper"
	"github.com/quietdesk/cockpit/internal/insight"
	"github.com/quietdesk/cockpit/internal/ollama"
	"github.com/quietdesk/cockpit/internal/store"
)

var summaryToon bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show today's activity summary",
	Long: `Aggregate today's file events into a daily summary: total events,
files modified, files created, and the most active directory. With AI
enabled in the configuration, rule-based insights are appended.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryToon, "toon", false, "Output in TOON format for agentic tools")
}

func runSummary(cmd *cobra.Command, args []string) error {
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

	summary := gatekeeper.New(st, gkConfig).DailySummary(time.Now().UTC())

	if summaryToon {
		output, err := gotoon.Encode(summary)
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Daily Summary")
	fmt.Println()
	fmt.Println(summary.Message())

	if summary.TotalEvents > 0 {
		fmt.Println("\nDetails:")
		fmt.Printf("  Total events: %d\n", summary.TotalEvents)
		fmt.Printf("  Files modified: %d\n", summary.FilesModified)
		fmt.Printf("  Files created: %d\n", summary.FilesCreated)
		if summary.MostActiveDirectory != "" {
			fmt.Printf("  Most active directory: %s\n", summary.MostActiveDirectory)
		}
	}

	printInsights(cfg, st, summary)
	return nil
}

// printInsights appends rule-based insights when AI features are enabled.
func printInsights(cfg *config.Config, st *store.SQLite, summary gatekeeper.Summary) {
	if !cfg.AI.Enabled {
		return
	}

	var rephraser insight.Rephraser
	if ollama.IsAvailable(cfg.AI.OllamaURL) {
		if client, err := ollama.NewClient(cfg.AI.OllamaURL, cfg.AI.Model); err == nil {
			rephraser = client
		}
	}

	service := insight.NewService(insight.Config{Enabled: true}, rephraser)

	snapshots, err := st.RecentSnapshots(50)
	if err != nil {
		return
	}

	insights := service.FromSnapshots(snapshots)
	if day := service.SummarizeDay(summary); day != nil {
		insights = append(insights, *day)
	}

	if len(insights) == 0 {
		return
	}

	fmt.Println("\nInsights:")
	for _, in := range insights {
		fmt.Printf("  %s: %s\n", in.Title, in.Description)
	}
}
