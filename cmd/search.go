package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed content",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Maximum results to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, err := search.Open(cfg.SearchIndexPath())
	if err != nil {
		return err
	}
	defer idx.Close()

	query := args[0]
	results, err := idx.Search(query, searchLimit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}

	fmt.Printf("Search results for '%s':\n\n", query)
	for _, r := range results {
		fmt.Printf("  %s (score: %.2f)\n", r.Title, r.Score)
		fmt.Printf("    %s\n", r.Path)
	}

	return nil
}
