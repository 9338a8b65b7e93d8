package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietdesk/cockpit/internal/search"
)

var indexDryRun bool

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index files for full-text search",
	Long: `Walk a directory tree and add every text file to the search index.
Ignore patterns from the configuration are respected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().BoolVar(&indexDryRun, "dry-run", false, "Only show what would be indexed")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	fmt.Printf("Indexing files from: %s\n", root)
	if indexDryRun {
		fmt.Println("(Dry run - no changes will be made)")
	} else {
		fmt.Printf("Index location: %s\n", cfg.SearchIndexPath())
	}
	fmt.Println()

	var (
		docs    []search.Document
		skipped int
	)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		ignored := false
		for _, pattern := range cfg.IgnorePatterns {
			if strings.Contains(path, pattern) {
				ignored = true
				break
			}
		}
		if ignored {
			skipped++
			return nil
		}

		doc := search.ReadFileForIndexing(path)
		if doc == nil {
			skipped++
			return nil
		}

		if indexDryRun {
			fmt.Printf("  Would index: %s\n", doc.Path)
		} else {
			fmt.Printf("  Indexing: %s\n", doc.Title)
		}
		docs = append(docs, *doc)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	if !indexDryRun && len(docs) > 0 {
		idx, err := search.Open(cfg.SearchIndexPath())
		if err != nil {
			return err
		}
		defer idx.Close()

		if err := idx.Add(docs); err != nil {
			return err
		}
	}

	fmt.Println("\nSummary:")
	fmt.Printf("  Files indexed: %d\n", len(docs))
	fmt.Printf("  Files skipped: %d\n", skipped)

	if indexDryRun {
		fmt.Println("\nRun without --dry-run to actually index files.")
	}

	return nil
}
