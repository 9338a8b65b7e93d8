package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recent snapshots",
	Long: `Export the most recent snapshots to stdout.

Formats:
  json (default)  - JSON array
  csv             - Comma-separated values with a header row
  toon            - TOON encoding for agentic tools`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json|csv|toon")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "l", 100, "Maximum snapshots to export")
}

// exportedSnapshot is the wire shape shared by all export formats.
type exportedSnapshot struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	ActiveFile      string `json:"active_file,omitempty"`
	ActiveDirectory string `json:"active_directory,omitempty"`
	GitBranch       string `json:"git_branch,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	snapshots, err := st.RecentSnapshots(exportLimit)
	if err != nil {
		return fmt.Errorf("reading snapshots: %w", err)
	}

	rows := make([]exportedSnapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		rows = append(rows, exportedSnapshot{
			ID:              snap.ID,
			Timestamp:       snap.Timestamp.UTC().Format(time.RFC3339),
			ActiveFile:      snap.ActiveFile,
			ActiveDirectory: snap.ActiveDirectory,
			GitBranch:       snap.GitBranch,
			Notes:           snap.Notes,
		})
	}

	switch exportFormat {
	case "json":
		return exportJSON(rows)
	case "csv":
		return exportCSV(rows)
	case "toon":
		return exportTOON(rows)
	default:
		return fmt.Errorf("unknown format: %s (must be: json, csv, toon)", exportFormat)
	}
}

func exportJSON(rows []exportedSnapshot) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func exportCSV(rows []exportedSnapshot) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"id", "timestamp", "active_file", "active_directory", "git_branch", "notes"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.ID, r.Timestamp, r.ActiveFile, r.ActiveDirectory, r.GitBranch, r.Notes}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func exportTOON(rows []exportedSnapshot) error {
	output, err := gotoon.Encode(rows)
	if err != nil {
		return fmt.Errorf("encoding TOON: %w", err)
	}
	fmt.Println(output)
	return nil
}
