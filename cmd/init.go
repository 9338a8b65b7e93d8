package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const defaultConfigTOML = `# Cockpit configuration

# Directories to watch for file changes
directories = [
    "~/workspace",
    "~/projects"
]

# Patterns to ignore (regular expressions, matched anywhere in the path)
ignore_patterns = [
    "\\.git",
    "target",
    "node_modules",
    "__pycache__",
    "\\.cache"
]

[notifications]
# Hour of day (0-23) for the daily digest
daily_digest_hour = 20

# Maximum productivity nudges per day
max_nudges_per_day = 2

# Enable context switch warnings
enable_context_switch_nudges = true

[database]
# Maximum snapshots to retain
max_snapshots = 1000

# Days to keep file events before cleanup prunes them
event_retention_days = 30

[ai]
# Enable rule-based insights, optionally reworded by a local Ollama model
enabled = false
ollama_url = "http://localhost:11434"
`

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("determining home directory: %w", err)
	}
	configPath := filepath.Join(home, ".config", "cockpit", "config.toml")

	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Configuration file already exists at:")
		fmt.Printf("  %s\n", configPath)
		fmt.Println("\nEdit this file to customize settings.")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Println("Configuration file created at:")
	fmt.Printf("  %s\n", configPath)
	fmt.Println("\nEdit this file to customize your settings, then run:")
	fmt.Println("  cockpit status")

	return nil
}
