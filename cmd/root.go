// Package cmd implements the cockpit command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quietdesk/cockpit/internal/config"
	"github.com/quietdesk/cockpit/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cockpit",
	Short: "Passive work-context tracker with productivity nudges",
	Long: `cockpit passively tracks your work context by watching filesystem
activity, persists it as timestamped snapshots, and derives prioritized
nudges (break reminders, context-switch warnings, activity alerts) from
recent history.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cockpit/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "cockpit"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("directories", []string{"."})
	viper.SetDefault("ignore_patterns", []string{`\.git`, `target`, `node_modules`, `__pycache__`, `\.cache`})
	viper.SetDefault("notifications.daily_digest_hour", 20)
	viper.SetDefault("notifications.max_nudges_per_day", 2)
	viper.SetDefault("notifications.enable_context_switch_nudges", true)
	viper.SetDefault("database.path", config.DefaultDatabasePath())
	viper.SetDefault("database.max_snapshots", 1000)
	viper.SetDefault("database.event_retention_days", 30)
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.model", "")
	viper.SetDefault("ai.ollama_url", "http://localhost:11434")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// openStore opens the configured database.
func openStore(cfg *config.Config) (*store.SQLite, error) {
	return store.Open(cfg.Database.Path)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
