// Command axinode hosts a nation-management game: it runs the simulation
// loop, serves the HTTP API and manages saves and prestige.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/axinode/internal/persistence"
)

var (
	dbPath   string
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "axinode",
		Short: "Real-time nation management simulation",
		Long: `axinode runs a single nation through days and months of economy,
diplomacy and war. Saves and the prestige record live in a SQLite file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOrDefault("AXINODE_DB", "data/axinode.db"), "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOrDefault("AXINODE_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd(), statusCmd(), savesCmd(), prestigeCmd(), catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
	return nil
}

// openStore opens the database, creating its directory.
func openStore() (*persistence.Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	st, err := persistence.Open(dbPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("database opened", "path", dbPath)
	return st, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
