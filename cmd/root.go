package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/venusquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "venusquiz",
	Short: "VenusAR admin recruitment quiz",
	Long:  "venusquiz generates a fresh multiple-choice admin recruitment test with an LLM, scores it and asks the model for an evaluation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; anything else is worth reporting.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VENUSQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to the quiz profile YAML (overrides VENUSQUIZ_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("no-record", false, "Do not record LLM calls or finished attempts")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VENUSQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
