package cmd

import (
	"github.com/abhisek/persona/internal/kvstore"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Personality assessment session tool",
	Long:  "Persona — session engine for the personality assessment service: inspect, recover, or reset a locally persisted assessment session.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PERSONA_DB env var)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PERSONA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, kvstore.EnsureDir(p)
	}
	return kvstore.DefaultDBPath()
}
