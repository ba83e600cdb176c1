package cmd

import (
	"fmt"

	"github.com/abhisek/persona/internal/engine"
	"github.com/abhisek/persona/internal/gateway"
	"github.com/abhisek/persona/internal/kvstore"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the locally persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		store, err := kvstore.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		cfg := gateway.ConfigFromEnv()
		client := gateway.WithRetry(gateway.NewHTTPClient(cfg), cfg.Retry)
		eng := engine.New(store, client)

		s, err := eng.Restore()
		if err != nil {
			return err
		}
		if s.Status == engine.StatusIdle {
			fmt.Println("No session in progress.")
			return nil
		}

		remote := "ok"
		if err := eng.Validate(cmd.Context()); err != nil {
			remote = "unreachable"
		}

		fmt.Printf("Session:  %s (remote: %s)\n", s.SessionID, remote)
		fmt.Printf("Status:   %s\n", s.Status)
		fmt.Printf("Answered: %d questions\n", s.CurrentQuestionIndex)
		if s.Language != "" {
			fmt.Printf("Language: %s\n", s.Language)
		}
		fmt.Printf("Last activity: %s\n", s.LastActivity.Format("2006-01-02 15:04:05"))
		return nil
	},
}
