package cmd

import (
	"fmt"

	"github.com/abhisek/persona/internal/engine"
	"github.com/abhisek/persona/internal/gateway"
	"github.com/abhisek/persona/internal/kvstore"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the persisted session and its buffered answers",
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

		// Reset never talks to the network; the client is only wiring.
		eng := engine.New(store, gateway.NewHTTPClient(gateway.ConfigFromEnv()))
		if _, err := eng.Restore(); err != nil {
			return err
		}
		eng.Reset()

		fmt.Println("Session data cleared.")
		return nil
	},
}
