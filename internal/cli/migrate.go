package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Draft-Lab/panela-tracker/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the Postgres schema",
	Long: `Migrate creates the tables, unique indexes and foreign keys the
postgres backend needs. It is safe to run repeatedly. The redis backend
has no schema and the command does nothing.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	db := a.backend.DB()
	if db == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "redis backend has no schema, nothing to migrate")
		return nil
	}

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
	return nil
}
