package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-textdomain/internal/config"
	"github.com/goliatone/go-textdomain/modules/pgcatalog"
)

func newMigrateCmd(a *app) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the PostgreSQL translations schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.settings(config.SourcePostgres, "", "", databaseURL)
			if err != nil {
				return err
			}
			return pgcatalog.Migrate(s.databaseURL, a.logger)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (default DATABASE_URL)")
	return cmd
}
