package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scamwatch/scamwatch-cli/internal/resilience"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// A freshly restarted database may still be coming up; retry the
		// transient window instead of failing the deploy.
		retryCfg := resilience.DefaultRetryConfig()
		retryCfg.OnRetry = resilience.RetryLogger("migrate")
		err = resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
			return st.Migrate(ctx)
		})
		if err != nil {
			return eris.Wrap(err, "migrate")
		}

		fmt.Println("Schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
