package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyworks/site-api/internal/adapters/persistence/sqlite"
)

func newPurgeCartsCmd(opts *options) *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "purge-carts",
		Short: "Delete carts not updated within --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			cutoff := time.Now().UTC().Add(-olderThan)
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "would purge carts last updated before %s\n", cutoff.Format(time.RFC3339))
				return nil
			}

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := sqlite.NewCartStore(db).PurgeBefore(cmd.Context(), cutoff)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "purged %d carts\n", n)

			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age of the last update")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the cutoff without deleting")

	return cmd
}
