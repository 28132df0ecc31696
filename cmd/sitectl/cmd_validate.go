package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/polyworks/site-api/internal/adapters/static"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the static data set",
		Long: `Decodes every static content and product file. Unknown fields, invalid
records and duplicate ids fail the command with a non-zero exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			store, err := static.Load(e.cfg.Content.StaticDir)
			if err != nil {
				return fmt.Errorf("static data invalid: %w", err)
			}

			counts := store.Counts()
			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(counts)) {
				fmt.Fprintf(out, "%-12s %d\n", name, counts[name])
			}
			fmt.Fprintln(out, "ok")

			return nil
		},
	}
}
