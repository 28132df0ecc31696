package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyworks/site-api/internal/adapters/static"
	"github.com/polyworks/site-api/internal/domain"
)

func newImportCmd(opts *options) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Upsert custom entries from a YAML file",
		Long: `Reads a file in the static entry format and stores every entry as a
custom override. Entries with the id of a static entry replace it in merged
listings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(kindName)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			entries, err := static.DecodeEntries(f, kind)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			db, err := e.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := e.contentService(db)
			if err != nil {
				return err
			}

			for i := range entries {
				if err := svc.Upsert(cmd.Context(), &entries[i]); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s entries\n", len(entries), kind)

			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "Content kind: blog, news or case-study")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
