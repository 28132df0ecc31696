package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		q        domain.Query
		sort     string
		featured bool
	)

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Print the merged listing of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}

			if q.Sort, err = domain.ParseSortOrder(sort); err != nil {
				return err
			}

			if cmd.Flags().Changed("featured") {
				q.Featured = &featured
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

			listing, err := svc.List(cmd.Context(), kind, q, app.ListOptions{Debug: true})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tFEATURED\tTITLE")
			for i := range listing.Items {
				entry := &listing.Items[i]
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
					entry.ID,
					entry.PublishedAt.Format(time.DateOnly),
					entry.Featured,
					entry.Title.Get(domain.DefaultLocale),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d (static %d, custom %d)\n",
				len(listing.Items), listing.Total,
				listing.SourceCounts[app.SourceStatic], listing.SourceCounts[app.SourceCustom])

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Tag, "tag", "", "Only entries with this tag")
	f.StringVar(&q.Category, "category", "", "Only entries in this category")
	f.StringVar(&q.Author, "author", "", "Only entries by this author")
	f.StringVarP(&q.Search, "search", "s", "", "Full-text search")
	f.BoolVar(&featured, "featured", false, "Only featured (or, with =false, non-featured) entries")
	f.StringVar(&sort, "sort", "", "newest or oldest")
	f.IntVar(&q.Offset, "offset", 0, "Entries to skip")
	f.IntVarP(&q.Limit, "limit", "n", 0, "Maximum entries to print, 0 for all")

	return cmd
}
