package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gulfquotes/quoticon/internal/repo"
)

func newSeedCmd(a *app) *cobra.Command {
	var quotes int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a development quote catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := repo.SeedCatalog(cmd.Context(), db, quotes)
			if err != nil {
				return err
			}
			message.NewPrinter(language.English).Fprintf(cmd.OutOrStdout(), "Seeded %d quotes.\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&quotes, "quotes", 20, "number of quotes to insert")
	return cmd
}
