package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gulfquotes/quoticon/internal/services"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past daily quote selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			daily := services.NewDailyQuoteService(db, a.cfg.DailyQuote, nil)
			items, err := daily.GetQuoteHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No daily quotes selected yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SELECTED\tEXPIRES\tQUOTE\tACTIVE")
			for _, d := range items {
				active := ""
				if d.IsActive {
					active = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					d.SelectionDate.In(daily.Zone).Format(time.DateTime),
					d.ExpirationDate.In(daily.Zone).Format(time.DateTime),
					d.QuoteID, active)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of records to show")
	return cmd
}
