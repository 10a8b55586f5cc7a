package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNoActivityLog = errors.New("activity log is not available")

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent create, vote and delete actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.activity == nil {
				return errNoActivityLog
			}
			activities, err := a.activity.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Fprintln(a.out, "No activity yet.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tACTION\tOUTCOME\tPOLL\tDETAIL")
			for _, act := range activities {
				poll := "-"
				if act.PollID != uuid.Nil {
					poll = act.PollID.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(act.RecordedAt), act.Kind, act.Outcome, poll, act.Detail)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
