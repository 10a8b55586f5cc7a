package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/view"
)

func bold(s string) string {
	return "\033[1m" + s + "\033[0m"
}

func newResultsCmd(a *app) *cobra.Command {
	var (
		voters bool
		noBold bool
	)

	cmd := &cobra.Command{
		Use:   "results <poll-id>",
		Short: "Show the tally of a poll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pollID, err := domain.ParsePollID(args[0])
			if err != nil {
				return err
			}
			poll, err := a.pages.ResultsPage(cmd.Context(), pollID)
			if err != nil {
				return err
			}

			emphasis := bold
			if noBold {
				emphasis = func(s string) string { return "*" + s + "*" }
			}
			fmt.Fprint(a.out, view.ResultsText(*poll, emphasis))

			if voters {
				fmt.Fprintln(a.out)
				for _, s := range domain.Summarize(*poll) {
					fmt.Fprintln(a.out, view.FormatDay(s.Day))
					for _, c := range domain.DefaultChoices {
						if names := s.Voters[c]; len(names) > 0 {
							fmt.Fprintf(a.out, "  %s: %s\n", c, strings.Join(names, ", "))
						}
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&voters, "voters", false, "List who voted what on each day")
	cmd.Flags().BoolVar(&noBold, "no-color", false, "Mark the best days with asterisks instead of bold text")
	return cmd
}

func newShareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "share <poll-id>",
		Short: "Share the vote link of a poll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pollID, err := domain.ParsePollID(args[0])
			if err != nil {
				return err
			}
			host, err := a.host(pollID.String())
			if err != nil {
				return err
			}

			s := services.NewResultsScreen(host, a.api, a.activity, domain.Poll{ID: pollID}, a.cfg.BotName)
			s.SetLogger(a.logger)
			s.Share()
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <poll-id>",
		Short: "Delete a poll you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pollID, err := domain.ParsePollID(args[0])
			if err != nil {
				return err
			}
			poll, err := a.pages.ResultsPage(ctx, pollID)
			if err != nil {
				return err
			}
			host, err := a.host(pollID.String())
			if err != nil {
				return err
			}

			s := services.NewResultsScreen(host, a.api, a.activity, *poll, a.cfg.BotName)
			s.SetLogger(a.logger)
			err = s.AskDelete(ctx)
			switch {
			case errors.Is(err, domain.ErrCancelled):
				fmt.Fprintln(a.out, "Nothing deleted.")
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintln(a.out, "Poll deleted.")
			return nil
		},
	}
}
