package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/bridge/terminal"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/view"
)

func newVoteCmd(a *app) *cobra.Command {
	var choices map[string]string

	cmd := &cobra.Command{
		Use:   "vote <poll-id>",
		Short: "Vote on the days of a poll",
		Example: `  dayfinder vote 6c9f0e5e-3b0e-4c53-9d4b-3d1f5f0f8c11
  dayfinder vote 6c9f0e5e-3b0e-4c53-9d4b-3d1f5f0f8c11 --choice 2026-03-06=yes,2026-03-07=maybe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pollID, err := domain.ParsePollID(args[0])
			if err != nil {
				return err
			}

			poll, days, err := a.pages.VotePage(ctx, pollID)
			if err != nil {
				return err
			}
			host, err := a.host(pollID.String())
			if err != nil {
				return err
			}

			s := services.NewVoteScreen(host, a.api, a.activity, days)
			s.SetLogger(a.logger)
			if err := s.Load(ctx); err != nil {
				return err
			}

			fmt.Fprintln(a.out, poll.Title)
			if s.View().AlreadyVoted {
				fmt.Fprintln(a.out, "You have already voted on this poll. Your answers are preselected.")
			}
			if err := fillVote(ctx, host, s, choices, a.assumeYes); err != nil {
				return err
			}
			return s.Submit(ctx)
		},
	}

	cmd.Flags().StringToStringVar(&choices, "choice", nil, "Choice per day as YYYY-MM-DD=yes|maybe|no")
	return cmd
}

// fillVote selects the flag choices and prompts for every other day. An empty
// answer keeps a preselected choice, and so does keepCurrent without asking.
func fillVote(ctx context.Context, host *terminal.Bridge, s *services.VoteScreen, choices map[string]string, keepCurrent bool) error {
	for raw, choice := range choices {
		day, err := domain.ParseDay(raw)
		if err != nil {
			return err
		}
		if err := s.Select(day, domain.Choice(choice)); err != nil {
			return err
		}
	}

	for _, opts := range s.View().Days {
		if _, ok := choices[opts.Day.String()]; ok {
			continue
		}
		current, hasCurrent := s.View().Selected[opts.Day]
		if hasCurrent && keepCurrent {
			continue
		}

		options := make([]string, len(opts.Choices))
		for i, c := range opts.Choices {
			options[i] = string(c)
		}
		label := view.FormatDay(opts.Day)
		if hasCurrent {
			label += " (" + string(current) + ")"
		}

		for {
			answer, err := host.Choose(ctx, label, options)
			if err != nil {
				return err
			}
			if answer == "" {
				if hasCurrent {
					break
				}
				continue
			}
			if err := s.Select(opts.Day, domain.Choice(answer)); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
