package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/view"
)

func newSummaryCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "summary <poll-id>...",
		Short: "Print the best days of several polls",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, len(args))
			for i, arg := range args {
				id, err := domain.ParsePollID(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				ids[i] = id
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			summaries, err := services.NewSummaryService(a.pages).SummarizeAll(ctx, ids)
			if err != nil {
				return err
			}
			for _, s := range summaries {
				best := make([]string, len(s.Best))
				for i, d := range s.Best {
					best[i] = view.FormatDay(d)
				}
				if len(best) == 0 {
					best = []string{"no yes votes yet"}
				}
				fmt.Fprintf(a.out, "%s\t%s\t%s\n", s.Poll.ID, s.Poll.Title, strings.Join(best, "; "))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Give up after this long")
	return cmd
}
