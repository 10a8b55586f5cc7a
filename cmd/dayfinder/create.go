package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
		days        []string
		notify      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a poll for a set of days",
		Example: `  dayfinder create --title "Board game night" --day 2026-03-06 --day 2026-03-07
  dayfinder create --title Hike --description "Bring **water**" --day 2026-04-11,2026-04-12 --notify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			host, err := a.host("")
			if err != nil {
				return err
			}

			s := services.NewCreateScreen(host, a.api, a.activity)
			s.SetLogger(a.logger)
			s.Open(ctx)
			s.SetTitle(title)
			if description != "" {
				s.SetDescription(description)
			}
			s.SetNotification(notify)
			for _, d := range days {
				entry := s.AddDay()
				if err := s.ChangeDay(entry.ID, d); err != nil {
					return err
				}
			}

			if err := s.Submit(ctx); err != nil {
				return err
			}
			if host.Closed() {
				fmt.Fprintln(a.out, "Poll created. Share it from the bot chat.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Poll title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Poll description (Markdown)")
	cmd.Flags().StringSliceVar(&days, "day", nil, "Proposed day as YYYY-MM-DD (repeatable)")
	cmd.Flags().BoolVar(&notify, "notify", false, "Notify me about new votes")
	return cmd
}
