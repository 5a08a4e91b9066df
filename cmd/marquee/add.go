package main

import (
	"github.com/spf13/cobra"

	"github.com/prideworks/marquee/internal/client"
)

var (
	addSummary string
	addCta     string
)

var addCmd = &cobra.Command{
	Use:     "add <reference>",
	Short:   "Fetch an event from the ticketing service and add it",
	Long:    "The reference is a ticketing event URL or a bare numeric event ID.",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := marqueeClient.AddEvent(cmd.Context(), &client.AddEventRequest{
			Reference:     args[0],
			CustomSummary: addSummary,
			CustomCta:     addCta,
		})
		if err != nil {
			return err
		}
		return printOutcome(out)
	},
}

func init() {
	addCmd.Flags().StringVar(&addSummary, "summary", "", "custom summary override for the site")
	addCmd.Flags().StringVar(&addCta, "cta", "", "custom call-to-action override")
}
