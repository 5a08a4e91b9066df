package main

import (
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:     "push",
	Short:   "Retry pushing local history to the remote",
	Long:    "Use after a mutation reported failed_push; the committed change is re-pushed without creating a new entry.",
	GroupID: "events",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := marqueeClient.RetryPush(cmd.Context())
		if err != nil {
			return err
		}
		return printOutcome(out)
	},
}
