package main

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Short:   "Remove an event from the document",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := marqueeClient.RemoveEvent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutcome(out)
	},
}
