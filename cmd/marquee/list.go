package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List events in the document",
	GroupID: "events",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := marqueeClient.ListEvents(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(doc)
			return nil
		}

		printEventTable(doc)
		if doc.LastUpdated != nil {
			fmt.Printf("\nlast updated %s\n", doc.LastUpdated.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}
