package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/prideworks/marquee/internal/client"
	"github.com/prideworks/marquee/internal/model"
	"github.com/prideworks/marquee/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// printOutcome renders a mutation outcome and returns a non-nil error when
// the mutation did not fully succeed, so the process exits non-zero.
func printOutcome(out *client.Outcome) error {
	if jsonOutput {
		printJSON(out)
	} else {
		line := ui.RenderState(out.State)
		if out.ID != "" {
			line += fmt.Sprintf("  %s", out.ID)
		}
		if out.Title != "" {
			line += fmt.Sprintf("  %q", out.Title)
		}
		fmt.Println(line)
		if out.Error != "" {
			fmt.Println(ui.RenderMuted(out.Error))
		}
		if out.State == "failed_push" {
			fmt.Println(ui.RenderMuted("local history is ahead of the remote; run `marquee push` to retry"))
		}
	}

	if !out.Succeeded() {
		return fmt.Errorf("mutation ended in state %s", out.State)
	}
	return nil
}

func printEventTable(doc *model.Document) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tTITLE\tVENUE")
	for _, e := range doc.Events {
		venue := ""
		if e.Venue != nil {
			venue = e.Venue.Name
		}
		title := e.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.StartDate.Format("2006-01-02 15:04"),
			e.EndDate.Format("2006-01-02 15:04"),
			title,
			venue,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(doc.Events))
}

func printRoleTable(roles []*model.Role) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPEN\tTEAM\tTITLE")
	for _, r := range roles {
		open := "no"
		if r.Open {
			open = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, open, r.Team, r.Title)
	}
	w.Flush()
	fmt.Printf("\n%d roles\n", len(roles))
}

func printApplicationTable(apps []*model.Application) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tNAME\tEMAIL\tRECEIVED")
	for _, a := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Status, a.Name, a.Email, a.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Printf("\n%d applications\n", len(apps))
}
