package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prideworks/marquee/internal/client"
)

var roleCmd = &cobra.Command{
	Use:     "role",
	Short:   "Manage volunteer roles and applications",
	GroupID: "roles",
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		team, _ := cmd.Flags().GetString("team")
		openOnly, _ := cmd.Flags().GetBool("open")
		search, _ := cmd.Flags().GetString("search")

		roles, err := marqueeClient.ListRoles(cmd.Context(), &client.ListRolesRequest{
			Team:     team,
			OpenOnly: openOnly,
			Search:   search,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(roles)
			return nil
		}
		printRoleTable(roles)
		return nil
	},
}

var roleCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, _ := cmd.Flags().GetString("summary")
		description, _ := cmd.Flags().GetString("description")
		team, _ := cmd.Flags().GetString("team")
		commitment, _ := cmd.Flags().GetString("commitment")

		role, err := marqueeClient.CreateRole(cmd.Context(), &client.CreateRoleRequest{
			Title:       args[0],
			Summary:     summary,
			Description: description,
			Team:        team,
			Commitment:  commitment,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(role)
			return nil
		}
		fmt.Printf("created role %s (%s)\n", role.ID, role.Title)
		return nil
	},
}

var roleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := marqueeClient.GetRole(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(role)
			return nil
		}
		fmt.Printf("ID:          %s\n", role.ID)
		fmt.Printf("Title:       %s\n", role.Title)
		fmt.Printf("Team:        %s\n", role.Team)
		fmt.Printf("Commitment:  %s\n", role.Commitment)
		fmt.Printf("Open:        %t\n", role.Open)
		if role.Summary != "" {
			fmt.Printf("Summary:     %s\n", role.Summary)
		}
		if role.Description != "" {
			fmt.Printf("Description: %s\n", role.Description)
		}
		return nil
	},
}

var roleCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a role to new applications",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRoleOpen(cmd, args[0], false) },
}

var roleOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Reopen a role for applications",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setRoleOpen(cmd, args[0], true) },
}

func setRoleOpen(cmd *cobra.Command, id string, open bool) error {
	role, err := marqueeClient.UpdateRole(cmd.Context(), id, &client.UpdateRoleRequest{Open: &open})
	if err != nil {
		return err
	}
	state := "closed"
	if role.Open {
		state = "open"
	}
	fmt.Printf("role %s is now %s\n", role.ID, state)
	return nil
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role and its applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := marqueeClient.DeleteRole(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("role %s deleted\n", args[0])
		return nil
	},
}

var roleAppsCmd = &cobra.Command{
	Use:   "apps <role-id>",
	Short: "List applications for a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apps, err := marqueeClient.ListApplications(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(apps)
			return nil
		}
		printApplicationTable(apps)
		return nil
	},
}

var roleDecideCmd = &cobra.Command{
	Use:   "decide <application-id> <status>",
	Short: "Set an application's status (reviewing, accepted, declined)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := marqueeClient.SetApplicationStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(app)
			return nil
		}
		fmt.Printf("application %s is now %s\n", app.ID, app.Status)
		return nil
	},
}

func init() {
	roleListCmd.Flags().String("team", "", "filter by team")
	roleListCmd.Flags().Bool("open", false, "only open roles")
	roleListCmd.Flags().String("search", "", "match against title and summary")

	roleCreateCmd.Flags().String("summary", "", "one-line summary")
	roleCreateCmd.Flags().String("description", "", "full description")
	roleCreateCmd.Flags().String("team", "", "owning team")
	roleCreateCmd.Flags().String("commitment", "", "expected time commitment")

	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleCreateCmd)
	roleCmd.AddCommand(roleShowCmd)
	roleCmd.AddCommand(roleOpenCmd)
	roleCmd.AddCommand(roleCloseCmd)
	roleCmd.AddCommand(roleDeleteCmd)
	roleCmd.AddCommand(roleAppsCmd)
	roleCmd.AddCommand(roleDecideCmd)
}
