// Show command for the waymark CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one track with derived fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := openEngine()
		if err != nil {
			fail("show", err)
		}
		defer store.Close()

		view, err := eng.Get(args[0])
		if err != nil {
			store.Close()
			fail("show", err)
		}

		if flagJSON {
			printJSON(view)
			return nil
		}

		fmt.Printf("ID:         %s\n", view.ID)
		fmt.Printf("Title:      %s\n", view.Title)
		fmt.Printf("Kind:       %s\n", view.Kind)
		fmt.Printf("Status:     %s\n", view.Status)
		if view.ParentID != nil {
			fmt.Printf("Parent:     %s\n", *view.ParentID)
		}
		if view.Worktree != nil {
			fmt.Printf("Worktree:   %s\n", *view.Worktree)
		}
		if view.Summary != "" {
			fmt.Printf("Summary:    %s\n", view.Summary)
		}
		if view.NextPrompt != "" {
			fmt.Printf("Next:       %s\n", view.NextPrompt)
		}
		if len(view.Children) > 0 {
			fmt.Printf("Children:   %s\n", strings.Join(view.Children, ", "))
		}
		if len(view.Blocks) > 0 {
			fmt.Printf("Blocks:     %s\n", strings.Join(view.Blocks, ", "))
		}
		if len(view.BlockedBy) > 0 {
			fmt.Printf("Blocked by: %s\n", strings.Join(view.BlockedBy, ", "))
		}
		if len(view.Files) > 0 {
			fmt.Printf("Files:      %s\n", strings.Join(view.Files, ", "))
		}
		fmt.Printf("Created:    %s\n", view.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:    %s\n", view.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}
