// Create command for the waymark CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/waymark/internal/engine"
)

var (
	createTitle     string
	createParent    string
	createSummary   string
	createNext      string
	createFiles     []string
	createBlocks    []string
	createBlockedBy []string
	createWorktree  string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new track",
	Long: `Create a new track under the given parent (default: the root track).
The worktree label is inherited from the parent unless --worktree or
--clear-worktree says otherwise. --blocks and --blocked-by wire
dependency edges; a track created with a live blocker starts blocked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := openEngine()
		if err != nil {
			fail("create", err)
		}
		defer store.Close()

		req := engine.CreateRequest{
			Title:      createTitle,
			ParentID:   createParent,
			Summary:    createSummary,
			NextPrompt: createNext,
			Files:      createFiles,
			Blocks:     createBlocks,
			BlockedBy:  createBlockedBy,
			Worktree:   worktreePatch(cmd, "worktree", "clear-worktree"),
		}

		view, err := eng.Create(req)
		if err != nil {
			store.Close()
			fail("create", err)
		}

		if flagJSON {
			printJSON(view)
		} else {
			fmt.Printf("Created %s: %s\n", view.Kind, view.ID)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "track title (required)")
	createCmd.Flags().StringVar(&createParent, "parent", "", "parent track id (default: root)")
	createCmd.Flags().StringVar(&createSummary, "summary", "", "current-state summary")
	createCmd.Flags().StringVar(&createNext, "next", "", "next-step prompt")
	createCmd.Flags().StringSliceVar(&createFiles, "files", nil, "file paths to associate")
	createCmd.Flags().StringSliceVar(&createBlocks, "blocks", nil, "track ids this track blocks")
	createCmd.Flags().StringSliceVar(&createBlockedBy, "blocked-by", nil, "track ids blocking this track")
	createCmd.Flags().StringVar(&createWorktree, "worktree", "", "worktree label (default: inherit from parent)")
	createCmd.Flags().Bool("clear-worktree", false, "do not inherit the parent worktree label")
	createCmd.MarkFlagRequired("title")
}
