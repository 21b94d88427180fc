// Update command for the waymark CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/waymark/internal/engine"
)

var (
	updateSummary  string
	updateNext     string
	updateStatus   string
	updateFiles    []string
	updateBlocks   []string
	updateUnblocks []string
	updateWorktree string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a track's state",
	Long: `Replace a track's summary and next prompt, set its status (default:
in_progress), attach files, and add or remove dependency edges. Marking
a track done unblocks every dependent whose blockers are now all done;
the unblocked ids are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trackID := args[0]

		eng, store, err := openEngine()
		if err != nil {
			fail("update", err)
		}
		defer store.Close()

		req := engine.UpdateRequest{
			Summary:    updateSummary,
			NextPrompt: updateNext,
			Status:     updateStatus,
			Files:      updateFiles,
			Blocks:     updateBlocks,
			Unblocks:   updateUnblocks,
			Worktree:   worktreePatch(cmd, "worktree", "clear-worktree"),
		}

		result, err := eng.Update(trackID, req)
		if err != nil {
			store.Close()
			fail("update", err)
		}

		if flagJSON {
			printJSON(result)
		} else {
			fmt.Printf("Updated %s (status: %s)\n", trackID, result.Status)
			if len(result.UnblockedIDs) > 0 {
				fmt.Printf("Unblocked: %s\n", strings.Join(result.UnblockedIDs, ", "))
			}
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateSummary, "summary", "", "replacement summary")
	updateCmd.Flags().StringVar(&updateNext, "next", "", "replacement next prompt")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status (default: in_progress)")
	updateCmd.Flags().StringSliceVar(&updateFiles, "files", nil, "file paths to associate")
	updateCmd.Flags().StringSliceVar(&updateBlocks, "blocks", nil, "track ids this track now blocks")
	updateCmd.Flags().StringSliceVar(&updateUnblocks, "unblocks", nil, "track ids this track no longer blocks")
	updateCmd.Flags().StringVar(&updateWorktree, "worktree", "", "set the worktree label")
	updateCmd.Flags().Bool("clear-worktree", false, "clear the worktree label")
}
