// Status command for the waymark CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/waymark/internal/engine"
)

var (
	statusStatuses []string
	statusWorktree string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List tracks with derived hierarchy and dependency fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := openEngine()
		if err != nil {
			fail("status", err)
		}
		defer store.Close()

		views, err := eng.Status(engine.StatusFilter{
			Statuses: statusStatuses,
			Worktree: statusWorktree,
		})
		if err != nil {
			store.Close()
			fail("status", err)
		}

		if flagJSON {
			printJSON(views)
		} else {
			printTrackTable(views)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringSliceVar(&statusStatuses, "status", nil, "filter by status (repeatable or comma-separated)")
	statusCmd.Flags().StringVar(&statusWorktree, "worktree", "", "filter by worktree label")
}
