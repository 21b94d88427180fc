// Init command: create the store and its single root track.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	initTitle    string
	initSummary  string
	initNext     string
	initWorktree string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store with its root track",
	Long: `Initialize the waymark store and create the single root track.
Every later track is created under the root (directly or transitively);
a second init is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, store, err := openEngine()
		if err != nil {
			fail("init", err)
		}
		defer store.Close()

		view, err := eng.InitRoot(initTitle, initSummary, initNext, worktreePatch(cmd, "worktree", "clear-worktree"))
		if err != nil {
			store.Close()
			fail("init", err)
		}

		if flagJSON {
			printJSON(view)
		} else {
			fmt.Printf("Initialized root track: %s\n", view.ID)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initTitle, "title", "", "root track title (required)")
	initCmd.Flags().StringVar(&initSummary, "summary", "", "root track summary")
	initCmd.Flags().StringVar(&initNext, "next", "", "root track next prompt")
	initCmd.Flags().StringVar(&initWorktree, "worktree", "", "worktree label")
	initCmd.Flags().Bool("clear-worktree", false, "leave the worktree label unset")
	initCmd.MarkFlagRequired("title")
}
