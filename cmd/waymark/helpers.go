// Shared helpers for waymark CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/waymark/internal/engine"
	"github.com/mesh-intelligence/waymark/internal/sqlite"
	"github.com/mesh-intelligence/waymark/pkg/types"
)

// openEngine resolves the data directory, opens the store, and wraps it
// in an engine. The caller must defer store.Close(); the store is
// scoped to this one command invocation.
func openEngine() (*engine.Engine, *sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:     dataDir,
		BusyTimeout: configBusyTimeout,
	}

	store, err := sqlite.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	return engine.New(store), store, nil
}

// isUserError reports whether err is an expected, caller-correctable
// rejection rather than a store failure.
func isUserError(err error) bool {
	return errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrEmptyTitle) ||
		errors.Is(err, types.ErrInvalidStatus) ||
		errors.Is(err, types.ErrDependencyCycle) ||
		errors.Is(err, types.ErrRootExists) ||
		errors.Is(err, types.ErrNoRoot)
}

// fail prints the error with a command prefix and exits with the
// appropriate code.
func fail(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	if isUserError(err) {
		os.Exit(exitUserError)
	}
	os.Exit(exitSysError)
}

// worktreePatch builds the tri-state worktree patch from a value flag
// and a clear flag. Clearing wins; an untouched value flag means
// unchanged, so an explicitly empty value stays distinguishable from no
// value at all.
func worktreePatch(cmd *cobra.Command, valueFlag, clearFlag string) types.WorktreePatch {
	if clear, _ := cmd.Flags().GetBool(clearFlag); clear {
		return types.WorktreeClear()
	}
	if cmd.Flags().Changed(valueFlag) {
		v, _ := cmd.Flags().GetString(valueFlag)
		return types.WorktreeSet(v)
	}
	return types.WorktreeUnchanged()
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// printTrackTable renders views as a human-readable table.
func printTrackTable(views []*types.TrackView) {
	if len(views) == 0 {
		fmt.Println("No tracks found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSTATUS\tWORKTREE\tTITLE\tBLOCKED BY")
	fmt.Fprintln(w, "--\t----\t------\t--------\t-----\t----------")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			shortID(v.ID), v.Kind, v.Status, v.WorktreeLabel(), v.Title, len(v.BlockedBy))
	}
	w.Flush()
	fmt.Printf("\nTotal: %d track(s)\n", len(views))
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
