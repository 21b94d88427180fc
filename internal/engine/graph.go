package engine

import (
	"github.com/mesh-intelligence/waymark/pkg/types"
)

// WouldCreateCycle reports whether inserting the edge
// blockingID -> blockedID into edges would close a cycle: that is,
// whether blockedID already reaches blockingID by following outgoing
// edges. A self-edge always counts as a cycle.
//
// Pure function over the edge set, independent of the store. The
// traversal uses an explicit stack and visited set; deep chains must
// not overflow the call stack.
func WouldCreateCycle(edges []types.Dependency, blockingID, blockedID string) bool {
	if blockingID == blockedID {
		return true
	}

	out := make(map[string][]string, len(edges))
	for _, e := range edges {
		out[e.BlockingID] = append(out[e.BlockingID], e.BlockedID)
	}

	visited := map[string]bool{blockedID: true}
	stack := []string{blockedID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range out[current] {
			if next == blockingID {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// EdgeSet holds the direct dependency edges of one track, both
// directions.
type EdgeSet struct {
	Blocks    []string
	BlockedBy []string
}

// GroupEdges builds a per-track view of the full edge set in one pass,
// grouping by both directions. Used by bulk read paths to annotate
// every track without per-track queries.
func GroupEdges(edges []types.Dependency) map[string]EdgeSet {
	grouped := make(map[string]EdgeSet)
	for _, e := range edges {
		blocking := grouped[e.BlockingID]
		blocking.Blocks = append(blocking.Blocks, e.BlockedID)
		grouped[e.BlockingID] = blocking

		blocked := grouped[e.BlockedID]
		blocked.BlockedBy = append(blocked.BlockedBy, e.BlockingID)
		grouped[e.BlockedID] = blocked
	}
	return grouped
}
