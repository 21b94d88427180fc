package types

// Dependency is a directed "blocks" edge between two tracks, independent
// of the parent/child hierarchy. The blocking track must reach done
// before the blocked track is eligible to leave blocked.
//
// A (blocking, blocked) pair exists at most once, and the edge set as a
// whole stays acyclic; both are enforced at insertion time.
type Dependency struct {
	BlockingID string `json:"blocking_track_id"`
	BlockedID  string `json:"blocked_track_id"`
}
