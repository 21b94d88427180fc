package types

// TrackView is a track annotated with the fields derived on read:
// structural kind, children, dependency edges, and file associations.
// Derived fields are recomputed from the full track and edge sets every
// time; nothing here is stored.
type TrackView struct {
	Track

	Kind      string   `json:"kind"`
	Children  []string `json:"children"`
	Blocks    []string `json:"blocks"`
	BlockedBy []string `json:"blocked_by"`
	Files     []string `json:"files"`
}
