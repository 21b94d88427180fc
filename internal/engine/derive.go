// Package engine ties the track store, the tree/kind deriver, and the
// dependency graph together, and owns the status cascade rules.
package engine

import (
	"github.com/mesh-intelligence/waymark/pkg/types"
)

// Derived holds the structural fields computed for one track from the
// full track set.
type Derived struct {
	Kind     string
	Children []string
}

// DeriveTree computes kind and children for every track in one pass
// over the complete set. Kind is a property of the current set, not of
// the individual record, so this runs from scratch on every read;
// nothing is cached or stored.
//
// A parent id that matches no track in the set (data corruption) is
// skipped rather than crashing; referential integrity is otherwise
// enforced at write time.
func DeriveTree(tracks []*types.Track) map[string]Derived {
	byID := make(map[string]*types.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	// Input order is creation order (the store lists by created_at), so
	// children lists inherit a stable order.
	children := make(map[string][]string)
	for _, t := range tracks {
		if t.ParentID == nil {
			continue
		}
		if _, ok := byID[*t.ParentID]; !ok {
			// Phantom parent: omit the relationship.
			continue
		}
		children[*t.ParentID] = append(children[*t.ParentID], t.ID)
	}

	derived := make(map[string]Derived, len(tracks))
	for _, t := range tracks {
		kids := children[t.ID]
		if kids == nil {
			kids = []string{}
		}
		kind := types.KindTask
		switch {
		case t.ParentID == nil:
			kind = types.KindSuper
		case len(kids) > 0:
			kind = types.KindFeature
		}
		derived[t.ID] = Derived{Kind: kind, Children: kids}
	}
	return derived
}
