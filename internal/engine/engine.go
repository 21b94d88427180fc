package engine

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/waymark/internal/sqlite"
	"github.com/mesh-intelligence/waymark/pkg/types"
)

// Engine is the orchestration layer over the track store. Every public
// operation runs to completion, cascades included, before returning;
// the engine keeps no state between calls beyond the store handle the
// caller scoped to this operation.
type Engine struct {
	store *sqlite.Store
}

// New returns an Engine operating on the given store.
func New(store *sqlite.Store) *Engine {
	return &Engine{store: store}
}

// CreateRequest carries the inputs for Create.
type CreateRequest struct {
	Title      string
	ParentID   string // empty means the root track
	Summary    string
	NextPrompt string
	Files      []string
	Blocks     []string // tracks the new track blocks
	BlockedBy  []string // tracks blocking the new track
	Worktree   types.WorktreePatch // unchanged means inherit from parent
}

// UpdateRequest carries the inputs for Update. Summary and NextPrompt
// replace the stored values wholesale.
type UpdateRequest struct {
	Summary    string
	NextPrompt string
	Status     string // empty defaults to in_progress
	Files      []string
	Worktree   types.WorktreePatch
	Blocks     []string // edges to add: id -> each entry
	Unblocks   []string // edges to remove: id -> each entry
}

// UpdateResult reports the applied status and the tracks the update
// auto-unblocked via the completion cascade.
type UpdateResult struct {
	Status       string   `json:"status"`
	UnblockedIDs []string `json:"unblocked_ids"`
}

// StatusFilter narrows the tracks returned by Status. Zero value means
// no filtering.
type StatusFilter struct {
	Statuses []string
	Worktree string
}

// InitRoot creates the single null-parent track. Returns ErrRootExists
// if the store already has one.
func (e *Engine) InitRoot(title, summary, next string, worktree types.WorktreePatch) (*types.TrackView, error) {
	if strings.TrimSpace(title) == "" {
		return nil, types.ErrEmptyTitle
	}
	root := &types.Track{
		Title:      title,
		Summary:    summary,
		NextPrompt: next,
		Status:     types.StatusPlanned,
		Worktree:   worktree.Apply(nil),
	}
	if err := e.store.CreateTrack(root); err != nil {
		return nil, err
	}
	return e.view(root.ID)
}

// Create makes a new track under the given (or default root) parent,
// attaches files, and wires any requested dependency edges with the
// blocking cascade applied per edge.
func (e *Engine) Create(req CreateRequest) (*types.TrackView, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, types.ErrEmptyTitle
	}

	var parent *types.Track
	if req.ParentID == "" {
		root, err := e.store.GetRoot()
		if err != nil {
			return nil, err
		}
		parent = root
	} else {
		p, err := e.store.GetTrack(req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
		parent = p
	}

	// Validate edge targets up front so a bad id rejects the whole
	// request before anything is written.
	for _, id := range append(append([]string{}, req.Blocks...), req.BlockedBy...) {
		exists, err := e.store.TrackExists(id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("dependency target %s: %w", id, types.ErrNotFound)
		}
	}

	// Worktree inherits from the parent unless explicitly set or cleared.
	worktree := req.Worktree.Apply(parent.Worktree)

	track := &types.Track{
		Title:      req.Title,
		ParentID:   &parent.ID,
		Summary:    req.Summary,
		NextPrompt: req.NextPrompt,
		Status:     types.StatusPlanned,
		Worktree:   worktree,
	}
	if err := e.store.CreateTrack(track); err != nil {
		return nil, err
	}

	if err := e.store.AddFiles(track.ID, req.Files); err != nil {
		return nil, err
	}

	for _, blocked := range req.Blocks {
		if err := e.addEdge(track.ID, blocked); err != nil {
			return nil, err
		}
	}
	for _, blocking := range req.BlockedBy {
		if err := e.addEdge(blocking, track.ID); err != nil {
			return nil, err
		}
	}

	return e.view(track.ID)
}

// Update replaces the mutable fields of a track, applies dependency
// changes, and runs the completion cascade when the track transitions
// to done. The result names every track the cascade unblocked.
func (e *Engine) Update(id string, req UpdateRequest) (*UpdateResult, error) {
	status := req.Status
	if status == "" {
		status = types.StatusInProgress
	}
	if !types.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q (valid: %s): %w",
			status, strings.Join(types.StatusValues(), ", "), types.ErrInvalidStatus)
	}

	if _, err := e.store.GetTrack(id); err != nil {
		return nil, err
	}

	for _, target := range req.Blocks {
		exists, err := e.store.TrackExists(target)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("dependency target %s: %w", target, types.ErrNotFound)
		}
	}

	patch := sqlite.TrackPatch{
		Summary:    req.Summary,
		NextPrompt: req.NextPrompt,
		Status:     status,
		Worktree:   req.Worktree,
	}
	if err := e.store.UpdateTrack(id, patch); err != nil {
		return nil, err
	}

	if err := e.store.AddFiles(id, req.Files); err != nil {
		return nil, err
	}

	for _, blocked := range req.Blocks {
		if err := e.addEdge(id, blocked); err != nil {
			return nil, err
		}
	}
	for _, blocked := range req.Unblocks {
		if err := e.removeEdge(id, blocked); err != nil {
			return nil, err
		}
	}

	result := &UpdateResult{Status: status, UnblockedIDs: []string{}}
	if status == types.StatusDone {
		unblocked, err := e.cascadeCompletion(id)
		if err != nil {
			return nil, err
		}
		result.UnblockedIDs = unblocked
	}
	return result, nil
}

// Status returns every track annotated with derived fields, optionally
// narrowed by status set and/or worktree label. Derivation always runs
// over the full set; filtering happens after, so kind and children stay
// correct for filtered output.
func (e *Engine) Status(filter StatusFilter) ([]*types.TrackView, error) {
	for _, st := range filter.Statuses {
		if !types.ValidStatus(st) {
			return nil, fmt.Errorf("invalid status %q (valid: %s): %w",
				st, strings.Join(types.StatusValues(), ", "), types.ErrInvalidStatus)
		}
	}

	views, err := e.viewAll()
	if err != nil {
		return nil, err
	}
	if len(filter.Statuses) == 0 && filter.Worktree == "" {
		return views, nil
	}

	wanted := make(map[string]bool, len(filter.Statuses))
	for _, st := range filter.Statuses {
		wanted[st] = true
	}

	filtered := []*types.TrackView{}
	for _, v := range views {
		if len(wanted) > 0 && !wanted[v.Status] {
			continue
		}
		if filter.Worktree != "" && v.WorktreeLabel() != filter.Worktree {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered, nil
}

// Get returns one track annotated with derived fields.
func (e *Engine) Get(id string) (*types.TrackView, error) {
	return e.view(id)
}

// addEdge inserts blockingID -> blockedID after the cycle check and
// applies the blocking rule: a planned blocked track becomes blocked.
// Inserting an existing edge is a no-op and does not re-fire the rule.
func (e *Engine) addEdge(blockingID, blockedID string) error {
	edges, err := e.store.ListDependencies()
	if err != nil {
		return err
	}
	for _, edge := range edges {
		if edge.BlockingID == blockingID && edge.BlockedID == blockedID {
			return nil
		}
	}

	if WouldCreateCycle(edges, blockingID, blockedID) {
		return fmt.Errorf("dependency %s -> %s: %w", blockingID, blockedID, types.ErrDependencyCycle)
	}

	if err := e.store.AddDependency(blockingID, blockedID); err != nil {
		return err
	}

	blocked, err := e.store.GetTrack(blockedID)
	if err != nil {
		return err
	}
	if blocked.Status == types.StatusPlanned {
		return e.store.SetStatus(blockedID, types.StatusBlocked)
	}
	return nil
}

// removeEdge deletes blockingID -> blockedID and applies the unblocking
// rule: a blocked track with no remaining incoming edges returns to
// planned. Removing an absent edge is a full no-op, so a manually
// blocked track is never unblocked by it.
func (e *Engine) removeEdge(blockingID, blockedID string) error {
	edges, err := e.store.ListDependencies()
	if err != nil {
		return err
	}
	found := false
	for _, edge := range edges {
		if edge.BlockingID == blockingID && edge.BlockedID == blockedID {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if err := e.store.RemoveDependency(blockingID, blockedID); err != nil {
		return err
	}

	blocked, err := e.store.GetTrack(blockedID)
	if err != nil {
		return err
	}
	if blocked.Status != types.StatusBlocked {
		return nil
	}
	remaining, err := e.store.BlockerIDs(blockedID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return e.store.SetStatus(blockedID, types.StatusPlanned)
	}
	return nil
}

// cascadeCompletion applies the completion rule after doneID reaches
// done: every track it blocks that is blocked, has at least one
// dependency edge, and whose blockers are now all done returns to
// planned. Completing one blocker unblocks a track only when the last
// remaining blocker completes; manually blocked tracks without edges
// are never touched.
func (e *Engine) cascadeCompletion(doneID string) ([]string, error) {
	blockedIDs, err := e.store.BlockedIDs(doneID)
	if err != nil {
		return nil, err
	}

	unblocked := []string{}
	for _, id := range blockedIDs {
		track, err := e.store.GetTrack(id)
		if err != nil {
			return nil, err
		}
		if track.Status != types.StatusBlocked {
			continue
		}
		blockers, err := e.store.BlockerIDs(id)
		if err != nil {
			return nil, err
		}
		if len(blockers) == 0 {
			continue
		}
		allDone, err := e.allDone(blockers)
		if err != nil {
			return nil, err
		}
		if !allDone {
			continue
		}
		if err := e.store.SetStatus(id, types.StatusPlanned); err != nil {
			return nil, err
		}
		unblocked = append(unblocked, id)
	}
	return unblocked, nil
}

// allDone reports whether every listed track has status done.
func (e *Engine) allDone(ids []string) (bool, error) {
	for _, id := range ids {
		t, err := e.store.GetTrack(id)
		if err != nil {
			return false, err
		}
		if t.Status != types.StatusDone {
			return false, nil
		}
	}
	return true, nil
}

// view builds the annotated view of one track. Derivation still runs
// over the full set; kind depends on tracks other than this one.
func (e *Engine) view(id string) (*types.TrackView, error) {
	views, err := e.viewAll()
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("track %s: %w", id, types.ErrNotFound)
}

// viewAll loads the full track, edge, and file sets once and assembles
// annotated views for every track.
func (e *Engine) viewAll() ([]*types.TrackView, error) {
	tracks, err := e.store.ListTracks()
	if err != nil {
		return nil, err
	}
	edges, err := e.store.ListDependencies()
	if err != nil {
		return nil, err
	}
	files, err := e.store.AllFiles()
	if err != nil {
		return nil, err
	}

	derived := DeriveTree(tracks)
	grouped := GroupEdges(edges)

	views := make([]*types.TrackView, 0, len(tracks))
	for _, t := range tracks {
		d := derived[t.ID]
		g := grouped[t.ID]
		v := &types.TrackView{
			Track:     *t,
			Kind:      d.Kind,
			Children:  d.Children,
			Blocks:    g.Blocks,
			BlockedBy: g.BlockedBy,
			Files:     files[t.ID],
		}
		if v.Blocks == nil {
			v.Blocks = []string{}
		}
		if v.BlockedBy == nil {
			v.BlockedBy = []string{}
		}
		if v.Files == nil {
			v.Files = []string{}
		}
		views = append(views, v)
	}
	return views, nil
}
