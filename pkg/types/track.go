package types

import "time"

// Track statuses. A track moves between these during its lifecycle;
// blocked/planned transitions may also be driven by the dependency engine.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusBlocked    = "blocked"
	StatusSuperseded = "superseded"
)

// statusOrder lists the statuses in display order for error messages.
var statusOrder = []string{
	StatusPlanned,
	StatusInProgress,
	StatusDone,
	StatusBlocked,
	StatusSuperseded,
}

// validStatuses is the set of recognized track status values.
var validStatuses = map[string]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusBlocked:    true,
	StatusSuperseded: true,
}

// ValidStatus reports whether status is a recognized track status.
func ValidStatus(status string) bool {
	return validStatuses[status]
}

// StatusValues returns the recognized statuses in a stable order,
// for use in validation error messages.
func StatusValues() []string {
	out := make([]string, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Track kinds, derived from the hierarchy on every read and never stored.
// The single null-parent track is "super"; a track with children is a
// "feature"; a childless track is a "task".
const (
	KindSuper   = "super"
	KindFeature = "feature"
	KindTask    = "task"
)

// Track represents one unit of work in the hierarchy.
type Track struct {
	ID         string    `json:"id"`          // UUID v7, generated on creation.
	Title      string    `json:"title"`       // Required, immutable after creation.
	ParentID   *string   `json:"parent_id"`   // Nil for the single root track.
	Summary    string    `json:"summary"`     // Current-state text, replaced on update.
	NextPrompt string    `json:"next_prompt"` // Next-step text, replaced on update.
	Status     string    `json:"status"`      // One of the Status constants.
	Worktree   *string   `json:"worktree"`    // Optional label; nil when unset.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SetStatus sets the track status to the given value.
// Returns ErrInvalidStatus if the value is not recognized.
// Idempotent: setting the current status succeeds without error.
func (t *Track) SetStatus(status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// WorktreeLabel returns the worktree label, or "" when unset.
func (t *Track) WorktreeLabel() string {
	if t.Worktree == nil {
		return ""
	}
	return *t.Worktree
}
