package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/waymark/pkg/types"
)

const trackColumns = "track_id, title, parent_id, summary, next_prompt, status, worktree, created_at, updated_at"

// TrackPatch carries the mutable fields for UpdateTrack. Summary,
// NextPrompt, and Status replace the stored values wholesale; Worktree
// is tri-state and only touched when the patch says so.
type TrackPatch struct {
	Summary    string
	NextPrompt string
	Status     string
	Worktree   types.WorktreePatch
}

// CreateTrack persists a new track. When t.ID is empty a UUID v7 is
// generated. Timestamps are assigned here. Enforces a non-empty title,
// a recognized status, an existing parent, and at most one null-parent
// track per store.
func (s *Store) CreateTrack(t *types.Track) error {
	if strings.TrimSpace(t.Title) == "" {
		return types.ErrEmptyTitle
	}
	if t.Status == "" {
		t.Status = types.StatusPlanned
	}
	if !types.ValidStatus(t.Status) {
		return fmt.Errorf("status %q: %w", t.Status, types.ErrInvalidStatus)
	}

	if t.ParentID == nil {
		var existing string
		err := s.db.QueryRow("SELECT track_id FROM tracks WHERE parent_id IS NULL").Scan(&existing)
		if err == nil {
			return fmt.Errorf("root %s: %w", existing, types.ErrRootExists)
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking for root: %w", err)
		}
	} else {
		exists, err := s.TrackExists(*t.ParentID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("parent %s: %w", *t.ParentID, types.ErrNotFound)
		}
	}

	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating UUID v7: %w", err)
		}
		t.ID = id.String()
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.Exec(
		"INSERT INTO tracks ("+trackColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.Title, t.ParentID, t.Summary, t.NextPrompt, t.Status, t.Worktree,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting track %s: %w", t.ID, err)
	}
	return nil
}

// GetTrack retrieves a track by id. Returns ErrNotFound (wrapped with
// the id) when no such track exists.
func (s *Store) GetTrack(id string) (*types.Track, error) {
	row := s.db.QueryRow("SELECT "+trackColumns+" FROM tracks WHERE track_id = ?", id)
	t, err := hydrateTrack(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("track %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting track %s: %w", id, err)
	}
	return t, nil
}

// TrackExists reports whether a track with the given id exists.
func (s *Store) TrackExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM tracks WHERE track_id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking track %s: %w", id, err)
	}
	return true, nil
}

// GetRoot returns the single null-parent track, or ErrNoRoot when the
// store has never been initialized.
func (s *Store) GetRoot() (*types.Track, error) {
	row := s.db.QueryRow("SELECT " + trackColumns + " FROM tracks WHERE parent_id IS NULL")
	t, err := hydrateTrack(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNoRoot
		}
		return nil, fmt.Errorf("getting root track: %w", err)
	}
	return t, nil
}

// ListTracks returns every track, ordered by creation time.
func (s *Store) ListTracks() ([]*types.Track, error) {
	return s.listTracks("SELECT " + trackColumns + " FROM tracks ORDER BY created_at, track_id")
}

// ListTracksByStatus returns the tracks whose status is in statuses,
// ordered by creation time. An empty list returns no tracks.
func (s *Store) ListTracksByStatus(statuses []string) ([]*types.Track, error) {
	if len(statuses) == 0 {
		return []*types.Track{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = st
	}
	query := "SELECT " + trackColumns + " FROM tracks WHERE status IN (" + placeholders + ") ORDER BY created_at, track_id"
	return s.listTracks(query, args...)
}

// UpdateTrack replaces the mutable fields of a track and refreshes
// updated_at. The worktree column is only touched when the patch sets
// or clears it.
func (s *Store) UpdateTrack(id string, patch TrackPatch) error {
	if !types.ValidStatus(patch.Status) {
		return fmt.Errorf("status %q: %w", patch.Status, types.ErrInvalidStatus)
	}
	exists, err := s.TrackExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("track %s: %w", id, types.ErrNotFound)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if patch.Worktree.Unchanged() {
		_, err = s.db.Exec(
			"UPDATE tracks SET summary = ?, next_prompt = ?, status = ?, updated_at = ? WHERE track_id = ?",
			patch.Summary, patch.NextPrompt, patch.Status, now, id,
		)
	} else {
		var worktree *string
		if v, ok := patch.Worktree.Value(); ok {
			worktree = &v
		}
		_, err = s.db.Exec(
			"UPDATE tracks SET summary = ?, next_prompt = ?, status = ?, worktree = ?, updated_at = ? WHERE track_id = ?",
			patch.Summary, patch.NextPrompt, patch.Status, worktree, now, id,
		)
	}
	if err != nil {
		return fmt.Errorf("updating track %s: %w", id, err)
	}
	return nil
}

// SetStatus sets only the status of a track, refreshing updated_at.
// Used by the cascade rules, which never touch the other fields.
func (s *Store) SetStatus(id, status string) error {
	if !types.ValidStatus(status) {
		return fmt.Errorf("status %q: %w", status, types.ErrInvalidStatus)
	}
	res, err := s.db.Exec(
		"UPDATE tracks SET status = ?, updated_at = ? WHERE track_id = ?",
		status, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("setting status of track %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting status of track %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("track %s: %w", id, types.ErrNotFound)
	}
	return nil
}

func (s *Store) listTracks(query string, args ...any) ([]*types.Track, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	defer rows.Close()

	tracks := []*types.Track{}
	for rows.Next() {
		t, err := hydrateTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tracks: %w", err)
	}
	return tracks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateTrack converts a SQLite row into a *types.Track.
func hydrateTrack(row rowScanner) (*types.Track, error) {
	var t types.Track
	var parentID, worktree sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Title, &parentID, &t.Summary, &t.NextPrompt, &t.Status, &worktree, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	if worktree.Valid {
		t.Worktree = &worktree.String
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
