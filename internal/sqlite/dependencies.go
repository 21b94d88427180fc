package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/waymark/pkg/types"
)

// AddDependency inserts a blocks edge. Idempotent: inserting an
// existing (blocking, blocked) pair is a no-op. Both ends must exist.
// Cycle safety is the caller's responsibility; the store only persists
// what the engine has already checked.
func (s *Store) AddDependency(blockingID, blockedID string) error {
	for _, id := range []string{blockingID, blockedID} {
		exists, err := s.TrackExists(id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("track %s: %w", id, types.ErrNotFound)
		}
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO track_dependencies (blocking_track_id, blocked_track_id) VALUES (?, ?)",
		blockingID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("adding dependency %s -> %s: %w", blockingID, blockedID, err)
	}
	return nil
}

// RemoveDependency deletes a blocks edge. Removing an absent edge is a
// no-op.
func (s *Store) RemoveDependency(blockingID, blockedID string) error {
	_, err := s.db.Exec(
		"DELETE FROM track_dependencies WHERE blocking_track_id = ? AND blocked_track_id = ?",
		blockingID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("removing dependency %s -> %s: %w", blockingID, blockedID, err)
	}
	return nil
}

// ListDependencies returns the full edge set.
func (s *Store) ListDependencies() ([]types.Dependency, error) {
	rows, err := s.db.Query(
		"SELECT blocking_track_id, blocked_track_id FROM track_dependencies ORDER BY blocking_track_id, blocked_track_id",
	)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	edges := []types.Dependency{}
	for rows.Next() {
		var d types.Dependency
		if err := rows.Scan(&d.BlockingID, &d.BlockedID); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		edges = append(edges, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return edges, nil
}

// BlockerIDs returns the ids of tracks directly blocking id (incoming
// edges only, not transitive).
func (s *Store) BlockerIDs(id string) ([]string, error) {
	return s.edgeEndpoints(
		"SELECT blocking_track_id FROM track_dependencies WHERE blocked_track_id = ? ORDER BY blocking_track_id", id,
	)
}

// BlockedIDs returns the ids of tracks directly blocked by id (outgoing
// edges only, not transitive).
func (s *Store) BlockedIDs(id string) ([]string, error) {
	return s.edgeEndpoints(
		"SELECT blocked_track_id FROM track_dependencies WHERE blocking_track_id = ? ORDER BY blocked_track_id", id,
	)
}

func (s *Store) edgeEndpoints(query, id string) ([]string, error) {
	rows, err := s.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("querying dependencies of track %s: %w", id, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var endpoint string
		if err := rows.Scan(&endpoint); err != nil {
			return nil, fmt.Errorf("scanning dependency endpoint: %w", err)
		}
		ids = append(ids, endpoint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependency endpoints: %w", err)
	}
	return ids, nil
}
