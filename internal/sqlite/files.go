package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/waymark/pkg/types"
)

// AddFiles associates file paths with a track. Duplicate paths are
// silently ignored, so re-adding a path leaves the set unchanged.
func (s *Store) AddFiles(id string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	exists, err := s.TrackExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("track %s: %w", id, types.ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO track_files (track_id, file_path) VALUES (?, ?)",
			id, path,
		); err != nil {
			return fmt.Errorf("adding file %s to track %s: %w", path, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing file associations: %w", err)
	}
	return nil
}

// ListFiles returns the file paths associated with a track, sorted.
func (s *Store) ListFiles(id string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT file_path FROM track_files WHERE track_id = ? ORDER BY file_path", id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing files of track %s: %w", id, err)
	}
	defer rows.Close()

	files := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning file path: %w", err)
		}
		files = append(files, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return files, nil
}

// AllFiles returns every file association grouped by track id, for
// bulk read paths.
func (s *Store) AllFiles() (map[string][]string, error) {
	rows, err := s.db.Query(
		"SELECT track_id, file_path FROM track_files ORDER BY track_id, file_path",
	)
	if err != nil {
		return nil, fmt.Errorf("listing file associations: %w", err)
	}
	defer rows.Close()

	files := map[string][]string{}
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("scanning file association: %w", err)
		}
		files[id] = append(files[id], path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file associations: %w", err)
	}
	return files, nil
}
