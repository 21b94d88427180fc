// Package sqlite implements the durable track store on SQLite. The
// store is a scoped resource: each logical operation opens it, performs
// its reads and writes, and closes it again. The database is opened in
// WAL mode with a bounded busy timeout so concurrent writers serialize
// and fail loudly instead of deadlocking.
package sqlite

// Schema DDL. IF NOT EXISTS so an existing store survives reopen.
const (
	createTracks = `CREATE TABLE IF NOT EXISTS tracks (
    track_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    parent_id TEXT REFERENCES tracks(track_id),
    summary TEXT NOT NULL DEFAULT '',
    next_prompt TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    worktree TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTrackFiles = `CREATE TABLE IF NOT EXISTS track_files (
    track_id TEXT NOT NULL,
    file_path TEXT NOT NULL,
    PRIMARY KEY (track_id, file_path),
    FOREIGN KEY (track_id) REFERENCES tracks(track_id)
);`

	createTrackDependencies = `CREATE TABLE IF NOT EXISTS track_dependencies (
    blocking_track_id TEXT NOT NULL,
    blocked_track_id TEXT NOT NULL,
    PRIMARY KEY (blocking_track_id, blocked_track_id),
    FOREIGN KEY (blocking_track_id) REFERENCES tracks(track_id),
    FOREIGN KEY (blocked_track_id) REFERENCES tracks(track_id)
);`
)

// Index DDL for common queries.
const (
	idxTracksStatus = `CREATE INDEX IF NOT EXISTS idx_tracks_status ON tracks(status);`
	idxTracksParent = `CREATE INDEX IF NOT EXISTS idx_tracks_parent ON tracks(parent_id);`
	idxDepsBlocked  = `CREATE INDEX IF NOT EXISTS idx_deps_blocked ON track_dependencies(blocked_track_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTracks,
	createTrackFiles,
	createTrackDependencies,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTracksStatus,
	idxTracksParent,
	idxDepsBlocked,
}
