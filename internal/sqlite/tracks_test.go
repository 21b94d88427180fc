package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/waymark/pkg/types"
)

// setupStore opens a store in a fresh temp directory, with a deferred
// close.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateRoot creates the null-parent track.
func mustCreateRoot(t *testing.T, s *Store) *types.Track {
	t.Helper()
	root := &types.Track{Title: "Root"}
	require.NoError(t, s.CreateTrack(root))
	return root
}

// mustCreateChild creates a track under parent.
func mustCreateChild(t *testing.T, s *Store, parentID, title string) *types.Track {
	t.Helper()
	track := &types.Track{Title: title, ParentID: &parentID}
	require.NoError(t, s.CreateTrack(track))
	return track
}

func TestCreateTrack(t *testing.T) {
	t.Run("assigns id and timestamps", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		assert.NotEmpty(t, root.ID)
		assert.False(t, root.CreatedAt.IsZero())
		assert.Equal(t, types.StatusPlanned, root.Status)

		got, err := s.GetTrack(root.ID)
		require.NoError(t, err)
		assert.Equal(t, "Root", got.Title)
		assert.Nil(t, got.ParentID)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		s := setupStore(t)
		err := s.CreateTrack(&types.Track{Title: "   "})
		require.ErrorIs(t, err, types.ErrEmptyTitle)
	})

	t.Run("second root rejected", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		err := s.CreateTrack(&types.Track{Title: "Another root"})
		require.ErrorIs(t, err, types.ErrRootExists)
		assert.Contains(t, err.Error(), root.ID)
	})

	t.Run("unknown parent rejected", func(t *testing.T) {
		s := setupStore(t)
		mustCreateRoot(t, s)

		missing := "no-such-id"
		err := s.CreateTrack(&types.Track{Title: "Child", ParentID: &missing})
		require.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		s := setupStore(t)
		err := s.CreateTrack(&types.Track{Title: "Root", Status: "bogus"})
		require.ErrorIs(t, err, types.ErrInvalidStatus)
	})
}

func TestGetTrack(t *testing.T) {
	s := setupStore(t)
	root := mustCreateRoot(t, s)
	child := mustCreateChild(t, s, root.ID, "Child")

	got, err := s.GetTrack(child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, got.ID)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	_, err = s.GetTrack("missing")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestGetRoot(t *testing.T) {
	s := setupStore(t)

	_, err := s.GetRoot()
	require.ErrorIs(t, err, types.ErrNoRoot)

	root := mustCreateRoot(t, s)
	mustCreateChild(t, s, root.ID, "Child")

	got, err := s.GetRoot()
	require.NoError(t, err)
	assert.Equal(t, root.ID, got.ID)
}

func TestListTracksByStatus(t *testing.T) {
	s := setupStore(t)
	root := mustCreateRoot(t, s)
	a := mustCreateChild(t, s, root.ID, "A")
	b := mustCreateChild(t, s, root.ID, "B")

	require.NoError(t, s.SetStatus(a.ID, types.StatusInProgress))
	require.NoError(t, s.SetStatus(b.ID, types.StatusDone))

	inProgress, err := s.ListTracksByStatus([]string{types.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, a.ID, inProgress[0].ID)

	both, err := s.ListTracksByStatus([]string{types.StatusInProgress, types.StatusDone})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := s.ListTracksByStatus(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateTrack(t *testing.T) {
	t.Run("replaces mutable fields and refreshes updated_at", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		patch := TrackPatch{
			Summary:    "did things",
			NextPrompt: "do more things",
			Status:     types.StatusInProgress,
		}
		require.NoError(t, s.UpdateTrack(root.ID, patch))

		got, err := s.GetTrack(root.ID)
		require.NoError(t, err)
		assert.Equal(t, "did things", got.Summary)
		assert.Equal(t, "do more things", got.NextPrompt)
		assert.Equal(t, types.StatusInProgress, got.Status)
		assert.Nil(t, got.Worktree)
	})

	t.Run("worktree tri-state", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		patch := TrackPatch{Status: types.StatusPlanned, Worktree: types.WorktreeSet("feature-x")}
		require.NoError(t, s.UpdateTrack(root.ID, patch))
		got, err := s.GetTrack(root.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Worktree)
		assert.Equal(t, "feature-x", *got.Worktree)

		// Unchanged leaves the label alone.
		patch = TrackPatch{Status: types.StatusPlanned}
		require.NoError(t, s.UpdateTrack(root.ID, patch))
		got, err = s.GetTrack(root.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Worktree)
		assert.Equal(t, "feature-x", *got.Worktree)

		// Clear persists NULL.
		patch = TrackPatch{Status: types.StatusPlanned, Worktree: types.WorktreeClear()}
		require.NoError(t, s.UpdateTrack(root.ID, patch))
		got, err = s.GetTrack(root.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Worktree)
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		s := setupStore(t)
		err := s.UpdateTrack("missing", TrackPatch{Status: types.StatusPlanned})
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)
		err := s.UpdateTrack(root.ID, TrackPatch{Status: "bogus"})
		require.ErrorIs(t, err, types.ErrInvalidStatus)
	})
}

func TestSetStatus(t *testing.T) {
	s := setupStore(t)
	root := mustCreateRoot(t, s)

	require.NoError(t, s.SetStatus(root.ID, types.StatusBlocked))
	got, err := s.GetTrack(root.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusBlocked, got.Status)

	require.ErrorIs(t, s.SetStatus("missing", types.StatusDone), types.ErrNotFound)
	require.ErrorIs(t, s.SetStatus(root.ID, "bogus"), types.ErrInvalidStatus)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	root := &types.Track{Title: "Root"}
	require.NoError(t, s.CreateTrack(root))
	child := &types.Track{Title: "Child", ParentID: &root.ID}
	require.NoError(t, s.CreateTrack(child))
	require.NoError(t, s.AddDependency(root.ID, child.ID))
	require.NoError(t, s.Close())

	// A second open against the same directory sees the same rows.
	s2, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	tracks, err := s2.ListTracks()
	require.NoError(t, err)
	assert.Len(t, tracks, 2)

	edges, err := s2.ListDependencies()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, root.ID, edges[0].BlockingID)
}

func TestStoreCloseIdempotent(t *testing.T) {
	s, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
