package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/waymark/pkg/types"
)

func TestAddDependency(t *testing.T) {
	t.Run("idempotent insert", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)
		a := mustCreateChild(t, s, root.ID, "A")
		b := mustCreateChild(t, s, root.ID, "B")

		require.NoError(t, s.AddDependency(a.ID, b.ID))
		require.NoError(t, s.AddDependency(a.ID, b.ID))

		edges, err := s.ListDependencies()
		require.NoError(t, err)
		assert.Len(t, edges, 1)
	})

	t.Run("unknown endpoint rejected", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		err := s.AddDependency(root.ID, "missing")
		require.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "missing")

		err = s.AddDependency("missing", root.ID)
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRemoveDependency(t *testing.T) {
	s := setupStore(t)
	root := mustCreateRoot(t, s)
	a := mustCreateChild(t, s, root.ID, "A")
	b := mustCreateChild(t, s, root.ID, "B")

	require.NoError(t, s.AddDependency(a.ID, b.ID))
	require.NoError(t, s.RemoveDependency(a.ID, b.ID))

	edges, err := s.ListDependencies()
	require.NoError(t, err)
	assert.Empty(t, edges)

	// Removing an absent edge is a no-op, not an error.
	require.NoError(t, s.RemoveDependency(a.ID, b.ID))
}

func TestBlockerAndBlockedIDs(t *testing.T) {
	s := setupStore(t)
	root := mustCreateRoot(t, s)
	a := mustCreateChild(t, s, root.ID, "A")
	b := mustCreateChild(t, s, root.ID, "B")
	c := mustCreateChild(t, s, root.ID, "C")

	require.NoError(t, s.AddDependency(a.ID, c.ID))
	require.NoError(t, s.AddDependency(b.ID, c.ID))
	require.NoError(t, s.AddDependency(a.ID, b.ID))

	blockers, err := s.BlockerIDs(c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, blockers)

	blocked, err := s.BlockedIDs(a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID, c.ID}, blocked)

	none, err := s.BlockerIDs(a.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFiles(t *testing.T) {
	t.Run("duplicate paths are ignored", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)

		require.NoError(t, s.AddFiles(root.ID, []string{"a.go", "b.go"}))
		require.NoError(t, s.AddFiles(root.ID, []string{"b.go", "c.go"}))

		files, err := s.ListFiles(root.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go", "c.go"}, files)
	})

	t.Run("unknown track rejected", func(t *testing.T) {
		s := setupStore(t)
		err := s.AddFiles("missing", []string{"a.go"})
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("empty path list is a no-op", func(t *testing.T) {
		s := setupStore(t)
		require.NoError(t, s.AddFiles("missing", nil))
	})

	t.Run("bulk export groups by track", func(t *testing.T) {
		s := setupStore(t)
		root := mustCreateRoot(t, s)
		a := mustCreateChild(t, s, root.ID, "A")

		require.NoError(t, s.AddFiles(root.ID, []string{"root.go"}))
		require.NoError(t, s.AddFiles(a.ID, []string{"a1.go", "a2.go"}))

		all, err := s.AllFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"root.go"}, all[root.ID])
		assert.Equal(t, []string{"a1.go", "a2.go"}, all[a.ID])
	})
}
