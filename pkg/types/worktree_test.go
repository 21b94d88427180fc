package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorktreePatch(t *testing.T) {
	current := "main"

	t.Run("zero value is unchanged", func(t *testing.T) {
		var p WorktreePatch
		assert.True(t, p.Unchanged())
		assert.False(t, p.Cleared())
		_, ok := p.Value()
		assert.False(t, ok)
		assert.Equal(t, &current, p.Apply(&current))
	})

	t.Run("set carries the value", func(t *testing.T) {
		p := WorktreeSet("feature-x")
		assert.False(t, p.Unchanged())
		v, ok := p.Value()
		assert.True(t, ok)
		assert.Equal(t, "feature-x", v)

		got := p.Apply(&current)
		assert.NotNil(t, got)
		assert.Equal(t, "feature-x", *got)
	})

	t.Run("set empty string is still a set", func(t *testing.T) {
		p := WorktreeSet("")
		v, ok := p.Value()
		assert.True(t, ok)
		assert.Equal(t, "", v)
		assert.False(t, p.Unchanged())
	})

	t.Run("clear resolves to nil", func(t *testing.T) {
		p := WorktreeClear()
		assert.True(t, p.Cleared())
		assert.False(t, p.Unchanged())
		assert.Nil(t, p.Apply(&current))
	})

	t.Run("unchanged preserves nil", func(t *testing.T) {
		assert.Nil(t, WorktreeUnchanged().Apply(nil))
	})
}
