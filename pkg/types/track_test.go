package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPlanned, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{StatusBlocked, true},
		{StatusSuperseded, true},
		{"", false},
		{"open", false},
		{"Planned", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStatus(tt.status))
		})
	}
}

func TestStatusValues(t *testing.T) {
	values := StatusValues()
	assert.Equal(t, []string{
		StatusPlanned, StatusInProgress, StatusDone, StatusBlocked, StatusSuperseded,
	}, values)

	// Mutating the returned slice must not leak into later calls.
	values[0] = "mutated"
	assert.Equal(t, StatusPlanned, StatusValues()[0])
}

func TestTrackSetStatus(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		target     string
		wantErr    error
		wantStatus string
	}{
		{
			name:       "planned to in_progress",
			initial:    StatusPlanned,
			target:     StatusInProgress,
			wantStatus: StatusInProgress,
		},
		{
			name:       "blocked to planned",
			initial:    StatusBlocked,
			target:     StatusPlanned,
			wantStatus: StatusPlanned,
		},
		{
			name:       "done revert allowed",
			initial:    StatusDone,
			target:     StatusInProgress,
			wantStatus: StatusInProgress,
		},
		{
			name:       "set current status is idempotent",
			initial:    StatusPlanned,
			target:     StatusPlanned,
			wantStatus: StatusPlanned,
		},
		{
			name:    "invalid status rejected",
			initial: StatusPlanned,
			target:  "finished",
			wantErr: ErrInvalidStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := &Track{Title: "t", Status: tt.initial}
			before := track.UpdatedAt

			err := track.SetStatus(tt.target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.initial, track.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, track.Status)
			assert.True(t, track.UpdatedAt.After(before))
		})
	}
}

func TestWorktreeLabel(t *testing.T) {
	track := &Track{Title: "t"}
	assert.Equal(t, "", track.WorktreeLabel())

	label := "feature-x"
	track.Worktree = &label
	assert.Equal(t, "feature-x", track.WorktreeLabel())
}
