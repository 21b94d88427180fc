package types

import (
	"errors"
	"time"
)

// Config validation errors.
var ErrBusyTimeoutInvalid = errors.New("busy timeout must not be negative")

// DefaultBusyTimeout bounds how long a writer waits for the store lock
// before failing loudly instead of deadlocking.
const DefaultBusyTimeout = 5 * time.Second

// Config describes where the store lives and how long writers wait for
// the database lock.
type Config struct {
	// DataDir is the directory holding the store. Empty means the
	// current directory.
	DataDir string

	// BusyTimeout overrides DefaultBusyTimeout when positive.
	BusyTimeout time.Duration
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.BusyTimeout < 0 {
		return ErrBusyTimeoutInvalid
	}
	return nil
}

// GetBusyTimeout returns the configured busy timeout, or
// DefaultBusyTimeout when unset.
func (c Config) GetBusyTimeout() time.Duration {
	if c.BusyTimeout > 0 {
		return c.BusyTimeout
	}
	return DefaultBusyTimeout
}
