package types

import "errors"

// Errors shared by the store and engine layers. Call sites wrap these
// with the offending id or value via fmt.Errorf("...: %w", ...), so
// callers match with errors.Is while messages stay specific.
var (
	ErrNotFound        = errors.New("track not found")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrDependencyCycle = errors.New("dependency would create a cycle")
	ErrRootExists      = errors.New("root track already exists")
	ErrNoRoot          = errors.New("no root track exists")
)
