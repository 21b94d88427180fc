package types

// worktreeOp distinguishes the three ways an operation can touch the
// worktree label.
type worktreeOp int

const (
	worktreeUnchanged worktreeOp = iota
	worktreeSet
	worktreeClear
)

// WorktreePatch describes how an operation touches a track's worktree
// label: leave it alone, set it to a value, or clear it to null. An
// explicit sum type avoids the ambiguity between "caller passed an empty
// string" and "caller passed nothing".
//
// The zero value is WorktreeUnchanged.
type WorktreePatch struct {
	op    worktreeOp
	value string
}

// WorktreeUnchanged returns a patch that leaves the label untouched.
func WorktreeUnchanged() WorktreePatch {
	return WorktreePatch{}
}

// WorktreeSet returns a patch that sets the label to value.
func WorktreeSet(value string) WorktreePatch {
	return WorktreePatch{op: worktreeSet, value: value}
}

// WorktreeClear returns a patch that clears the label to null.
func WorktreeClear() WorktreePatch {
	return WorktreePatch{op: worktreeClear}
}

// Unchanged reports whether the patch leaves the label untouched.
func (p WorktreePatch) Unchanged() bool {
	return p.op == worktreeUnchanged
}

// Cleared reports whether the patch clears the label.
func (p WorktreePatch) Cleared() bool {
	return p.op == worktreeClear
}

// Value returns the label to set and true, or "" and false when the
// patch is not a set.
func (p WorktreePatch) Value() (string, bool) {
	if p.op != worktreeSet {
		return "", false
	}
	return p.value, true
}

// Apply returns the worktree pointer that results from applying the
// patch to current.
func (p WorktreePatch) Apply(current *string) *string {
	switch p.op {
	case worktreeSet:
		v := p.value
		return &v
	case worktreeClear:
		return nil
	default:
		return current
	}
}
