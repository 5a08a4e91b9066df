// Package history provides the durable, auditable record of every accepted
// change to the events document. The backend wraps a version-control clone of
// the document's directory; commits are the audit trail and push is the
// replication mechanism.
package history

import (
	"context"
	"errors"
	"fmt"
)

// ErrNothingToCommit is returned by Commit when staging produced zero net
// changes. Callers treat it as a terminal non-error condition, not success.
var ErrNothingToCommit = errors.New("nothing to commit")

// Error reports a failed stage or commit. By the time these run the file on
// disk has already been mutated, so callers must surface the divergence
// rather than retry blindly.
type Error struct {
	Op     string // "stage", "commit" or "status"
	Output string // trailing command output, for diagnostics
	Err    error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git %s: %v: %s", e.Op, e.Err, e.Output)
	}
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PushError reports a failed push. It is distinct from Error because local
// file and history are already ahead of the remote; retrying push alone is
// the correct recovery, no re-mutation needed.
type PushError struct {
	Output string
	Err    error
}

func (e *PushError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git push: %v: %s", e.Err, e.Output)
	}
	return fmt.Sprintf("git push: %v", e.Err)
}

func (e *PushError) Unwrap() error { return e.Err }

// Backend is the version-control surface the coordinator drives. Credentials
// and remote identity are ambient process configuration; Push fails closed
// when they are absent.
type Backend interface {
	// Stage marks the given paths (relative to the repository root) for
	// inclusion in the next entry.
	Stage(ctx context.Context, paths ...string) error
	// Commit records one entry from the staged changes. Returns
	// ErrNothingToCommit when staging produced no net change.
	Commit(ctx context.Context, message string) error
	// Push publishes local history to the remote.
	Push(ctx context.Context) error
	// Status reports whether the working tree is clean (no uncommitted
	// changes). Used as a pre-flight check before mutations.
	Status(ctx context.Context) (clean bool, err error)
}
