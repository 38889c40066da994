// file: internals/features/tasks/errors/errors.go
package taskerrors

import "fmt"

// ValidationError is returned when a lifecycle action carries malformed
// input (empty proof text, zero postpone date). Rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// ConflictError is returned when a requested transition is invalid for
// the occurrence's current status. The row is left untouched so the UI
// can refresh and show the real state.
type ConflictError struct {
	OccurrenceID string
	Status       string
	Action       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("action %q not allowed on occurrence %s in status %s", e.Action, e.OccurrenceID, e.Status)
}

// DependencyReadError wraps a failed template/assignment/occurrence read.
// It aborts the whole batch pass; nothing partial is committed.
type DependencyReadError struct {
	Source string
	Err    error
}

func (e *DependencyReadError) Error() string {
	return fmt.Sprintf("read from %s failed: %v", e.Source, e.Err)
}

func (e *DependencyReadError) Unwrap() error { return e.Err }

// DependencyWriteError wraps a failed upsert/update after validation
// passed. Callers may retry: all core writes are idempotent upserts or
// conditional updates.
type DependencyWriteError struct {
	Target string
	Err    error
}

func (e *DependencyWriteError) Error() string {
	return fmt.Sprintf("write to %s failed: %v", e.Target, e.Err)
}

func (e *DependencyWriteError) Unwrap() error { return e.Err }
