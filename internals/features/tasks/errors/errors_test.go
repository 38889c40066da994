package taskerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "proof_text", Reason: "must not be empty"}
	assert.Equal(t, `validation failed on "proof_text": must not be empty`, err.Error())

	bare := &ValidationError{Reason: "target date required"}
	assert.Equal(t, "validation failed: target date required", bare.Error())
}

func TestConflictError_Message(t *testing.T) {
	err := &ConflictError{OccurrenceID: "abc", Status: "DONE", Action: "increment"}
	assert.Contains(t, err.Error(), `action "increment"`)
	assert.Contains(t, err.Error(), "status DONE")
}

func TestDependencyErrors_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	read := &DependencyReadError{Source: "task_assignments", Err: cause}
	assert.ErrorIs(t, read, cause)
	assert.Contains(t, read.Error(), "task_assignments")

	write := &DependencyWriteError{Target: "task_occurrences", Err: cause}
	assert.ErrorIs(t, write, cause)
	assert.Contains(t, write.Error(), "task_occurrences")
}

func TestErrorsAs_DistinguishesKinds(t *testing.T) {
	var err error = &ConflictError{OccurrenceID: "x", Status: "POSTPONED", Action: "postpone"}

	var ce *ConflictError
	var ve *ValidationError
	assert.True(t, errors.As(err, &ce))
	assert.False(t, errors.As(err, &ve))
}
