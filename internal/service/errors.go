package service

import (
	"errors"
	"fmt"
)

var ErrSessionNotFound = errors.New("chat session not found")

// BusyError gates concurrent submission: each request category allows at
// most one in-flight request.
type BusyError struct {
	Category string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("a %s request is already in progress", e.Category)
}

// CollaboratorError wraps a failed call to an external collaborator (LLM
// provider). The user's message is never rolled back when this is returned.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator request failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
