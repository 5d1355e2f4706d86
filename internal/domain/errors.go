package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoteNotFound covers both an absent record and a record owned by a
	// different identity. The two cases must stay indistinguishable to callers.
	ErrNoteNotFound = errors.New("note not found")

	// ErrUnauthenticated means no valid identity could be resolved for a request.
	ErrUnauthenticated = errors.New("unauthenticated")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
