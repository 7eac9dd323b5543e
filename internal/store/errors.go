package store

import "errors"

// Task store errors
var (
	// ErrEmptyTitle is returned when a title is blank after trimming.
	// The list is left untouched and nothing is written.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrIndexOutOfRange is returned for an index outside [0, Len).
	ErrIndexOutOfRange = errors.New("task index out of range")

	// ErrTaskNotFound is returned when no task carries the requested ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrPersist wraps backend write failures. The in-memory change was
	// applied; only the durable copy is stale.
	ErrPersist = errors.New("failed to persist tasks")
)
