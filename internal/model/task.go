package model

import "github.com/google/uuid"

// Task is the domain model for a todo entry.
// ID is assigned per session and never written to storage; a task's
// persisted identity is only its title and description.
type Task struct {
	ID          string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// New returns a task with a freshly generated ID. Values are taken as-is.
func New(title, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
}

// Equal reports whether two tasks carry the same persisted content.
func (t Task) Equal(o Task) bool {
	return t.Title == o.Title && t.Description == o.Description
}
