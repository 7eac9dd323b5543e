package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignsDistinctIDs(t *testing.T) {
	a := New("Buy milk", "")
	b := New("Buy milk", "")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Equal(b))
}

func TestNewKeepsValuesUntrimmed(t *testing.T) {
	task := New("  Milk  ", " 2% ")
	assert.Equal(t, "  Milk  ", task.Title)
	assert.Equal(t, " 2% ", task.Description)
}

func TestEqualIgnoresID(t *testing.T) {
	a := Task{ID: "1", Title: "Call Alice", Description: "re: project"}
	b := Task{ID: "2", Title: "Call Alice", Description: "re: project"}
	c := Task{ID: "1", Title: "Call Alice", Description: ""}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
