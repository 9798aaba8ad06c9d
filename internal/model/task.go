package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateID reports two tasks sharing an id in one collection.
var ErrDuplicateID = errors.New("duplicate task id")

// Task is the domain model for a to-do entry.
// ID is assigned once at creation and never changes.
type Task struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// ShortID is the id prefix shown in listings.
func (t Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

// Validate checks collection-wide invariants: every id is present and unique.
func Validate(tasks []Task) error {
	seen := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("task %d: empty id", i+1)
		}
		if j, ok := seen[t.ID]; ok {
			return fmt.Errorf("tasks %d and %d: %w %q", j+1, i+1, ErrDuplicateID, t.ID)
		}
		seen[t.ID] = i
	}
	return nil
}

// Clone returns an independent copy of tasks. A nil input yields an empty slice.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// Stats counts done and pending tasks.
func Stats(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
