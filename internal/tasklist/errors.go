package tasklist

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is wrapped by the ValidationError returned for blank titles.
var ErrEmptyTitle = errors.New("title cannot be empty")

// ErrIDTaken is wrapped by the ValidationError returned when Restore is
// given a task whose id is already in the list.
var ErrIDTaken = errors.New("id already in list")

// ValidationError reports input the controller refuses to apply.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
