package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// resolveRef finds a task by exact id, 1-based index or unique id prefix,
// in that order. A number only counts as an index when it is in range;
// otherwise it is matched against ids like any other ref.
func resolveRef(tasks []model.Task, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, fmt.Errorf("empty task reference")
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	n, numErr := strconv.Atoi(ref)
	isNum := numErr == nil
	if isNum && n >= 1 && n <= len(tasks) {
		return tasks[n-1], nil
	}

	var matches []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		if isNum {
			return model.Task{}, fmt.Errorf("index out of range: have %d, got %d", len(tasks), n)
		}
		return model.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	}
	return model.Task{}, fmt.Errorf("%q is ambiguous: matches %d tasks", ref, len(matches))
}
