package model

import (
	"fmt"
	"strings"
)

// Filter selects which tasks the list displays.
type Filter int

const (
	All Filter = iota
	Done
	NotDone
)

var (
	filterTokens = [...]string{"all", "done", "not-done"}
	filterLabels = [...]string{"All", "Done", "Not Done"}
)

// Filters lists every filter in display order.
func Filters() []Filter { return []Filter{All, Done, NotDone} }

// Valid reports whether f is one of the defined filters.
func (f Filter) Valid() bool { return f >= All && f <= NotDone }

func (f Filter) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterTokens[f]
}

// Label is the human-facing name used by tabs and headers.
func (f Filter) Label() string {
	if !f.Valid() {
		return f.String()
	}
	return filterLabels[f]
}

// Next cycles All -> Done -> NotDone -> All.
func (f Filter) Next() Filter {
	if !f.Valid() {
		return All
	}
	return (f + 1) % Filter(len(filterTokens))
}

// Match is the filter predicate.
func (f Filter) Match(t Task) bool {
	switch f {
	case Done:
		return t.Done
	case NotDone:
		return !t.Done
	default:
		return true
	}
}

// ParseFilter accepts the canonical tokens plus a few aliases, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return All, nil
	case "done", "completed":
		return Done, nil
	case "not-done", "notdone", "not_done", "pending", "todo", "open":
		return NotDone, nil
	}
	return All, fmt.Errorf("unknown filter %q (want all, done or not-done)", s)
}

// Apply returns the tasks matching f, in their original order.
// The result never shares a backing array with tasks.
func Apply(f Filter, tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
