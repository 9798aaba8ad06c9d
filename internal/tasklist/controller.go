// Package tasklist holds the controller that owns the task collection.
//
// The controller keeps the authoritative list in memory, applies mutations,
// re-derives the filtered view after each one, and writes the full list back
// through a Repository. It is not safe for concurrent use; callers drive it
// from a single goroutine (the Bubble Tea update loop or a CLI command).
package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// Repository is the persistence collaborator. Save always receives the whole
// collection; Load returns it in insertion order.
type Repository interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}

// PersistPolicy decides whether no-op mutations still write to the repository.
type PersistPolicy int

const (
	// PersistAlways saves after every mutating call, even when nothing changed.
	PersistAlways PersistPolicy = iota
	// PersistOnChange saves only when the collection actually changed.
	PersistOnChange
)

// ParsePersistPolicy maps "always" and "on-change" to a policy.
func ParsePersistPolicy(s string) (PersistPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "always":
		return PersistAlways, nil
	case "on-change", "onchange", "changed":
		return PersistOnChange, nil
	}
	return PersistAlways, fmt.Errorf("unknown persist policy %q (want always or on-change)", s)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for mutation traces and save failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithPersistPolicy selects when mutations write to the repository.
func WithPersistPolicy(p PersistPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithFilter sets the filter applied right after loading.
func WithFilter(f model.Filter) Option {
	return func(c *Controller) {
		if f.Valid() {
			c.filter = f
		}
	}
}

// Controller mediates between a view and a Repository.
type Controller struct {
	repo   Repository
	log    *log.Logger
	newID  func() string
	policy PersistPolicy

	tasks    []model.Task
	filtered []model.Task
	filter   model.Filter

	subs    []subscription
	nextSub int
}

// New loads the collection from repo and applies the initial filter (All
// unless WithFilter says otherwise). An empty repository is a valid start.
func New(repo Repository, opts ...Option) (*Controller, error) {
	c := &Controller{
		repo:   repo,
		log:    log.New(io.Discard),
		newID:  uuid.NewString,
		policy: PersistAlways,
		filter: model.All,
	}
	for _, opt := range opts {
		opt(c)
	}

	tasks, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if err := model.Validate(tasks); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	c.tasks = model.Clone(tasks)
	c.refilter()
	c.log.Debug("tasks loaded", "count", len(c.tasks), "filter", c.filter)
	return c, nil
}

// Tasks returns a copy of the authoritative collection.
func (c *Controller) Tasks() []model.Task { return model.Clone(c.tasks) }

// FilteredTasks returns a copy of the current filtered view.
func (c *Controller) FilteredTasks() []model.Task { return model.Clone(c.filtered) }

// Filter returns the current filter.
func (c *Controller) Filter() model.Filter { return c.filter }

// Stats counts done and pending tasks in the authoritative collection.
func (c *Controller) Stats() (done, pending int) { return model.Stats(c.tasks) }

// Find looks a task up by id.
func (c *Controller) Find(id string) (model.Task, bool) {
	if i := c.index(id); i >= 0 {
		return c.tasks[i], true
	}
	return model.Task{}, false
}

// Add appends a new pending task. Blank titles are rejected with a
// *ValidationError and nothing is saved.
func (c *Controller) Add(title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	t := model.Task{ID: c.newID(), Title: title}
	c.tasks = append(c.tasks, t)
	c.log.Debug("task added", "id", t.ID, "title", t.Title)
	return t, c.commit(Change{Kind: Added, Task: t}, true)
}

// Toggle flips the completion flag of the task with id. An unknown id
// leaves the list untouched.
func (c *Controller) Toggle(id string) error {
	i := c.index(id)
	if i < 0 {
		c.log.Debug("toggle: no such task", "id", id)
		return c.commit(Change{Kind: Toggled}, false)
	}
	c.tasks[i].Done = !c.tasks[i].Done
	c.log.Debug("task toggled", "id", id, "done", c.tasks[i].Done)
	return c.commit(Change{Kind: Toggled, Task: c.tasks[i]}, true)
}

// Remove deletes the task with id if present.
func (c *Controller) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		c.log.Debug("remove: no such task", "id", id)
		return c.commit(Change{Kind: Removed}, false)
	}
	t := c.tasks[i]
	c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
	c.log.Debug("task removed", "id", id)
	return c.commit(Change{Kind: Removed, Task: t}, true)
}

// Rename replaces the title of the task with id. Titles follow the same
// rule as Add.
func (c *Controller) Rename(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	i := c.index(id)
	if i < 0 || c.tasks[i].Title == title {
		return c.commit(Change{Kind: Renamed}, false)
	}
	c.tasks[i].Title = title
	c.log.Debug("task renamed", "id", id, "title", title)
	return c.commit(Change{Kind: Renamed, Task: c.tasks[i]}, true)
}

// Restore puts a previously removed task back at position at (0-based,
// clamped to the list bounds), keeping its id and state. It backs undo.
func (c *Controller) Restore(t model.Task, at int) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	if t.ID == "" || c.index(t.ID) >= 0 {
		return &ValidationError{Field: "id", Err: ErrIDTaken}
	}
	at = min(max(at, 0), len(c.tasks))
	c.tasks = append(c.tasks[:at:at], append([]model.Task{t}, c.tasks[at:]...)...)
	c.log.Debug("task restored", "id", t.ID, "at", at)
	return c.commit(Change{Kind: Restored, Task: t}, true)
}

// ClearDone removes every completed task and reports how many went.
func (c *Controller) ClearDone() (int, error) {
	kept := c.tasks[:0:0]
	for _, t := range c.tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	n := len(c.tasks) - len(kept)
	c.tasks = kept
	c.log.Debug("done tasks cleared", "count", n)
	return n, c.commit(Change{Kind: Cleared}, n > 0)
}

// SetFilter changes the filter and rebuilds the view. It never saves.
// Values outside the three defined filters are ignored.
func (c *Controller) SetFilter(f model.Filter) {
	if !f.Valid() {
		c.log.Warn("ignoring unknown filter", "filter", int(f))
		return
	}
	c.filter = f
	c.refilter()
	c.notify(Change{Kind: Filtered})
}

// commit runs the shared tail of every mutation: refilter, persist, notify.
func (c *Controller) commit(ch Change, changed bool) error {
	c.refilter()
	if changed || c.policy == PersistAlways {
		if err := c.repo.Save(model.Clone(c.tasks)); err != nil {
			c.log.Error("save failed", "op", ch.Kind, "err", err)
			ch.Err = fmt.Errorf("save tasks: %w", err)
		}
	}
	c.notify(ch)
	return ch.Err
}

func (c *Controller) refilter() {
	c.filtered = model.Apply(c.filter, c.tasks)
}

func (c *Controller) index(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
