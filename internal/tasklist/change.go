package tasklist

import "github.com/Makepad-fr/tasklist/internal/model"

// ChangeKind names what happened to the list.
type ChangeKind int

const (
	Added ChangeKind = iota
	Toggled
	Removed
	Renamed
	Cleared
	Filtered
	Restored
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Toggled:
		return "toggled"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	case Cleared:
		return "cleared"
	case Filtered:
		return "filtered"
	case Restored:
		return "restored"
	}
	return "unknown"
}

// Change is delivered to observers after every mutation or filter change.
// Task is the affected task when there is one; Err is the persistence
// error, if saving failed.
type Change struct {
	Kind   ChangeKind
	Task   model.Task
	Filter model.Filter
	Err    error
}

// Observer receives change notifications synchronously.
type Observer func(Change)

type subscription struct {
	id int
	fn Observer
}

// Subscribe registers fn and returns a function that removes it.
// Observers run in subscription order. Calling unsubscribe twice is harmless.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify(ch Change) {
	ch.Filter = c.filter
	// observers may unsubscribe while being notified
	subs := append([]subscription(nil), c.subs...)
	for _, s := range subs {
		s.fn(ch)
	}
}
