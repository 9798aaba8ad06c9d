package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle, Delete, Undo, Add, Edit, Clear key.Binding
	NextFilter, All, Done, NotDone   key.Binding
	Quit, Submit, Cancel             key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		All:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Done:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "done")),
		NotDone:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "not done")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:     key.NewBinding(key.WithKeys("enter")),
		Cancel:     key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Undo, k.NextFilter}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Undo, k.Clear, k.NextFilter, k.All, k.Done, k.NotDone}
}

// paging replaces the list's default page keys, which include d and u.
func paging() (next, prev key.Binding) {
	next = key.NewBinding(key.WithKeys("right", "l", "pgdown", "f"), key.WithHelp("→/l/pgdn", "next page"))
	prev = key.NewBinding(key.WithKeys("left", "h", "pgup", "b"), key.WithHelp("←/h/pgup", "prev page"))
	return next, prev
}
