// Package tui is the interactive Bubble Tea view over a tasklist.Controller.
// Every key action goes straight to the controller, which saves on its own;
// there is nothing left to write back on quit.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/tasklist"
	"github.com/Makepad-fr/tasklist/internal/ui"
)

// taskItem adapts model.Task to list.Item.
type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

// itemDelegate renders one task per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	t := ui.Current()
	title := ui.Truncate(it.task.Title, max(m.Width()-6, 10))
	if it.task.Done {
		title = t.DoneText.Render(title)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, ui.Checkbox(it.task), title)
}

// chromeRows is the number of rows View adds around the list: frame,
// filter tabs and status line.
const chromeRows = 6

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// removal remembers the last deleted task for single-level undo.
type removal struct {
	task model.Task
	at   int
}

// changedMsg carries a controller notification into the update loop.
type changedMsg tasklist.Change

// Model is the Bubble Tea model.
type Model struct {
	ctl         *tasklist.Controller
	changes     chan tasklist.Change
	unsubscribe func()
	keys        keyMap

	list  list.Model
	input textinput.Model
	mode  mode

	editID   string
	undo     *removal
	inputErr string
	status   string
	failed   bool
}

// New builds a model bound to ctl and subscribes to its changes.
// Call Close when done so the subscription is dropped.
func New(ctl *tasklist.Controller) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.NextPage, l.KeyMap.PrevPage = paging()
	l.Styles.Title = lipgloss.NewStyle()
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "New task title..."
	in.CharLimit = 200

	changes := make(chan tasklist.Change, 16)
	unsub := ctl.Subscribe(func(ch tasklist.Change) {
		select {
		case changes <- ch:
		default:
			// the list is rebuilt from the controller anyway; dropping a
			// notification only loses a status line
		}
	})

	m := Model{
		ctl:         ctl,
		changes:     changes,
		unsubscribe: unsub,
		keys:        keys,
		list:        l,
		input:       in,
	}
	m.refresh()
	return m
}

// Close drops the controller subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctl *tasklist.Controller, opts ...tea.ProgramOption) error {
	m := New(ctl)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func waitForChange(ch <-chan tasklist.Change) tea.Cmd {
	return func() tea.Msg {
		return changedMsg(<-ch)
	}
}

// Init starts listening for controller changes.
func (m Model) Init() tea.Cmd { return waitForChange(m.changes) }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-chromeRows)
		return m, nil
	case changedMsg:
		m.describe(tasklist.Change(msg))
		m.refresh()
		return m, waitForChange(m.changes)
	}

	if m.mode != browsing {
		return m.updateInput(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.selected(); ok {
				m.report(m.ctl.Toggle(t.ID))
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.selected(); ok {
				at := position(m.ctl.Tasks(), t.ID)
				err := m.ctl.Remove(t.ID)
				m.undo = &removal{task: t, at: at}
				m.report(err)
			}
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			if m.undo == nil {
				m.status, m.failed = "nothing to undo", false
				return m, nil
			}
			r := *m.undo
			m.undo = nil
			err := m.ctl.Restore(r.task, r.at)
			var ve *tasklist.ValidationError
			if errors.As(err, &ve) {
				m.status, m.failed = "cannot undo: "+ve.Error(), true
				return m, nil
			}
			m.report(err)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			_, err := m.ctl.ClearDone()
			m.report(err)
			return m, nil
		case key.Matches(msg, m.keys.Add):
			m.mode = adding
			m.inputErr = ""
			m.input.SetValue("")
			m.input.Placeholder = "New task title..."
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Edit):
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.mode = editing
			m.editID = t.ID
			m.inputErr = ""
			m.input.SetValue(t.Title)
			m.input.CursorEnd()
			m.input.Placeholder = "Edit task title..."
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.NextFilter):
			m.setFilter(m.ctl.Filter().Next())
			return m, nil
		case key.Matches(msg, m.keys.All):
			m.setFilter(model.All)
			return m, nil
		case key.Matches(msg, m.keys.Done):
			m.setFilter(model.Done)
			return m, nil
		case key.Matches(msg, m.keys.NotDone):
			m.setFilter(model.NotDone)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Cancel):
			m.closeInput()
			return m, nil
		case key.Matches(k, m.keys.Submit):
			var err error
			if m.mode == adding {
				_, err = m.ctl.Add(m.input.Value())
			} else {
				err = m.ctl.Rename(m.editID, m.input.Value())
			}
			var ve *tasklist.ValidationError
			if errors.As(err, &ve) {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			m.closeInput()
			m.report(err)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.editID = ""
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) setFilter(f model.Filter) {
	m.ctl.SetFilter(f)
	m.refresh()
	m.list.Select(0)
}

// report refreshes the list after a mutation and surfaces a save failure.
func (m *Model) report(err error) {
	m.refresh()
	if err != nil {
		m.status = "save failed: " + err.Error()
		m.failed = true
	}
}

// refresh rebuilds the list from the controller's filtered view.
func (m *Model) refresh() {
	tasks := m.ctl.FilteredTasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	done, pending := m.ctl.Stats()
	m.list.Title = ui.Header(done, pending)
}

func (m *Model) describe(ch tasklist.Change) {
	if ch.Err != nil {
		m.status, m.failed = "save failed: "+ch.Err.Error(), true
		return
	}
	m.failed = false
	switch ch.Kind {
	case tasklist.Added:
		m.status = fmt.Sprintf("added %q", ch.Task.Title)
	case tasklist.Toggled:
		if ch.Task.ID == "" {
			m.status = ""
		} else if ch.Task.Done {
			m.status = fmt.Sprintf("done %q", ch.Task.Title)
		} else {
			m.status = fmt.Sprintf("reopened %q", ch.Task.Title)
		}
	case tasklist.Removed:
		m.status = fmt.Sprintf("removed %q", ch.Task.Title)
	case tasklist.Renamed:
		m.status = fmt.Sprintf("renamed to %q", ch.Task.Title)
	case tasklist.Cleared:
		m.status = "cleared done tasks"
	case tasklist.Filtered:
		m.status = "showing " + ch.Filter.Label()
	case tasklist.Restored:
		m.status = fmt.Sprintf("restored %q", ch.Task.Title)
	}
}

func position(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return len(tasks)
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(ui.FilterTabs(m.ctl.Filter()))
	b.WriteString("\n")
	b.WriteString(m.list.View())

	if m.mode != browsing {
		title := "Add new task"
		if m.mode == editing {
			title = "Edit task"
		}
		if m.inputErr != "" {
			title += "  " + t.Error.Render(m.inputErr)
		}
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderColor).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.input.View()))
	}

	if m.status != "" {
		style := t.Muted
		if m.failed {
			style = t.Error
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
	}
	return ui.Frame(b.String())
}
