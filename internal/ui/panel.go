package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Frame wraps inner in the current theme's border.
func Frame(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel writes lines inside a frame.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, Frame(strings.Join(lines, "\n")))
}

// Header is the "Todos ✔ 1 • 2 Total 3" line.
func Header(done, pending int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

// FilterTabs renders the three filters with the active one highlighted.
func FilterTabs(active model.Filter) string {
	t := Current()
	tabs := make([]string, 0, len(model.Filters()))
	for _, f := range model.Filters() {
		if f == active {
			tabs = append(tabs, t.Selected.Render("["+f.Label()+"]"))
		} else {
			tabs = append(tabs, t.Muted.Render(" "+f.Label()+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// Checkbox is the themed box glyph for a task.
func Checkbox(task model.Task) string {
	t := Current()
	if task.Done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// Truncate shortens s to max runes with a trailing ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
