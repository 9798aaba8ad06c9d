package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasklist/internal/config"
	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/store"
	"github.com/Makepad-fr/tasklist/internal/tasklist"
	"github.com/Makepad-fr/tasklist/internal/tui"
	"github.com/Makepad-fr/tasklist/internal/ui"
)

// Options carries what the subcommands need from the root command.
type Options struct {
	Config *config.Config
	Logger *log.Logger

	Stdout, Stderr io.Writer

	// Backend overrides the configured store. Run does not close it.
	Backend store.Backend
	// Interactive runs the TUI; defaults to tui.Run.
	Interactive func(*tasklist.Controller) error
}

func (o *Options) defaults() {
	if o.Config == nil {
		cfg := config.Default()
		_ = cfg.Finalize()
		o.Config = &cfg
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = func(c *tasklist.Controller) error { return tui.Run(c) }
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	r := &runner{opt: opt, out: opt.Stdout, errw: opt.Stderr}

	if len(args) == 0 {
		PrintHelp(r.out)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0
	case "ls", "list", "add", "done", "toggle", "rm", "remove", "edit", "clear", "ui", "tui":
	default:
		r.fail("unknown subcommand: " + cmd)
		fmt.Fprintln(r.errw)
		PrintHelp(r.errw)
		return 2
	}

	// usage errors are reported before touching the store
	switch {
	case cmd == "add" && len(a) == 0:
		return r.usage("usage: tasklist add <title...>")
	case (cmd == "done" || cmd == "toggle") && len(a) != 1:
		return r.usage("usage: tasklist done <index|id>")
	case (cmd == "rm" || cmd == "remove") && len(a) != 1:
		return r.usage("usage: tasklist rm <index|id>")
	case cmd == "edit" && len(a) < 2:
		return r.usage("usage: tasklist edit <index|id> <title...>")
	case (cmd == "ls" || cmd == "list") && len(a) > 1:
		return r.usage("usage: tasklist ls [all|done|not-done]")
	}

	ctl, closeFn, err := r.open()
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	defer closeFn()

	switch cmd {
	case "ls", "list":
		return r.doList(ctl, a)
	case "add":
		return r.doAdd(ctl, strings.Join(a, " "))
	case "done", "toggle":
		return r.doToggle(ctl, a[0])
	case "rm", "remove":
		return r.doRemove(ctl, a[0])
	case "edit":
		return r.doEdit(ctl, a[0], strings.Join(a[1:], " "))
	case "clear":
		return r.doClear(ctl)
	default: // ui, tui
		if err := r.opt.Interactive(ctl); err != nil {
			r.fail("tui: " + err.Error())
			return 1
		}
		return 0
	}
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tasklist - a tiny to-do list

Usage:
  tasklist [flags] <subcommand> [args]

Subcommands:
  add <title...>          Add a new task (title can be multiple words)
  ls [all|done|not-done]  List tasks, optionally filtered
  done <ref>              Toggle done for a task
  rm <ref>                Remove a task
  edit <ref> <title...>   Change a task's title
  clear                   Remove every done task
  ui                      Interactive list

A <ref> is a 1-based index from "tasklist ls", a task id, or a unique id prefix.

Flags:
  -store json|yaml|sqlite|memory   -path FILE   -filter all|done|not-done
  -theme classic|neon|mono   -group   -persist always|on-change
  -log-level LEVEL   -log-format text|json|logfmt

Examples:
  tasklist add "Buy milk"
  tasklist ls not-done
  tasklist done 2
  tasklist rm 3
`)
}

type runner struct {
	opt  Options
	out  io.Writer
	errw io.Writer
}

func (r *runner) fail(msg string) { ui.Fail(r.errw, msg) }

func (r *runner) usage(msg string) int {
	r.fail(msg)
	return 2
}

// open builds a controller over the configured (or injected) backend.
func (r *runner) open() (*tasklist.Controller, func(), error) {
	cfg := r.opt.Config
	backend := r.opt.Backend
	closeFn := func() {}
	if backend == nil {
		b, err := store.Open(cfg.StoreKind(), cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		backend = b
		closeFn = func() {
			if err := b.Close(); err != nil {
				r.opt.Logger.Warn("close store", "err", err)
			}
		}
	}
	r.opt.Logger.Debug("store opened", "kind", cfg.Store.Kind, "path", cfg.Store.Path)

	ctl, err := tasklist.New(backend,
		tasklist.WithLogger(r.opt.Logger),
		tasklist.WithPersistPolicy(cfg.PersistPolicy()),
		tasklist.WithFilter(cfg.Filter()),
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return ctl, closeFn, nil
}

// -------------- subcommand impls ----------------

func (r *runner) doList(ctl *tasklist.Controller, a []string) int {
	if len(a) == 1 {
		f, err := model.ParseFilter(a[0])
		if err != nil {
			return r.usage("ls: " + err.Error())
		}
		ctl.SetFilter(f)
	}

	t := ui.Current()
	d, p := ctl.Stats()
	var lines []string
	lines = append(lines, ui.Header(d, p))
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, ui.FilterTabs(ctl.Filter()))
	lines = append(lines, "")

	positions := positionsByID(ctl.Tasks())
	if r.opt.Config.UI.Group && ctl.Filter() == model.All {
		lines = append(lines, groupLines(ctl.FilteredTasks(), positions)...)
	} else {
		lines = append(lines, flatLines(ctl.FilteredTasks(), positions)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `tasklist add <title>`"))
	ui.Panel(r.out, lines)
	return 0
}

func (r *runner) doAdd(ctl *tasklist.Controller, title string) int {
	task, err := ctl.Add(title)
	if err != nil {
		return r.mutationFailed("add", err)
	}
	ui.OK(r.out, fmt.Sprintf("added %s", task.ShortID()))
	return 0
}

func (r *runner) doToggle(ctl *tasklist.Controller, ref string) int {
	task, code := r.resolve(ctl, ref)
	if code != 0 {
		return code
	}
	if err := ctl.Toggle(task.ID); err != nil {
		return r.mutationFailed("done", err)
	}
	if task.Done {
		ui.OK(r.out, "reopened")
	} else {
		ui.OK(r.out, "done")
	}
	return 0
}

func (r *runner) doRemove(ctl *tasklist.Controller, ref string) int {
	task, code := r.resolve(ctl, ref)
	if code != 0 {
		return code
	}
	if err := ctl.Remove(task.ID); err != nil {
		return r.mutationFailed("rm", err)
	}
	ui.OK(r.out, "removed")
	return 0
}

func (r *runner) doEdit(ctl *tasklist.Controller, ref, title string) int {
	task, code := r.resolve(ctl, ref)
	if code != 0 {
		return code
	}
	if err := ctl.Rename(task.ID, title); err != nil {
		return r.mutationFailed("edit", err)
	}
	ui.OK(r.out, "renamed")
	return 0
}

func (r *runner) doClear(ctl *tasklist.Controller) int {
	n, err := ctl.ClearDone()
	if err != nil {
		return r.mutationFailed("clear", err)
	}
	ui.OK(r.out, fmt.Sprintf("cleared %d", n))
	return 0
}

// mutationFailed maps validation errors to usage (2) and the rest to 1.
func (r *runner) mutationFailed(op string, err error) int {
	if errors.Is(err, tasklist.ErrEmptyTitle) {
		return r.usage(op + ": empty title")
	}
	r.fail(op + ": " + err.Error())
	return 1
}

func (r *runner) resolve(ctl *tasklist.Controller, ref string) (model.Task, int) {
	task, err := resolveRef(ctl.Tasks(), ref)
	if err != nil {
		r.fail(err.Error())
		ui.Hint(r.errw, "Hint: run `tasklist ls` to see valid indexes")
		return model.Task{}, 2
	}
	return task, 0
}

// -------------- rendering helpers --------------

func positionsByID(tasks []model.Task) map[string]int {
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i + 1
	}
	return pos
}

func flatLines(tasks []model.Task, positions map[string]int) []string {
	t := ui.Current()
	if len(tasks) == 0 {
		return []string{t.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", positions[task.ID]))
		title := ui.Truncate(task.Title, 80)
		if task.Done {
			title = t.DoneText.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			idx, ui.Checkbox(task), title, t.Muted.Render(task.ShortID())))
	}
	return out
}

func groupLines(tasks []model.Task, positions map[string]int) []string {
	t := ui.Current()
	pend := model.Apply(model.NotDone, tasks)
	done := model.Apply(model.Done, tasks)

	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, positions)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, positions)...)
	}
	return lines
}
