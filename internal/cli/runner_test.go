package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasklist/internal/config"
	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/store/memstore"
	"github.com/Makepad-fr/tasklist/internal/tasklist"
)

type harness struct {
	repo   *memstore.Store
	stdout bytes.Buffer
	stderr bytes.Buffer
	cfg    config.Config
}

func newHarness(t *testing.T, tasks ...model.Task) *harness {
	t.Helper()
	h := &harness{repo: memstore.New(tasks...), cfg: config.Default()}
	require.NoError(t, h.cfg.Finalize())
	return h
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return Run(args, Options{
		Config:  &h.cfg,
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
		Backend: h.repo,
	})
}

func (h *harness) tasks(t *testing.T) []model.Task {
	t.Helper()
	got, err := h.repo.Load()
	require.NoError(t, err)
	return got
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "Subcommands:")

	assert.Equal(t, 2, Run(nil, Options{Stdout: &h.stdout, Stderr: &h.stderr}))
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("frobnicate"))
	assert.Contains(t, h.stderr.String(), "unknown subcommand: frobnicate")
	assert.Equal(t, 0, h.repo.Saves())
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 0, h.run("add", "Buy", "milk"))
	assert.Contains(t, h.stdout.String(), "added")

	got := h.tasks(t)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
	assert.False(t, got[0].Done)
	assert.NotEmpty(t, got[0].ID)
}

func TestAddUsageErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("add"))
	assert.Contains(t, h.stderr.String(), "usage: tasklist add")

	assert.Equal(t, 2, h.run("add", "   "))
	assert.Contains(t, h.stderr.String(), "add: empty title")
	assert.Equal(t, 0, h.repo.Saves())
}

func TestToggleByIndexAndPrefix(t *testing.T) {
	h := newHarness(t,
		model.Task{ID: "11111111-aaaa", Title: "Buy milk"},
		model.Task{ID: "22222222-bbbb", Title: "Walk dog"},
	)

	assert.Equal(t, 0, h.run("done", "2"))
	assert.Contains(t, h.stdout.String(), "done")
	assert.True(t, h.tasks(t)[1].Done)

	assert.Equal(t, 0, h.run("done", "2222"))
	assert.Contains(t, h.stdout.String(), "reopened")
	assert.False(t, h.tasks(t)[1].Done)
}

func TestToggleBadRef(t *testing.T) {
	h := newHarness(t, model.Task{ID: "a1", Title: "Buy milk"})

	assert.Equal(t, 2, h.run("done", "7"))
	assert.Contains(t, h.stderr.String(), "index out of range: have 1, got 7")
	assert.Contains(t, h.stderr.String(), "Hint")
	assert.Equal(t, 0, h.repo.Saves())

	assert.Equal(t, 2, h.run("done"))
}

func TestRemove(t *testing.T) {
	h := newHarness(t,
		model.Task{ID: "a1", Title: "Buy milk"},
		model.Task{ID: "b2", Title: "Walk dog"},
	)
	assert.Equal(t, 0, h.run("rm", "1"))
	assert.Equal(t, []model.Task{{ID: "b2", Title: "Walk dog"}}, h.tasks(t))

	assert.Equal(t, 2, h.run("rm", "a1"), "already gone")
}

func TestEdit(t *testing.T) {
	h := newHarness(t, model.Task{ID: "a1", Title: "Buy milk"})

	assert.Equal(t, 0, h.run("edit", "1", "Buy", "oat", "milk"))
	assert.Equal(t, "Buy oat milk", h.tasks(t)[0].Title)

	assert.Equal(t, 2, h.run("edit", "1"))
	assert.Equal(t, 2, h.run("edit", "1", " "))
	assert.Equal(t, "Buy oat milk", h.tasks(t)[0].Title)
}

func TestClear(t *testing.T) {
	h := newHarness(t,
		model.Task{ID: "a1", Title: "Buy milk", Done: true},
		model.Task{ID: "b2", Title: "Walk dog"},
	)
	assert.Equal(t, 0, h.run("clear"))
	assert.Contains(t, h.stdout.String(), "cleared 1")
	assert.Len(t, h.tasks(t), 1)
}

func TestList(t *testing.T) {
	h := newHarness(t,
		model.Task{ID: "a1", Title: "Buy milk", Done: true},
		model.Task{ID: "b2", Title: "Walk dog"},
	)

	assert.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "[All]")
	assert.Equal(t, 0, h.repo.Saves(), "listing never saves")

	assert.Equal(t, 0, h.run("ls", "not-done"))
	out = h.stdout.String()
	assert.NotContains(t, out, "Buy milk")
	assert.Contains(t, out, " 2.", "indexes refer to the full list")
	assert.Contains(t, out, "[Not Done]")

	assert.Equal(t, 2, h.run("ls", "someday"))
}

func TestListEmptyAndGrouped(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.stdout.String(), "no tasks")

	h = newHarness(t,
		model.Task{ID: "a1", Title: "Buy milk", Done: true},
		model.Task{ID: "b2", Title: "Walk dog"},
	)
	h.cfg.UI.Group = true
	assert.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")
}

func TestInteractiveGetsController(t *testing.T) {
	h := newHarness(t, model.Task{ID: "a1", Title: "Buy milk"})

	var seen []model.Task
	code := Run([]string{"ui"}, Options{
		Config:  &h.cfg,
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
		Backend: h.repo,
		Interactive: func(c *tasklist.Controller) error {
			seen = c.Tasks()
			return nil
		},
	})
	assert.Equal(t, 0, code)
	assert.Equal(t, h.tasks(t), seen)

	code = Run([]string{"ui"}, Options{
		Config:      &h.cfg,
		Stdout:      &h.stdout,
		Stderr:      &h.stderr,
		Backend:     h.repo,
		Interactive: func(*tasklist.Controller) error { return errors.New("no tty") },
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, h.stderr.String(), "tui: no tty")
}

// End to end through the configured JSON file rather than an injected backend.
func TestJSONFileAcrossInvocations(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, cfg.Finalize())

	var out, errw bytes.Buffer
	run := func(args ...string) int {
		return Run(args, Options{Config: &cfg, Stdout: &out, Stderr: &errw})
	}

	require.Equal(t, 0, run("add", "Buy milk"))
	require.Equal(t, 0, run("add", "Walk dog"))
	require.Equal(t, 0, run("done", "1"))
	require.Equal(t, 0, run("rm", "2"))

	out.Reset()
	require.Equal(t, 0, run("ls", "done"))
	assert.Contains(t, out.String(), "Buy milk")
	assert.NotContains(t, out.String(), "Walk dog")
}

func TestLoadFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = t.TempDir() // a directory, not a file
	require.NoError(t, cfg.Finalize())

	var out, errw bytes.Buffer
	code := Run([]string{"ls"}, Options{Config: &cfg, Stdout: &out, Stderr: &errw})
	assert.Equal(t, 1, code)
	assert.Contains(t, errw.String(), "load:")
}
