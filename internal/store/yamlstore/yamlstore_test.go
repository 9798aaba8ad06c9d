package yamlstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasklist/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "tasks.yaml"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "sub", "tasks.yaml"))
	want := []model.Task{
		{ID: "a", Title: "Buy milk"},
		{ID: "b", Title: "Walk dog: twice", Done: true},
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	body := "tasks:\n  - id: one\n    title: Buy milk\n    done: true\n  - id: two\n    title: Walk dog\n    done: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{
		{ID: "one", Title: "Buy milk", Done: true},
		{ID: "two", Title: "Walk dog"},
	}, got)
}

func TestLoadEmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err := New(empty).Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tasks:\n  - id: a\n    colour: red\n"), 0o644))
	_, err = New(bad).Load()
	assert.Error(t, err)
}
