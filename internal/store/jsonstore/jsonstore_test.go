package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasklist/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "tasks.json"))
	require.NoError(t, err)
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	tasks, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	want := []model.Task{
		{ID: "a", Title: "Buy milk"},
		{ID: "b", Title: "Walk dog", Done: true},
	}

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveEmptyWritesArray(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(nil))

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveWritesReadableJSON(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save([]model.Task{{ID: "a", Title: "Buy milk"}}))

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"title": "Buy milk"`)
	assert.Contains(t, string(b), `"done": false`)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not an array", `{"id":"a"}`},
		{"missing title", `[{"id":"a","done":false}]`},
		{"empty id", `[{"id":"","title":"x","done":false}]`},
		{"done is a string", `[{"id":"a","title":"x","done":"yes"}]`},
		{"unknown field", `[{"id":"a","title":"x","done":false,"priority":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.body), 0o644))

			_, err := s.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid tasks file")
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"id":`), 0o644))

	_, err := s.Load()
	assert.Error(t, err)
}

func TestLoadBlankFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultPath(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, s.Path())
}
