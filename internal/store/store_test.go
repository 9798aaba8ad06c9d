package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// Every backend must give back exactly what it was handed.
func TestBackendsRoundTrip(t *testing.T) {
	want := []model.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Walk dog", Done: true},
		{ID: "3", Title: "Call \"mom\""},
	}
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			path := ""
			if name := DefaultFileName(k); name != "" {
				path = filepath.Join(t.TempDir(), name)
			}
			b, err := Open(k, path)
			require.NoError(t, err)
			defer b.Close()

			empty, err := b.Load()
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, b.Save(want))
			got, err := b.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"":        KindJSON,
		"json":    KindJSON,
		"YAML":    KindYAML,
		"yml":     KindYAML,
		"sqlite":  KindSQLite,
		"sqlite3": KindSQLite,
		"memory":  KindMemory,
		"mem":     KindMemory,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("postgres")
	assert.Error(t, err)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(Kind("redis"), "x")
	assert.Error(t, err)
}
