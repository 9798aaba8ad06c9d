// Package store picks a task repository implementation by name.
package store

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/store/jsonstore"
	"github.com/Makepad-fr/tasklist/internal/store/memstore"
	"github.com/Makepad-fr/tasklist/internal/store/sqlitestore"
	"github.com/Makepad-fr/tasklist/internal/store/yamlstore"
)

// Kind names a storage backend.
type Kind string

const (
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Kinds lists the supported backends.
func Kinds() []Kind { return []Kind{KindJSON, KindYAML, KindSQLite, KindMemory} }

// Backend is a repository that may hold resources until closed.
type Backend interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	Close() error
}

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return KindJSON, nil
	case "yml":
		return KindYAML, nil
	case "sqlite3", "db":
		return KindSQLite, nil
	case "mem":
		return KindMemory, nil
	}
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown store %q (want json, yaml, sqlite or memory)", s)
}

// DefaultFileName is the file a backend uses when no path is configured.
// The memory backend has none.
func DefaultFileName(k Kind) string {
	switch k {
	case KindYAML:
		return yamlstore.DefaultFileName
	case KindSQLite:
		return sqlitestore.DefaultFileName
	case KindMemory:
		return ""
	default:
		return jsonstore.DefaultFileName
	}
}

// Open returns the backend of kind k stored at path.
func Open(k Kind, path string) (Backend, error) {
	switch k {
	case KindJSON, "":
		s, err := jsonstore.New(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindYAML:
		return yamlstore.New(path), nil
	case KindSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown store %q", k)
}
