// Package jsonstore keeps tasks in a single human-readable JSON file.
// No locking; fine for a local single-user tool.
package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.json"

//go:embed tasks.schema.json
var schemaSource string

// Store reads and writes one JSON file.
type Store struct {
	path   string
	schema *jsonschema.Schema
}

// New returns a store backed by path. The file need not exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		path = DefaultFileName
	}
	schema, err := jsonschema.CompileString("tasks.schema.json", schemaSource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Store{path: path, schema: schema}, nil
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

// Load returns the stored tasks; a missing file is an empty list.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.Task{}, nil
	}
	if err := s.validate(b); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Save replaces the file with tasks, creating parent directories as needed.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error { return nil }

func (s *Store) validate(b []byte) error {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid tasks file: %s", firstCause(ve))
		}
		return fmt.Errorf("invalid tasks file: %w", err)
	}
	return nil
}

// firstCause digs down to the most specific schema failure.
func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
