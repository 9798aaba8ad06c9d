// Package yamlstore keeps tasks in a YAML document, for people who like to
// edit their list by hand.
package yamlstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tasklist/internal/model"
)

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.yaml"

type document struct {
	Tasks []model.Task `yaml:"tasks"`
}

// Store reads and writes one YAML file.
type Store struct {
	path string
}

// New returns a store backed by path.
func New(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{path: path}
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

// Load returns the stored tasks; a missing or blank file is an empty list.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml decode %s: %w", s.path, err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	return doc.Tasks, nil
}

// Save replaces the file with tasks.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Tasks: tasks}); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
