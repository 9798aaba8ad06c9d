// Package memstore is a throwaway in-memory repository.
package memstore

import "github.com/Makepad-fr/tasklist/internal/model"

// Store holds a private copy of the last saved collection.
type Store struct {
	tasks []model.Task
	saves int
}

// New seeds the store with tasks.
func New(tasks ...model.Task) *Store {
	return &Store{tasks: model.Clone(tasks)}
}

func (s *Store) Load() ([]model.Task, error) { return model.Clone(s.tasks), nil }

func (s *Store) Save(tasks []model.Task) error {
	s.tasks = model.Clone(tasks)
	s.saves++
	return nil
}

// Saves counts Save calls since creation.
func (s *Store) Saves() int { return s.saves }

func (s *Store) Close() error { return nil }
