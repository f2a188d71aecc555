package autopilot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const StateFile = "autopilot.yaml"

// Store persists the flag as YAML so separate CLI invocations share it.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, StateFile)}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved status. A missing file means disengaged.
func (s *Store) Load() (Status, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Status{}, nil
		}
		return Status{}, err
	}

	var st Status
	if err := yaml.Unmarshal(data, &st); err != nil {
		return Status{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return st, nil
}

func (s *Store) Save(st Status) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Handle loads the flag, applies cmd and saves the result.
func (s *Store) Handle(cmd Command) (Status, error) {
	st, err := s.Load()
	if err != nil {
		return Status{}, err
	}
	sw := NewSwitch(st)
	next := sw.Apply(cmd)
	if err := s.Save(next); err != nil {
		return Status{}, err
	}
	return next, nil
}
