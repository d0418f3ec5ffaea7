package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitkit/internal/models"
)

// JSONStore persists the snapshot as one indented JSON document at a
// fixed path, readable and editable by hand.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Refuse to clobber an existing data file
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.Save(models.NewSnapshot())
}

func (s *JSONStore) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("storage not initialized, run 'habitkit init' first")
	case err != nil:
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}

	// Hand-edited files may drop collections or the version field
	snapshot.Normalize()

	return &snapshot, nil
}

func (s *JSONStore) Save(snapshot *models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
