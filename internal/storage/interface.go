package storage

import "github.com/julianstephens/habitkit/internal/models"

// Provider persists the tracker snapshot. Load returns the stored
// snapshot, or (nil, nil) when the backend is initialized but holds no
// data yet. Save replaces the stored snapshot as a whole; there are no
// partial writes.
type Provider interface {
	Init() error
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
	Close() error

	// GetConfigPath reports where the backend keeps its data, for
	// backups and diagnostics.
	GetConfigPath() string
}
