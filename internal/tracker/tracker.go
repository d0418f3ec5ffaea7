// Package tracker is the analytics and state engine behind habitkit.
// It owns one in-memory snapshot of every habit, log, category, freeze
// day and badge, persists the snapshot as a whole after each mutation,
// and derives streaks, statistics and badge awards from the raw log
// history.
//
// The engine is single-threaded by contract: callers must not
// interleave operations against the same Store. A persist failure is
// propagated to the caller, but the in-memory snapshot may already
// reflect the attempted change; there is no rollback.
package tracker

import (
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
)

type Store struct {
	provider storage.Provider
	snapshot *models.Snapshot
	now      func() time.Time
}

type Option func(*Store)

// WithClock overrides the wall clock used to stamp timestamps and to
// anchor "today" for streak and statistics windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New loads the persisted snapshot into a fresh engine instance. A
// provider reporting no stored snapshot yields an empty one.
func New(provider storage.Provider, opts ...Option) (*Store, error) {
	s := &Store{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	snapshot, err := provider.Load()
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = models.NewSnapshot()
	}
	snapshot.Normalize()
	s.snapshot = snapshot

	return s, nil
}

// Snapshot exposes the live snapshot for read-only inspection. Callers
// must not mutate it; all writes go through engine operations.
func (s *Store) Snapshot() *models.Snapshot {
	return s.snapshot
}

func (s *Store) save() error {
	return s.provider.Save(s.snapshot)
}

// Today returns the current local calendar date (YYYY-MM-DD).
func (s *Store) Today() string {
	return utils.FormatDay(s.now())
}
