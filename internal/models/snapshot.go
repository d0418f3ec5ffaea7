package models

// SnapshotVersion is the current snapshot schema version
const SnapshotVersion = 2

// Snapshot is the complete persisted state of the tracker
type Snapshot struct {
	Version    int         `json:"version"`
	Habits     []Habit     `json:"habits"`
	Logs       []HabitLog  `json:"logs"`
	Categories []Category  `json:"categories"`
	FreezeDays []FreezeDay `json:"freeze_days"`
	Badges     []Badge     `json:"badges"`
}

// NewSnapshot returns an empty snapshot at the current schema version
func NewSnapshot() *Snapshot {
	s := &Snapshot{Version: SnapshotVersion}
	s.Normalize()
	return s
}

// Normalize fills nil collections and a missing version so older
// snapshots load cleanly. Only default-filling is done here; there is
// no migration logic at this schema version.
func (s *Snapshot) Normalize() {
	if s.Version <= 0 {
		s.Version = SnapshotVersion
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Logs == nil {
		s.Logs = []HabitLog{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.FreezeDays == nil {
		s.FreezeDays = []FreezeDay{}
	}
	if s.Badges == nil {
		s.Badges = []Badge{}
	}
}
