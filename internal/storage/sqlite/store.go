package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkit/internal/models"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			emoji TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL,
			custom_days TEXT,
			category_id TEXT,
			goal_days INTEGER,
			sort_order INTEGER NOT NULL DEFAULT 0,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS logs (
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT '',
			completed_at TEXT,
			PRIMARY KEY (habit_id, day)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			emoji TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS freeze_days (
			day TEXT PRIMARY KEY,
			reason TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS badges (
			habit_id TEXT NOT NULL,
			type TEXT NOT NULL,
			earned_at TEXT NOT NULL,
			PRIMARY KEY (habit_id, type)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Load() (*models.Snapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("storage not initialized, run 'habitkit init' first")
	}

	if err := s.open(); err != nil {
		return nil, err
	}

	snapshot := models.NewSnapshot()

	version, err := s.loadVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot version: %w", err)
	}
	if version > 0 {
		snapshot.Version = version
	}

	if snapshot.Habits, err = s.loadHabits(); err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if snapshot.Logs, err = s.loadLogs(); err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	if snapshot.Categories, err = s.loadCategories(); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if snapshot.FreezeDays, err = s.loadFreezeDays(); err != nil {
		return nil, fmt.Errorf("failed to load freeze days: %w", err)
	}
	if snapshot.Badges, err = s.loadBadges(); err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	return snapshot, nil
}

func (s *Store) loadVersion() (int, error) {
	var value string
	row := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'snapshot_version'`)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *Store) loadHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT id, name, description, emoji, frequency, custom_days, category_id, goal_days, sort_order, archived, created_at FROM habits ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var (
			habit      models.Habit
			customDays sql.NullString
			categoryID sql.NullString
			goalDays   sql.NullInt64
			archived   int
			createdAt  string
		)
		if err := rows.Scan(&habit.ID, &habit.Name, &habit.Description, &habit.Emoji, &habit.Frequency, &customDays, &categoryID, &goalDays, &habit.Order, &archived, &createdAt); err != nil {
			return nil, err
		}

		if customDays.Valid && customDays.String != "" {
			if err := json.Unmarshal([]byte(customDays.String), &habit.CustomDays); err != nil {
				return nil, fmt.Errorf("invalid custom_days for habit %s: %w", habit.ID, err)
			}
		}
		if categoryID.Valid {
			habit.CategoryID = &categoryID.String
		}
		if goalDays.Valid {
			goal := int(goalDays.Int64)
			habit.GoalDays = &goal
		}
		habit.Archived = archived != 0
		if habit.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at for habit %s: %w", habit.ID, err)
		}

		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *Store) loadLogs() ([]models.HabitLog, error) {
	rows, err := s.db.Query(`SELECT habit_id, day, completed, note, completed_at FROM logs ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		var (
			log         models.HabitLog
			completed   int
			completedAt sql.NullString
		)
		if err := rows.Scan(&log.HabitID, &log.Day, &completed, &log.Note, &completedAt); err != nil {
			return nil, err
		}

		log.Completed = completed != 0
		if completedAt.Valid {
			stamp, err := parseTimestamp(completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("invalid completed_at for log %s/%s: %w", log.HabitID, log.Day, err)
			}
			log.CompletedAt = &stamp
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *Store) loadCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, color, emoji, sort_order, created_at FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			category  models.Category
			createdAt string
		)
		if err := rows.Scan(&category.ID, &category.Name, &category.Color, &category.Emoji, &category.Order, &createdAt); err != nil {
			return nil, err
		}
		if category.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at for category %s: %w", category.ID, err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (s *Store) loadFreezeDays() ([]models.FreezeDay, error) {
	rows, err := s.db.Query(`SELECT day, reason, created_at FROM freeze_days ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	freezeDays := []models.FreezeDay{}
	for rows.Next() {
		var (
			freeze    models.FreezeDay
			createdAt string
		)
		if err := rows.Scan(&freeze.Day, &freeze.Reason, &createdAt); err != nil {
			return nil, err
		}
		if freeze.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at for freeze day %s: %w", freeze.Day, err)
		}
		freezeDays = append(freezeDays, freeze)
	}

	return freezeDays, rows.Err()
}

func (s *Store) loadBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(`SELECT habit_id, type, earned_at FROM badges ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := []models.Badge{}
	for rows.Next() {
		var (
			badge    models.Badge
			earnedAt string
		)
		if err := rows.Scan(&badge.HabitID, &badge.Type, &earnedAt); err != nil {
			return nil, err
		}
		if badge.EarnedAt, err = parseTimestamp(earnedAt); err != nil {
			return nil, fmt.Errorf("invalid earned_at for badge %s/%s: %w", badge.HabitID, badge.Type, err)
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// Save replaces the stored snapshot as a whole inside one transaction.
// Rewriting every row keeps the persistence contract identical to the
// JSON backend at the cost of write amplification, which is acceptable
// at personal-tracker data sizes.
func (s *Store) Save(snapshot *models.Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "logs", "categories", "freeze_days", "badges"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, habit := range snapshot.Habits {
		var customDays interface{}
		if len(habit.CustomDays) > 0 {
			encoded, err := json.Marshal(habit.CustomDays)
			if err != nil {
				return fmt.Errorf("failed to encode custom_days for habit %s: %w", habit.ID, err)
			}
			customDays = string(encoded)
		}

		var categoryID interface{}
		if habit.CategoryID != nil {
			categoryID = *habit.CategoryID
		}
		var goalDays interface{}
		if habit.GoalDays != nil {
			goalDays = *habit.GoalDays
		}

		_, err := tx.Exec(
			`INSERT INTO habits (id, name, description, emoji, frequency, custom_days, category_id, goal_days, sort_order, archived, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			habit.ID, habit.Name, habit.Description, habit.Emoji, string(habit.Frequency),
			customDays, categoryID, goalDays, habit.Order, boolToInt(habit.Archived),
			formatTimestamp(habit.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", habit.ID, err)
		}
	}

	for _, log := range snapshot.Logs {
		var completedAt interface{}
		if log.CompletedAt != nil {
			completedAt = formatTimestamp(*log.CompletedAt)
		}

		_, err := tx.Exec(
			`INSERT INTO logs (habit_id, day, completed, note, completed_at) VALUES (?, ?, ?, ?, ?)`,
			log.HabitID, log.Day, boolToInt(log.Completed), log.Note, completedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert log %s/%s: %w", log.HabitID, log.Day, err)
		}
	}

	for _, category := range snapshot.Categories {
		_, err := tx.Exec(
			`INSERT INTO categories (id, name, color, emoji, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			category.ID, category.Name, category.Color, category.Emoji, category.Order,
			formatTimestamp(category.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", category.ID, err)
		}
	}

	for _, freeze := range snapshot.FreezeDays {
		_, err := tx.Exec(
			`INSERT INTO freeze_days (day, reason, created_at) VALUES (?, ?, ?)`,
			freeze.Day, freeze.Reason, formatTimestamp(freeze.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert freeze day %s: %w", freeze.Day, err)
		}
	}

	for _, badge := range snapshot.Badges {
		_, err := tx.Exec(
			`INSERT INTO badges (habit_id, type, earned_at) VALUES (?, ?, ?)`,
			badge.HabitID, string(badge.Type), formatTimestamp(badge.EarnedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert badge %s/%s: %w", badge.HabitID, badge.Type, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('snapshot_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(snapshot.Version),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
