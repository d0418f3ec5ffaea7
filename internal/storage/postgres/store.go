package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	// Ensure search_path is set to habitkit in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		// Only set search_path if it's not already present
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		// Assume DSN format - only append if search_path is not already present
		if !hasSearchPathParam(s.connStr) {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasSearchPathParam returns true if the given DSN-style connection string
// contains a search_path parameter key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	// DSN format is typically space-separated key=value pairs.
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "search_path") {
			return true
		}
	}
	return false
}

// ValidateConnString checks if a connection string is a valid
// PostgreSQL connection string (URI or DSN) and ensures it does not
// contain a password.
//
// It returns true if the connection string is valid and contains no password.
// Otherwise, it returns false and an error describing the issue.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
	} else {
		// DSN format - check for password key
		parts := strings.Fields(connStr)
		for _, part := range parts {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				continue
			}
			if strings.EqualFold(kv[0], "password") {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

func (s *Store) Init() error {
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

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS ` + constants.AppName,
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
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			inserted_seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS logs (
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			note TEXT NOT NULL DEFAULT '',
			completed_at TIMESTAMPTZ,
			inserted_seq BIGSERIAL,
			PRIMARY KEY (habit_id, day)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			emoji TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			inserted_seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS freeze_days (
			day TEXT PRIMARY KEY,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			inserted_seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS badges (
			habit_id TEXT NOT NULL,
			type TEXT NOT NULL,
			earned_at TIMESTAMPTZ NOT NULL,
			inserted_seq BIGSERIAL,
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

func (s *Store) initialized() (bool, error) {
	var reg sql.NullString
	row := s.db.QueryRow(`SELECT to_regclass('habits')`)
	if err := row.Scan(&reg); err != nil {
		return false, err
	}
	return reg.Valid, nil
}

func (s *Store) Load() (*models.Snapshot, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	ok, err := s.initialized()
	if err != nil {
		return nil, fmt.Errorf("failed to check schema: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("storage not initialized, run 'habitkit init' first")
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
	rows, err := s.db.Query(`SELECT id, name, description, emoji, frequency, custom_days, category_id, goal_days, sort_order, archived, created_at FROM habits ORDER BY inserted_seq`)
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
		)
		if err := rows.Scan(&habit.ID, &habit.Name, &habit.Description, &habit.Emoji, &habit.Frequency, &customDays, &categoryID, &goalDays, &habit.Order, &habit.Archived, &habit.CreatedAt); err != nil {
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

		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *Store) loadLogs() ([]models.HabitLog, error) {
	rows, err := s.db.Query(`SELECT habit_id, day, completed, note, completed_at FROM logs ORDER BY inserted_seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		var (
			log         models.HabitLog
			completedAt sql.NullTime
		)
		if err := rows.Scan(&log.HabitID, &log.Day, &log.Completed, &log.Note, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			stamp := completedAt.Time
			log.CompletedAt = &stamp
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *Store) loadCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, color, emoji, sort_order, created_at FROM categories ORDER BY inserted_seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Color, &category.Emoji, &category.Order, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (s *Store) loadFreezeDays() ([]models.FreezeDay, error) {
	rows, err := s.db.Query(`SELECT day, reason, created_at FROM freeze_days ORDER BY inserted_seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	freezeDays := []models.FreezeDay{}
	for rows.Next() {
		var freeze models.FreezeDay
		if err := rows.Scan(&freeze.Day, &freeze.Reason, &freeze.CreatedAt); err != nil {
			return nil, err
		}
		freezeDays = append(freezeDays, freeze)
	}

	return freezeDays, rows.Err()
}

func (s *Store) loadBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(`SELECT habit_id, type, earned_at FROM badges ORDER BY inserted_seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := []models.Badge{}
	for rows.Next() {
		var badge models.Badge
		if err := rows.Scan(&badge.HabitID, &badge.Type, &badge.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// Save replaces the stored snapshot as a whole inside one transaction,
// mirroring the persistence contract of the file-backed stores.
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
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			habit.ID, habit.Name, habit.Description, habit.Emoji, string(habit.Frequency),
			customDays, categoryID, goalDays, habit.Order, habit.Archived, habit.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", habit.ID, err)
		}
	}

	for _, log := range snapshot.Logs {
		var completedAt interface{}
		if log.CompletedAt != nil {
			completedAt = *log.CompletedAt
		}

		_, err := tx.Exec(
			`INSERT INTO logs (habit_id, day, completed, note, completed_at) VALUES ($1, $2, $3, $4, $5)`,
			log.HabitID, log.Day, log.Completed, log.Note, completedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert log %s/%s: %w", log.HabitID, log.Day, err)
		}
	}

	for _, category := range snapshot.Categories {
		_, err := tx.Exec(
			`INSERT INTO categories (id, name, color, emoji, sort_order, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			category.ID, category.Name, category.Color, category.Emoji, category.Order, category.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", category.ID, err)
		}
	}

	for _, freeze := range snapshot.FreezeDays {
		_, err := tx.Exec(
			`INSERT INTO freeze_days (day, reason, created_at) VALUES ($1, $2, $3)`,
			freeze.Day, freeze.Reason, freeze.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert freeze day %s: %w", freeze.Day, err)
		}
	}

	for _, badge := range snapshot.Badges {
		_, err := tx.Exec(
			`INSERT INTO badges (habit_id, type, earned_at) VALUES ($1, $2, $3)`,
			badge.HabitID, string(badge.Type), badge.EarnedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert badge %s/%s: %w", badge.HabitID, badge.Type, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('snapshot_version', $1)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
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

// GetConfigPath returns the connection string with any query parameters
// stripped so it can be shown without leaking options.
func (s *Store) GetConfigPath() string {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		if u, err := url.Parse(s.connStr); err == nil {
			u.RawQuery = ""
			return u.String()
		}
	}
	return s.connStr
}
