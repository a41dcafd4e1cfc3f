package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/petdoor-tools/doorsched/internal/models"
)

// SQLiteStore is the default cache backend.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore returns an uninitialised store for the given database
// file. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema when missing.
func (s *SQLiteStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open cache db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schedules (
			id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL UNIQUE,
			schedule TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("create cache schema: %w", err)
	}

	s.db = db
	return nil
}

// GetSchedule returns the cached schedule for the entity.
func (s *SQLiteStore) GetSchedule(entityID string) (models.Schedule, time.Time, error) {
	var schedJSON, updatedAtStr string

	err := s.db.QueryRow(`
		SELECT schedule, updated_at FROM schedules WHERE entity_id = ?
	`, entityID).Scan(&schedJSON, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoSchedule
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query cached schedule: %w", err)
	}

	var sched models.Schedule
	if err := json.Unmarshal([]byte(schedJSON), &sched); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode cached schedule: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse cache timestamp: %w", err)
	}

	return sched, updatedAt, nil
}

// PutSchedule upserts the cached schedule for the entity.
func (s *SQLiteStore) PutSchedule(entityID string, sched models.Schedule) error {
	schedJSON, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO schedules (id, entity_id, schedule, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			schedule = excluded.schedule,
			updated_at = excluded.updated_at
	`, uuid.New().String(), entityID, string(schedJSON), time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("store schedule: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
