package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/baristalabs/mastrena/internal/extraction"
)

// SQLiteStore implements Store using SQLite. It is the optional persistent
// collaborator: history survives process restarts, one row per record,
// append-only, mirroring the in-memory ordering.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed record store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		temperature REAL NOT NULL,
		pressure REAL NOT NULL,
		time_seconds REAL NOT NULL,
		score REAL NOT NULL,
		quality TEXT NOT NULL,
		yield_ratio REAL NOT NULL,
		water_volume_oz REAL NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
	CREATE INDEX IF NOT EXISTS idx_extractions_quality ON extractions(quality);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append implements Store.
func (s *SQLiteStore) Append(record extraction.Record) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO extractions
		 (temperature, pressure, time_seconds, score, quality, yield_ratio, water_volume_oz, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Parameters.Temperature,
		record.Parameters.Pressure,
		record.Parameters.TimeSeconds,
		record.Outcome.Score,
		string(record.Outcome.Quality),
		record.Outcome.YieldRatio,
		record.Outcome.WaterVolumeOz,
		record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert extraction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read assigned id: %w", err)
	}
	return uint64(id), nil
}

// All implements Store.
func (s *SQLiteStore) All() ([]extraction.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, temperature, pressure, time_seconds, score, quality, yield_ratio, water_volume_oz, created_at
		 FROM extractions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Len implements Store.
func (s *SQLiteStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM extractions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count extractions: %w", err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]extraction.Record, error) {
	records := []extraction.Record{}
	for rows.Next() {
		var r extraction.Record
		var quality string
		var createdNano int64

		err := rows.Scan(
			&r.ID,
			&r.Parameters.Temperature,
			&r.Parameters.Pressure,
			&r.Parameters.TimeSeconds,
			&r.Outcome.Score,
			&quality,
			&r.Outcome.YieldRatio,
			&r.Outcome.WaterVolumeOz,
			&createdNano,
		)
		if err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}

		r.Outcome.Quality = extraction.Quality(quality)
		r.CreatedAt = time.Unix(0, createdNano)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}
