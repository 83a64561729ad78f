package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Repository persists computed trends and generated alerts.
type Repository interface {
	StoreTrends(trends Trends) error
	StoreAlerts(alerts []Alert) error
	Trends() ([]Trends, error)
	Alerts() ([]Alert, error)
	Close() error
}

// SQLiteRepository keeps trends and alerts in dedicated append-only tables.
type SQLiteRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteRepository opens (or creates) the analytics tables at dbPath.
// Use ":memory:" in tests.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize analytics schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trends (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		computed_at INTEGER NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		severity TEXT NOT NULL,
		category TEXT NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// StoreTrends appends a trend snapshot.
func (r *SQLiteRepository) StoreTrends(trends Trends) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := json.Marshal(trends)
	if err != nil {
		return fmt.Errorf("marshal trends: %w", err)
	}
	_, err = r.db.Exec(
		"INSERT INTO trends (computed_at, payload) VALUES (?, ?)",
		time.Now().UnixMilli(), payload,
	)
	if err != nil {
		return fmt.Errorf("insert trends: %w", err)
	}
	return nil
}

// StoreAlerts appends generated alerts, keyed by alert id.
func (r *SQLiteRepository) StoreAlerts(alerts []Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alert := range alerts {
		payload, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("marshal alert: %w", err)
		}
		_, err = r.db.Exec(
			"INSERT INTO alerts (id, created_at, severity, category, payload) VALUES (?, ?, ?, ?, ?)",
			alert.ID, alert.Timestamp.UnixMilli(), string(alert.Severity), string(alert.Category), payload,
		)
		if err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return nil
}

// Trends returns every stored trend snapshot in insertion order.
func (r *SQLiteRepository) Trends() ([]Trends, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query("SELECT payload FROM trends ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	result := []Trends{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan trends: %w", err)
		}
		var t Trends
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, fmt.Errorf("unmarshal trends: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Alerts returns every stored alert in creation order.
func (r *SQLiteRepository) Alerts() ([]Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query("SELECT payload FROM alerts ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	result := []Alert{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		var a Alert
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("unmarshal alert: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// MemoryRepository keeps analytics in process memory; used when persistence
// is disabled and in tests that don't need SQLite.
type MemoryRepository struct {
	mu     sync.RWMutex
	trends []Trends
	alerts []Alert
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) StoreTrends(trends Trends) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trends = append(r.trends, trends)
	return nil
}

func (r *MemoryRepository) StoreAlerts(alerts []Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alerts...)
	return nil
}

func (r *MemoryRepository) Trends() ([]Trends, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Trends, len(r.trends))
	copy(out, r.trends)
	return out, nil
}

func (r *MemoryRepository) Alerts() ([]Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

func (r *MemoryRepository) Close() error { return nil }
