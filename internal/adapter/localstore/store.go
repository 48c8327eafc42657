package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// Store is the client's local bookkeeping: the logged-in owner id (the
// localStorage of the old web app) and a per-day mirror of fetched meal
// records. The mirror is advisory only: completeness is never decided
// from it without the caller marking the data as stale.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("localstore: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS session (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS meal_cache (
        owner_id TEXT NOT NULL,
        day TEXT NOT NULL,
        payload TEXT NOT NULL,
        fetched_at DATETIME NOT NULL,
        PRIMARY KEY (owner_id, day)
    );
    `
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const ownerKey = "owner_id"

// SetOwnerID records the logged-in owner. Called once at login.
func (s *Store) SetOwnerID(id string) error {
	_, err := s.db.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		ownerKey, id)
	if err != nil {
		return fmt.Errorf("localstore: set owner: %w", err)
	}
	return nil
}

// OwnerID returns the logged-in owner, or domain.ErrNotLoggedIn when no
// login has happened (or logout cleared it).
func (s *Store) OwnerID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, ownerKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("localstore: get owner: %w", err)
	}
	if id == "" {
		return "", domain.ErrNotLoggedIn
	}
	return id, nil
}

// ClearOwnerID removes the session. Called at logout.
func (s *Store) ClearOwnerID() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, ownerKey); err != nil {
		return fmt.Errorf("localstore: clear owner: %w", err)
	}
	return nil
}

// cachedRecord mirrors domain.MealRecord with an explicit wall-clock
// timestamp encoding (no zone), matching the backend's semantics.
type cachedRecord struct {
	Slot         string   `json:"slot"`
	Timestamp    string   `json:"timestamp,omitempty"`
	ContentItems []string `json:"content_items,omitempty"`
	ImageRefs    []string `json:"image_refs,omitempty"`
	Skipped      bool     `json:"skipped,omitempty"`
}

const cacheTimeLayout = "2006-01-02T15:04:05"

// CacheDay replaces the mirrored records for one owner and day.
func (s *Store) CacheDay(ownerID string, day time.Time, records []domain.MealRecord) error {
	rows := make([]cachedRecord, 0, len(records))
	for _, r := range records {
		row := cachedRecord{
			Slot:         r.Slot.String(),
			ContentItems: r.ContentItems,
			ImageRefs:    r.ImageRefs,
			Skipped:      r.Skipped,
		}
		if r.HasTimestamp() {
			row.Timestamp = r.Timestamp.Format(cacheTimeLayout)
		}
		rows = append(rows, row)
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("localstore: marshal records: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO meal_cache (owner_id, day, payload, fetched_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(owner_id, day) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		ownerID, day.Format("2006-01-02"), string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("localstore: cache day: %w", err)
	}
	return nil
}

// CachedDay returns the mirrored records for one owner and day, plus
// when they were fetched. domain.ErrNotFound means the day was never
// mirrored.
func (s *Store) CachedDay(ownerID string, day time.Time) ([]domain.MealRecord, time.Time, error) {
	var (
		payload   string
		fetchedAt string
	)
	err := s.db.QueryRow(
		`SELECT payload, fetched_at FROM meal_cache WHERE owner_id = ? AND day = ?`,
		ownerID, day.Format("2006-01-02")).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("localstore: query cache: %w", err)
	}

	var rows []cachedRecord
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, time.Time{}, fmt.Errorf("localstore: decode cache payload: %w", err)
	}

	records := make([]domain.MealRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.MealRecord{
			OwnerID:      ownerID,
			Slot:         domain.Slot(row.Slot),
			ContentItems: row.ContentItems,
			ImageRefs:    row.ImageRefs,
			Skipped:      row.Skipped,
		}
		if row.Timestamp != "" {
			if ts, err := time.ParseInLocation(cacheTimeLayout, row.Timestamp, time.Local); err == nil {
				rec.Timestamp = ts
			}
		}
		records = append(records, rec)
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("localstore: parse fetched_at: %w", err)
	}
	return records, ts, nil
}
