// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when no replay matches an ID.
	ErrNotFound = errors.New("storage: replay not found")
	// ErrAmbiguous is returned when an ID prefix matches several replays.
	ErrAmbiguous = errors.New("storage: replay id prefix is ambiguous")
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a recorded game: the seed and settings it started from, every
// applied input, and the result it reached.
type Replay struct {
	ID            string
	GameID        string
	Seed          int64
	TickRate      int
	GravityBaseMS int
	GravityStepMS int
	GravityMinMS  int
	Preview       int
	Ghost         bool
	Preset        string
	Ticks         int64
	Score         int
	Level         int
	Lines         int
	CreatedAt     time.Time

	// Events is empty in listings; EventCount is always set.
	Events     []Event
	EventCount int
}

// Event is one recorded input.
type Event struct {
	Tick   int64
	Action string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			gravity_base_ms INTEGER NOT NULL,
			gravity_step_ms INTEGER NOT NULL,
			gravity_min_ms INTEGER NOT NULL,
			preview INTEGER NOT NULL,
			ghost INTEGER NOT NULL DEFAULT 1,
			preset TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_events (
			replay_id TEXT NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			action TEXT NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and its events in one transaction.
// It assigns and returns a new ID; r.ID is ignored.
func (s *Store) SaveReplay(r Replay) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays
		 (id, game_id, seed, tick_rate, gravity_base_ms, gravity_step_ms, gravity_min_ms,
		  preview, ghost, preset, ticks, score, level, lines)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.GameID, r.Seed, r.TickRate, r.GravityBaseMS, r.GravityStepMS, r.GravityMinMS,
		r.Preview, r.Ghost, r.Preset, r.Ticks, r.Score, r.Level, r.Lines,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_events (replay_id, seq, tick, action) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range r.Events {
		if _, err := stmt.Exec(id, i, e.Tick, e.Action); err != nil {
			return "", fmt.Errorf("storage: cannot save replay event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const replayColumns = `r.id, r.game_id, r.seed, r.tick_rate, r.gravity_base_ms, r.gravity_step_ms,
	r.gravity_min_ms, r.preview, r.ghost, r.preset, r.ticks, r.score, r.level, r.lines, r.created_at,
	(SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var r Replay
	var createdAt any
	err := row.Scan(
		&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.GravityBaseMS, &r.GravityStepMS,
		&r.GravityMinMS, &r.Preview, &r.Ghost, &r.Preset, &r.Ticks, &r.Score, &r.Level, &r.Lines,
		&createdAt, &r.EventCount,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// RecentReplays lists replays newest first, without their events.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays r
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// FindReplay loads a replay with its events by full ID or unique prefix.
func (s *Store) FindReplay(idOrPrefix string) (*Replay, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays r
		 WHERE r.id = ? OR substr(r.id, 1, ?) = ?
		 LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	var matches []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguous, idOrPrefix)
	}

	r := matches[0]
	if r.Events, err = s.replayEvents(r.ID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) replayEvents(id string) ([]Event, error) {
	rows, err := s.db.Query(
		"SELECT tick, action FROM replay_events WHERE replay_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Tick, &e.Action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

// DeleteReplay removes a replay and its events.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
