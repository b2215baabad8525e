package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS league_state (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	players      TEXT NOT NULL,
	team_names   TEXT NOT NULL,
	session_date TEXT NOT NULL,
	version      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	date TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`

// SQLiteStore persists the snapshot to an embedded sqlite file: one
// league_state row plus one row per session date. The full snapshot
// is cached in memory and written back whole on every mutation; the
// dataset is one roster of players and one session per week, so the
// write stays small.
type SQLiteStore struct {
	mu       sync.Mutex
	db       *sql.DB
	log      logger.Logger
	snapshot model.Snapshot
	version  uint64
	closed   bool
}

// NewSQLiteStore opens (or creates) the database at path, applies the
// schema, and loads any persisted snapshot. An empty database starts
// from the seed.
func NewSQLiteStore(_ context.Context, path string, seed model.Snapshot, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", ErrOpenStore)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}

	cfg := newOptions(opts...)
	s := &SQLiteStore{db: db, log: cfg.log}

	loaded, version, err := s.load()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if version == 0 {
		s.snapshot = model.NormalizeSnapshot(seed)
		s.version = 1
		if err := s.persist(); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		s.snapshot = model.NormalizeSnapshot(loaded)
		s.version = version
	}
	return s, nil
}

// load reads the persisted snapshot; version 0 means an empty database.
func (s *SQLiteStore) load() (model.Snapshot, uint64, error) {
	var (
		playersJSON   string
		teamNamesJSON string
		sessionDate   string
		version       uint64
	)
	err := s.db.QueryRow(`SELECT players, team_names, session_date, version FROM league_state WHERE id = 1`).
		Scan(&playersJSON, &teamNamesJSON, &sessionDate, &version)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, 0, nil
	}
	if err != nil {
		return model.Snapshot{}, 0, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}

	snap := model.Snapshot{SessionDate: sessionDate, SessionsByDate: map[string]model.Session{}}
	// Malformed rows degrade to defaults instead of failing the open.
	if err := json.Unmarshal([]byte(playersJSON), &snap.Players); err != nil && s.log != nil {
		s.log.Warn(context.Background(), "discarding malformed players row", logger.Error(err))
	}
	if err := json.Unmarshal([]byte(teamNamesJSON), &snap.TeamNames); err != nil && s.log != nil {
		s.log.Warn(context.Background(), "discarding malformed team names row", logger.Error(err))
	}

	rows, err := s.db.Query(`SELECT date, data FROM sessions`)
	if err != nil {
		return model.Snapshot{}, 0, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	defer rows.Close()
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			continue
		}
		var sess model.Session
		if err := json.Unmarshal([]byte(data), &sess); err != nil {
			if s.log != nil {
				s.log.Warn(context.Background(), "discarding malformed session row",
					logger.String("date", date), logger.Error(err))
			}
			continue
		}
		snap.SessionsByDate[date] = sess
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, 0, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	return snap, version, nil
}

// persist writes the cached snapshot back in one transaction.
// Callers hold the mutex.
func (s *SQLiteStore) persist() error {
	playersJSON, err := json.Marshal(s.snapshot.Players)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	teamNamesJSON, err := json.Marshal(s.snapshot.TeamNames)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO league_state (id, players, team_names, session_date, version)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			players = excluded.players,
			team_names = excluded.team_names,
			session_date = excluded.session_date,
			version = excluded.version`,
		string(playersJSON), string(teamNamesJSON), s.snapshot.SessionDate, s.version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	for date, sess := range s.snapshot.SessionsByDate {
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		if _, err := tx.Exec(`INSERT INTO sessions (date, data) VALUES (?, ?)`, date, string(data)); err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Snapshot returns a normalized copy of the current state.
func (s *SQLiteStore) Snapshot(_ context.Context) (model.Snapshot, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Snapshot{}, 0, ErrClosed
	}
	return model.NormalizeSnapshot(s.snapshot), s.version, nil
}

// ReplaceSnapshot swaps in a whole new state.
func (s *SQLiteStore) ReplaceSnapshot(_ context.Context, snap model.Snapshot) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.commit(func() {
		s.snapshot = model.NormalizeSnapshot(snap)
	})
}

// PutPlayers replaces the global player list.
func (s *SQLiteStore) PutPlayers(_ context.Context, players []model.Player) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.commit(func() {
		next := s.snapshot
		next.Players = players
		s.snapshot = model.NormalizeSnapshot(next)
	})
}

// PutSession stores a session under its Sunday key.
func (s *SQLiteStore) PutSession(_ context.Context, date string, sess model.Session) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", 0, ErrClosed
	}
	key := model.NormalizeDate(date)
	version, err := s.commit(func() {
		s.snapshot.SessionsByDate[key] = model.NormalizeSession(sess)
	})
	return key, version, err
}

// SetSessionDate selects the current play date.
func (s *SQLiteStore) SetSessionDate(_ context.Context, date string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", 0, ErrClosed
	}
	key := model.NormalizeDate(date)
	version, err := s.commit(func() {
		s.snapshot.SessionDate = key
		if _, ok := s.snapshot.SessionsByDate[key]; !ok {
			s.snapshot.SessionsByDate[key] = model.EmptySession()
		}
	})
	return key, version, err
}

// commit applies a mutation, bumps the version, and persists. A failed
// persist rolls the cached state back so memory and disk stay in step.
// The saved state must be a deep copy: mutations write into the shared
// session map, so a plain struct copy would keep the failed write.
func (s *SQLiteStore) commit(mutate func()) (uint64, error) {
	prev := model.NormalizeSnapshot(s.snapshot)
	prevVersion := s.version
	mutate()
	s.version++
	if err := s.persist(); err != nil {
		s.snapshot = prev
		s.version = prevVersion
		return 0, err
	}
	return s.version, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
