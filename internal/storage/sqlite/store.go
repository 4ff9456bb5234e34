// Package sqlite provides a SQLite-backed game snapshot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"shithead/internal/domain"
	"shithead/internal/ports"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
  game_id    TEXT PRIMARY KEY,
  version    INTEGER NOT NULL,
  status     TEXT NOT NULL,
  state      TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS games_status_idx ON games (status);
`

// Store persists game snapshots in SQLite with an integer version column
// used for compare-and-swap.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Summary is one stored game without its state.
type Summary struct {
	GameID    string
	Version   int64
	Phase     domain.Phase
	UpdatedAt time.Time
}

// Open opens a SQLite snapshot store and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns one game snapshot and its version.
func (s *Store) Load(ctx context.Context, gameID string) (*domain.GameState, string, error) {
	if err := s.check(ctx); err != nil {
		return nil, "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, "", fmt.Errorf("game id is required")
	}

	var raw string
	var version int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT state, version FROM games WHERE game_id = ?`,
		gameID,
	).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ports.ErrGameNotFound
		}
		return nil, "", fmt.Errorf("load game: %w", err)
	}

	state, err := domain.DecodeState([]byte(raw))
	if err != nil {
		return nil, "", fmt.Errorf("load game %s: %w", gameID, err)
	}
	return state, strconv.FormatInt(version, 10), nil
}

// Create inserts a new game at version 1.
func (s *Store) Create(ctx context.Context, gameID string, state *domain.GameState) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", fmt.Errorf("game id is required")
	}
	raw, err := domain.EncodeState(state)
	if err != nil {
		return "", err
	}

	now := s.now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (game_id, version, status, state, created_at, updated_at)
		 VALUES (?, 1, ?, ?, ?, ?)`,
		gameID, string(state.Phase), string(raw), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ports.ErrConflict
		}
		return "", fmt.Errorf("create game: %w", err)
	}
	return "1", nil
}

// Save replaces the snapshot if the stored version still equals version.
func (s *Store) Save(ctx context.Context, gameID string, state *domain.GameState, version string) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", fmt.Errorf("game id is required")
	}
	expected, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed version %q", ports.ErrConflict, version)
	}
	raw, err := domain.EncodeState(state)
	if err != nil {
		return "", err
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games
		    SET state = ?, status = ?, version = version + 1, updated_at = ?
		  WHERE game_id = ? AND version = ?`,
		string(raw), string(state.Phase), s.now().UTC().UnixMilli(), gameID, expected,
	)
	if err != nil {
		return "", fmt.Errorf("save game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("save game: %w", err)
	}
	if n == 0 {
		var exists int
		err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM games WHERE game_id = ?`, gameID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return "", ports.ErrGameNotFound
		}
		if err != nil {
			return "", fmt.Errorf("save game: %w", err)
		}
		return "", ports.ErrConflict
	}
	return strconv.FormatInt(expected+1, 10), nil
}

// List returns stored games, most recently updated first. An empty phase
// matches every game.
func (s *Store) List(ctx context.Context, phase domain.Phase) ([]Summary, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, version, status, updated_at
		   FROM games
		  WHERE ? = '' OR status = ?
		  ORDER BY updated_at DESC, game_id`,
		string(phase), string(phase),
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var status string
		var updatedAt int64
		if err := rows.Scan(&sum.GameID, &sum.Version, &status, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		sum.Phase = domain.Phase(status)
		sum.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

// Count returns how many stored games are in phase. An empty phase counts
// every game.
func (s *Store) Count(ctx context.Context, phase domain.Phase) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	var n int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE ? = '' OR status = ?`,
		string(phase), string(phase),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "games.game_id")
}

var _ ports.SnapshotStore = (*Store)(nil)
