// Package memory keeps game snapshots in process memory.
package memory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"shithead/internal/domain"
	"shithead/internal/ports"
)

// ErrGameIDRequired indicates a missing game id.
var ErrGameIDRequired = errors.New("game id is required")

type entry struct {
	state   *domain.GameState
	version int64
}

// Store is a ports.SnapshotStore backed by a map. States are cloned on the
// way in and out so callers never share memory with the store.
type Store struct {
	mu    sync.Mutex
	games map[string]entry
}

// NewStore creates a new in-memory snapshot store.
func NewStore() *Store {
	return &Store{games: make(map[string]entry)}
}

// Load retrieves a snapshot and its version.
func (s *Store) Load(ctx context.Context, gameID string) (*domain.GameState, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, "", ErrGameIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, "", ports.ErrGameNotFound
	}
	return e.state.Clone(), strconv.FormatInt(e.version, 10), nil
}

// Create stores a new game at version 1.
func (s *Store) Create(ctx context.Context, gameID string, state *domain.GameState) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", ErrGameIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; ok {
		return "", ports.ErrConflict
	}
	s.games[gameID] = entry{state: state.Clone(), version: 1}
	return "1", nil
}

// Save replaces the snapshot if version is still current.
func (s *Store) Save(ctx context.Context, gameID string, state *domain.GameState, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", ErrGameIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return "", ports.ErrGameNotFound
	}
	if strconv.FormatInt(e.version, 10) != version {
		return "", ports.ErrConflict
	}
	e = entry{state: state.Clone(), version: e.version + 1}
	s.games[gameID] = e
	return strconv.FormatInt(e.version, 10), nil
}

// Count returns how many stored games are in phase. An empty phase counts
// every game.
func (s *Store) Count(ctx context.Context, phase domain.Phase) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.games {
		if phase == "" || e.state.Phase == phase {
			n++
		}
	}
	return n, nil
}

var _ ports.SnapshotStore = (*Store)(nil)
