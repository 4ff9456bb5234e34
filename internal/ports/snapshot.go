package ports

import (
	"context"
	"errors"

	"shithead/internal/domain"
)

var (
	// ErrConflict is returned by Save when the stored version moved on since Load.
	ErrConflict = errors.New("snapshot version conflict")
	// ErrGameNotFound is returned by Load for an unknown game id.
	ErrGameNotFound = errors.New("game not found")
)

// SnapshotStore persists whole game snapshots under an opaque version token.
type SnapshotStore interface {
	// Load returns the stored state and the version it was read at.
	Load(ctx context.Context, gameID string) (*domain.GameState, string, error)

	// Create stores a new game. It fails with ErrConflict if the id is taken.
	Create(ctx context.Context, gameID string, state *domain.GameState) (string, error)

	// Save replaces the snapshot only if the stored version still equals version.
	// Returns the new version, or ErrConflict when the check fails.
	Save(ctx context.Context, gameID string, state *domain.GameState, version string) (string, error)
}
