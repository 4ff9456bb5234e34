package nakama

import (
	"context"
	"errors"
	"fmt"

	"shithead/internal/domain"
	"shithead/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// storageClient is the slice of runtime.NakamaModule the snapshot store needs.
type storageClient interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaSnapshotStore implements ports.SnapshotStore on Nakama storage.
// Games are system-owned objects keyed by game id; Nakama's object version
// is the compare-and-swap token.
type NakamaSnapshotStore struct {
	nk         storageClient
	collection string
}

// NewNakamaSnapshotStore creates a snapshot store writing to collection.
func NewNakamaSnapshotStore(nk storageClient, collection string) *NakamaSnapshotStore {
	return &NakamaSnapshotStore{nk: nk, collection: collection}
}

// Load reads one game snapshot.
func (s *NakamaSnapshotStore) Load(ctx context.Context, gameID string) (*domain.GameState, string, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: s.collection,
		Key:        gameID,
	}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read game %s: %w", gameID, err)
	}
	if len(objects) == 0 {
		return nil, "", ports.ErrGameNotFound
	}

	state, err := domain.DecodeState([]byte(objects[0].Value))
	if err != nil {
		return nil, "", fmt.Errorf("game %s: %w", gameID, err)
	}
	return state, objects[0].Version, nil
}

// Create writes a game that must not exist yet.
func (s *NakamaSnapshotStore) Create(ctx context.Context, gameID string, state *domain.GameState) (string, error) {
	return s.write(ctx, gameID, state, "*")
}

// Save overwrites a game only if its stored version is still version.
func (s *NakamaSnapshotStore) Save(ctx context.Context, gameID string, state *domain.GameState, version string) (string, error) {
	if version == "" || version == "*" {
		return "", fmt.Errorf("%w: save needs a concrete version", ports.ErrConflict)
	}
	return s.write(ctx, gameID, state, version)
}

func (s *NakamaSnapshotStore) write(ctx context.Context, gameID string, state *domain.GameState, version string) (string, error) {
	value, err := domain.EncodeState(state)
	if err != nil {
		return "", err
	}

	acks, err := s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      s.collection,
		Key:             gameID,
		Value:           string(value),
		Version:         version,
		PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return "", ports.ErrConflict
		}
		return "", fmt.Errorf("failed to write game %s: %w", gameID, err)
	}
	if len(acks) == 0 {
		return "", fmt.Errorf("failed to write game %s: no acknowledgement", gameID)
	}
	return acks[0].Version, nil
}

var _ ports.SnapshotStore = (*NakamaSnapshotStore)(nil)
