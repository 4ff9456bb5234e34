package sqlite

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"shithead/internal/domain"
	"shithead/internal/ports"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func lobby(t *testing.T) *domain.GameState {
	t.Helper()
	cfg := domain.DefaultDeckConfig()
	state := domain.NewGameState(2, domain.BuildShuffledDeck(cfg, "salt", rand.New(rand.NewSource(1))), "salt")
	if err := state.AddPlayer("host"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	return state
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	state := lobby(t)

	version, err := store.Create(ctx, "g1", state)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, loadedVersion, err := store.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loadedVersion != version {
		t.Fatalf("version = %q, want %q", loadedVersion, version)
	}
	if got.NPlayers() != 1 || len(got.Stack) != 52 || got.DeckSalt != "salt" {
		t.Fatalf("unexpected state: players=%d stack=%d", got.NPlayers(), len(got.Stack))
	}
	if err := got.CheckInvariants(domain.DefaultDeckConfig()); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestCreateDuplicateConflicts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, "g1", lobby(t)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "g1", lobby(t)); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSaveCompareAndSwap(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	v1, err := store.Create(ctx, "g1", lobby(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	state, _, _ := store.Load(ctx, "g1")
	if err := state.AddPlayer("guest"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	v2, err := store.Save(ctx, "g1", state, v1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if v2 != "2" {
		t.Fatalf("version = %q, want 2", v2)
	}

	if _, err := store.Save(ctx, "g1", state, v1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on stale version, got %v", err)
	}
	if _, err := store.Save(ctx, "g1", state, "abc"); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on malformed version, got %v", err)
	}
	if _, err := store.Save(ctx, "missing", state, "1"); !errors.Is(err, ports.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	got, _, _ := store.Load(ctx, "g1")
	if got.Phase != domain.PhaseDeal {
		t.Fatalf("phase = %s, want DEAL", got.Phase)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ports.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestListFiltersByPhase(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, "open", lobby(t)); err != nil {
		t.Fatalf("create: %v", err)
	}
	full := lobby(t)
	_ = full.AddPlayer("guest")
	if _, err := store.Create(ctx, "full", full); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("games = %d, want 2", len(all))
	}
	dealing, err := store.List(ctx, domain.PhaseDeal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dealing) != 1 || dealing[0].GameID != "full" {
		t.Fatalf("unexpected filtered list: %+v", dealing)
	}

	for phase, want := range map[domain.Phase]int{"": 2, domain.PhaseDeal: 1, domain.PhaseEnd: 0} {
		n, err := store.Count(ctx, phase)
		if err != nil {
			t.Fatalf("count %q: %v", phase, err)
		}
		if n != want {
			t.Fatalf("count %q = %d, want %d", phase, n, want)
		}
	}
}
