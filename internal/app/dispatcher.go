package app

import (
	"context"
	"errors"
	"fmt"

	"shithead/internal/domain"
	"shithead/internal/ports"
)

// ErrNotify marks an update that was persisted but not fully delivered.
var ErrNotify = errors.New("notify failed")

// Subjects used for notifications that are not events.
const (
	SubjectGameView  = "game_view"
	SubjectTableView = "table_view"
)

// Dispatcher serializes one action against a stored game: load, apply on a
// working copy, compare-and-swap save, then notify. A lost race is returned to
// the caller as ports.ErrConflict and never retried.
type Dispatcher struct {
	svc      *Service
	store    ports.SnapshotStore
	notifier ports.NotifierPort
}

// NewDispatcher wires a dispatcher. notifier may be nil.
func NewDispatcher(svc *Service, store ports.SnapshotStore, notifier ports.NotifierPort) *Dispatcher {
	return &Dispatcher{svc: svc, store: store, notifier: notifier}
}

// Create starts a new game hosted by hostID and persists it.
func (d *Dispatcher) Create(ctx context.Context, hostID string, totalPlayers int) (string, Outcome, error) {
	gameID, out, err := d.svc.NewGame(hostID, totalPlayers)
	if err != nil {
		return "", Outcome{}, err
	}
	if err := out.State.CheckInvariants(d.svc.Deck()); err != nil {
		return "", Outcome{}, err
	}
	if _, err := d.store.Create(ctx, gameID, out.State); err != nil {
		return "", Outcome{}, fmt.Errorf("create game %s: %w", gameID, err)
	}
	if err := d.notify(ctx, gameID, out); err != nil {
		return gameID, out, err
	}
	return gameID, out, nil
}

// Handle applies a to the stored game gameID.
func (d *Dispatcher) Handle(ctx context.Context, gameID string, a Action) (Outcome, error) {
	state, version, err := d.load(ctx, gameID)
	if err != nil {
		return Outcome{}, err
	}

	out, err := d.svc.Apply(state, a)
	if err != nil {
		return Outcome{}, err
	}
	if err := out.State.CheckInvariants(d.svc.Deck()); err != nil {
		return Outcome{}, err
	}

	if _, err := d.store.Save(ctx, gameID, out.State, version); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("save game %s: %w", gameID, err)
	}

	if err := d.notify(ctx, gameID, out); err != nil {
		return out, err
	}
	return out, nil
}

// View returns the game as audienceID may see it.
func (d *Dispatcher) View(ctx context.Context, gameID, audienceID string) (domain.GameView, error) {
	state, _, err := d.load(ctx, gameID)
	if err != nil {
		return domain.GameView{}, err
	}
	return state.ViewFor(audienceID), nil
}

// State returns the raw stored state. It is meant for trusted tooling only.
func (d *Dispatcher) State(ctx context.Context, gameID string) (*domain.GameState, error) {
	state, _, err := d.load(ctx, gameID)
	return state, err
}

func (d *Dispatcher) load(ctx context.Context, gameID string) (*domain.GameState, string, error) {
	state, version, err := d.store.Load(ctx, gameID)
	if err != nil {
		return nil, "", err
	}
	if err := state.CheckInvariants(d.svc.Deck()); err != nil {
		return nil, "", fmt.Errorf("load game %s: %w", gameID, err)
	}
	return state, version, nil
}

func (d *Dispatcher) notify(ctx context.Context, gameID string, out Outcome) error {
	if d.notifier == nil {
		return nil
	}
	if err := d.notifier.Notify(ctx, gameID, Notifications(out)); err != nil {
		return fmt.Errorf("%w: game %s: %w", ErrNotify, gameID, err)
	}
	return nil
}

// Notifications expands an outcome into per-player messages: events to
// their recipients, each player's own view, then the table view to everyone.
func Notifications(out Outcome) []ports.Notification {
	players := make([]string, 0, len(out.State.Players))
	for _, p := range out.State.Players {
		players = append(players, p.ID)
	}

	var notes []ports.Notification
	for _, ev := range out.Events {
		to := ev.Recipients
		if len(to) == 0 {
			to = players
		}
		for _, id := range to {
			notes = append(notes, ports.Notification{UserID: id, Subject: string(ev.Kind), Content: ev.Payload})
		}
	}
	for _, id := range players {
		notes = append(notes, ports.Notification{UserID: id, Subject: SubjectGameView, Content: out.Views[id]})
	}
	for _, id := range players {
		notes = append(notes, ports.Notification{UserID: id, Subject: SubjectTableView, Content: out.Table})
	}
	return notes
}
