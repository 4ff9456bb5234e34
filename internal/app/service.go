package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"shithead/internal/domain"

	"github.com/google/uuid"
)

// ErrInvalidPlayerCount rejects a seat count outside MinPlayers..MaxPlayers.
var ErrInvalidPlayerCount = fmt.Errorf("%w: player count out of range", domain.ErrInvalidAction)

// Service contains Shithead use-cases operating on domain state.
// It never mutates the state it is given and is safe for concurrent use.
type Service struct {
	mu   sync.Mutex // guards rng
	rng  *rand.Rand
	deck domain.DeckConfig
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, deck domain.DeckConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, deck: deck}
}

// Deck returns the configuration games are built from.
func (s *Service) Deck() domain.DeckConfig { return s.deck }

// Outcome is the result of applying one action.
type Outcome struct {
	State  *domain.GameState
	Events []Event
	Views  map[string]domain.GameView // per player id
	Table  domain.TableView
}

// NewGame shuffles a fresh deck into the draw stack and seats the host as dealer.
func (s *Service) NewGame(hostID string, totalPlayers int) (string, Outcome, error) {
	if totalPlayers < MinPlayers || totalPlayers > MaxPlayers || totalPlayers*9 > s.deck.Size() {
		return "", Outcome{}, fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidPlayerCount, totalPlayers, MinPlayers, MaxPlayers)
	}

	salt := uuid.NewString()
	s.mu.Lock()
	deck := domain.BuildShuffledDeck(s.deck, salt, s.rng)
	s.mu.Unlock()
	state := domain.NewGameState(totalPlayers, deck, salt)

	out, err := s.Apply(state, Join(hostID))
	if err != nil {
		return "", Outcome{}, err
	}
	return uuid.NewString(), out, nil
}

// Apply runs a on a copy of state. On error the returned Outcome is empty and
// state is untouched.
func (s *Service) Apply(state *domain.GameState, a Action) (Outcome, error) {
	g := state.Clone()

	var (
		events []Event
		err    error
	)
	switch a.Kind {
	case ActionJoin:
		events, err = s.join(g, a)
	case ActionDeal:
		events, err = s.deal(g, a)
	case ActionSwap:
		events, err = s.swap(g, a)
	case ActionReady:
		events, err = s.ready(g, a)
	case ActionPlay:
		events, err = s.play(g, a)
	case ActionPlayHidden:
		events, err = s.playHidden(g, a)
	case ActionPickup:
		events, err = s.pickup(g, a)
	case ActionBurn:
		events, err = s.burn(g, a)
	default:
		err = &domain.GameError{Kind: domain.ErrInvalidAction, Op: "apply", PlayerID: a.PlayerID, Msg: fmt.Sprintf("unknown action kind %q", a.Kind)}
	}
	if err != nil {
		return Outcome{}, err
	}
	return Project(g, events), nil
}

// Project builds the per-audience views for a state.
func Project(g *domain.GameState, events []Event) Outcome {
	views := make(map[string]domain.GameView, len(g.Players))
	for _, p := range g.Players {
		views[p.ID] = g.ViewFor(p.ID)
	}
	return Outcome{State: g, Events: events, Views: views, Table: g.TableView()}
}

func (s *Service) join(g *domain.GameState, a Action) ([]Event, error) {
	if err := g.AddPlayer(a.PlayerID); err != nil {
		return nil, err
	}
	p, _ := g.Player(a.PlayerID)
	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{PlayerID: p.ID, Order: p.Order, Dealer: p.IsDealer},
	}}, nil
}

func (s *Service) deal(g *domain.GameState, a Action) ([]Event, error) {
	if err := g.Deal(a.PlayerID); err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(g.Players))
	for _, p := range g.Players {
		events = append(events, Event{
			Kind: EventCardsDealt,
			Payload: CardsDealtPayload{
				PlayerID:    p.ID,
				Hand:        append([]domain.Card{}, p.Hand...),
				Table:       append([]domain.Card{}, p.Table...),
				HiddenCount: len(p.Hidden),
			},
			Recipients: []string{p.ID},
		})
	}
	return events, nil
}

func (s *Service) swap(g *domain.GameState, a Action) ([]Event, error) {
	if err := g.SwapTable(a.PlayerID, a.HandCardID, a.TableCardID); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventCardsSwapped,
		Payload: CardsSwappedPayload{PlayerID: a.PlayerID, HandCardID: a.HandCardID, TableCardID: a.TableCardID},
	}}, nil
}

func (s *Service) ready(g *domain.GameState, a Action) ([]Event, error) {
	if err := g.PlayerReady(a.PlayerID); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventPlayerReady, Payload: PlayerReadyPayload{PlayerID: a.PlayerID}}}
	if g.Phase == domain.PhasePlaying {
		active, err := g.ActivePlayer()
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Kind:    EventGameStarted,
			Payload: GameStartedPayload{ActivePlayerID: active.ID, CanPlay: active.CanPlay},
		})
	}
	return events, nil
}

func (s *Service) play(g *domain.GameState, a Action) ([]Event, error) {
	res, err := g.PlayCards(a.PlayerID, a.CardIDs)
	if err != nil {
		return nil, err
	}
	return playEvents(g, a.PlayerID, res), nil
}

func (s *Service) playHidden(g *domain.GameState, a Action) ([]Event, error) {
	res, err := g.PlayHidden(a.PlayerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventHiddenRevealed,
		Payload: HiddenRevealedPayload{PlayerID: a.PlayerID, Card: res.Card, Legal: res.Legal},
	}}
	if res.Play != nil {
		events = append(events, playEvents(g, a.PlayerID, *res.Play)...)
	}
	return events, nil
}

func (s *Service) pickup(g *domain.GameState, a Action) ([]Event, error) {
	res, err := g.PickupTable(a.PlayerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventTablePickedUp,
		Payload: TablePickedUpPayload{PlayerID: a.PlayerID, Cards: res.Cards},
	}}
	return append(events, turnEvents(g, res.Turn)...), nil
}

func (s *Service) burn(g *domain.GameState, a Action) ([]Event, error) {
	res, err := g.Burn(a.PlayerID)
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventTableBurned,
		Payload: TableBurnedPayload{PlayerID: a.PlayerID, Count: len(res.Burned)},
	}}
	if res.Turn != nil {
		events = append(events, turnEvents(g, *res.Turn)...)
	}
	return events, nil
}

func playEvents(g *domain.GameState, playerID string, res domain.PlayResult) []Event {
	events := []Event{{
		Kind: EventCardsPlayed,
		Payload: CardsPlayedPayload{
			PlayerID:     playerID,
			Cards:        res.Played,
			CurrentValue: res.CurrentValue,
			CanBurn:      res.CanBurn,
		},
	}}
	if res.Turn != nil {
		events = append(events, turnEvents(g, *res.Turn)...)
	}
	return events
}

func turnEvents(g *domain.GameState, t domain.TurnOutcome) []Event {
	var events []Event
	if t.WentOut {
		events = append(events, Event{Kind: EventPlayerOut, Payload: PlayerOutPayload{PlayerID: t.PlayerID}})
	}
	if t.RoundEnded {
		loser, _ := g.Player(t.LoserID)
		events = append(events, Event{
			Kind:    EventRoundEnded,
			Payload: RoundEndedPayload{LoserID: loser.ID, ShedCount: loser.ShedCount},
		})
		return events
	}
	return append(events, Event{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			PlayerID:     t.PlayerID,
			NextPlayerID: t.NextID,
			NextCanPlay:  t.NextCanPlay,
			Drew:         t.Drew,
		},
	})
}
