package domain

import "fmt"

const (
	zoneSize      = 3 // cards per zone at deal time, and the hand refill target
	burnRunLength = 4
)

// TurnOutcome describes what the end-of-turn procedure did.
type TurnOutcome struct {
	PlayerID    string
	Drew        int
	WentOut     bool
	NextID      string
	NextCanPlay bool
	RoundEnded  bool
	LoserID     string
}

// PlayResult describes a successful play from hand or table.
type PlayResult struct {
	Played       []Card
	CanBurn      bool
	CurrentValue int
	Turn         *TurnOutcome // nil while the player must still burn
}

// HiddenResult describes a hidden card reveal.
type HiddenResult struct {
	Card  Card
	Legal bool
	Play  *PlayResult // set when the card was legal and went through PlayCards
}

// PickupResult describes a pile pickup.
type PickupResult struct {
	Cards []Card
	Turn  TurnOutcome
}

// BurnResult describes a burn.
type BurnResult struct {
	Burned []Card
	Turn   *TurnOutcome // set when the burning player had nothing left to play
}

func (g *GameState) requirePhase(op string, want Phase) error {
	if g.Phase != want {
		return phaseError(op, want, g.Phase)
	}
	return nil
}

// AddPlayer seats a new player. The first joiner deals; the second joiner is
// marked active so play starts from seat 1 once dealing is done.
func (g *GameState) AddPlayer(id string) error {
	const op = "add player"
	if err := g.requirePhase(op, PhaseInit); err != nil {
		return err
	}
	if id == "" {
		return actionError(op, id, "player id is required")
	}
	if g.NPlayers() >= g.TotalPlayers {
		return actionError(op, id, "game is full")
	}
	if _, err := g.Player(id); err == nil {
		return actionError(op, id, "player already joined")
	}

	n := g.NPlayers()
	g.Players = append(g.Players, &Player{
		ID:       id,
		Order:    n,
		Hand:     []Card{},
		Table:    []Card{},
		Hidden:   []Card{},
		IsDealer: n == 0,
		IsActive: n == 1,
	})

	if g.NPlayers() == g.TotalPlayers {
		g.Phase = PhaseDeal
	}
	return nil
}

// Deal gives every player three hidden, three table and three hand cards
// popped from the top of the draw stack, in turn order.
func (g *GameState) Deal(dealerID string) error {
	const op = "deal"
	if err := g.requirePhase(op, PhaseDeal); err != nil {
		return err
	}
	dealer, err := g.Player(dealerID)
	if err != nil {
		return err
	}
	if !dealer.IsDealer {
		return actionError(op, dealerID, "player is not the dealer")
	}
	if need := g.NPlayers() * zoneSize * 3; len(g.Stack) < need {
		return invariantError(op, fmt.Sprintf("stack holds %d cards, need %d", len(g.Stack), need))
	}

	for _, p := range g.Players {
		for _, zone := range []*[]Card{&p.Hidden, &p.Table, &p.Hand} {
			for i := 0; i < zoneSize; i++ {
				*zone = append(*zone, pop(&g.Stack))
			}
		}
	}
	g.Phase = PhasePrep
	return nil
}

// SwapTable exchanges a hand card for a table card before the player is ready.
func (g *GameState) SwapTable(playerID, handCardID, tableCardID string) error {
	if err := g.requirePhase("swap", PhasePrep); err != nil {
		return err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	return p.SwapHandForTable(handCardID, tableCardID)
}

// PlayerReady confirms a player's table. Once everyone is ready play starts.
func (g *GameState) PlayerReady(playerID string) error {
	if err := g.requirePhase("ready", PhasePrep); err != nil {
		return err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	p.IsReady = true

	if g.PlayersReady() == g.TotalPlayers {
		g.Phase = PhasePlaying
		active, err := g.ActivePlayer()
		if err != nil {
			return invariantError("ready", "no active player when play starts")
		}
		active.CanPlay, _ = g.PlayerCanPlay(active.ID)
	}
	return nil
}

// PlayCards plays one or more cards of equal value from the player's active zone.
func (g *GameState) PlayCards(playerID string, cardIDs []string) (PlayResult, error) {
	const op = "play"
	if err := g.requirePhase(op, PhasePlaying); err != nil {
		return PlayResult{}, err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return PlayResult{}, err
	}
	if !p.IsActive {
		return PlayResult{}, actionError(op, playerID, "player is not active")
	}
	if !p.HasHand() && !p.HasTable() {
		return PlayResult{}, actionError(op, playerID, "player has no face-up cards to play")
	}
	if p.CanBurn {
		return PlayResult{}, actionError(op, playerID, "player must burn the table first")
	}
	if len(cardIDs) == 0 {
		return PlayResult{}, actionError(op, playerID, "no cards selected")
	}

	zone, zoneName := p.activeZoneRef()
	seen := make(map[string]bool, len(cardIDs))
	cards := make([]Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return PlayResult{}, &GameError{Kind: ErrInvalidAction, Op: op, PlayerID: playerID, CardID: id, Msg: "card selected twice"}
		}
		seen[id] = true
		i := indexOfCard(*zone, id)
		if i < 0 {
			return PlayResult{}, cardNotFound(op, playerID, id, zoneName)
		}
		cards = append(cards, (*zone)[i])
	}

	value := cards[0].Value
	special := cards[0].IsSpecial
	for _, c := range cards[1:] {
		if c.Value != value {
			return PlayResult{}, actionError(op, playerID, "cards are not all of the same value")
		}
	}
	if !Playable(value, special, g.CurrentValue) {
		if g.CurrentValue == ValueLower {
			return PlayResult{}, actionError(op, playerID, "must play a 7 or lower")
		}
		return PlayResult{}, actionError(op, playerID, fmt.Sprintf("must play %d or higher", g.CurrentValue))
	}

	// Validation done; mutate.
	kept := make([]Card, 0, len(*zone))
	for _, c := range *zone {
		if !seen[c.ID] {
			kept = append(kept, c)
		}
	}
	*zone = kept
	for i := range cards {
		cards[i].PlayedBy = p.ID
		g.Table = append(g.Table, cards[i])
	}

	p.CanBurn = len(cards) >= burnRunLength || value == ValueBurn || g.TopRun() >= burnRunLength

	switch {
	case p.CanBurn || value == ValueReset:
		g.CurrentValue = ValueAny
	case value == ValueInvisible:
		// invisible: the previous value still has to be beaten
	default:
		g.CurrentValue = value
	}

	res := PlayResult{Played: cards, CanBurn: p.CanBurn, CurrentValue: g.CurrentValue}
	if !p.CanBurn {
		turn, err := g.endTurn()
		if err != nil {
			return PlayResult{}, err
		}
		res.Turn = &turn
	}
	return res, nil
}

// PlayHidden reveals the player's next hidden card. A legal card is played as
// if from hand; an illegal one lands face up on the pile and the player must
// pick up.
func (g *GameState) PlayHidden(playerID string) (HiddenResult, error) {
	const op = "play hidden"
	if err := g.requirePhase(op, PhasePlaying); err != nil {
		return HiddenResult{}, err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return HiddenResult{}, err
	}
	if !p.IsActive {
		return HiddenResult{}, actionError(op, playerID, "player is not active")
	}
	if p.HasHand() || p.HasTable() {
		return HiddenResult{}, actionError(op, playerID, "player cannot play hidden cards yet")
	}
	if !p.HasHidden() {
		return HiddenResult{}, actionError(op, playerID, "player has no hidden cards")
	}
	if p.CanBurn {
		return HiddenResult{}, actionError(op, playerID, "player must burn the table first")
	}

	card := pop(&p.Hidden)
	card.PlayedBy = p.ID

	if !Playable(card.Value, card.IsSpecial, g.CurrentValue) {
		g.Table = append(g.Table, card)
		p.CanPlay = false
		return HiddenResult{Card: card}, nil
	}

	p.Hand = append(p.Hand, card)
	play, err := g.PlayCards(playerID, []string{card.ID})
	if err != nil {
		return HiddenResult{}, err
	}
	return HiddenResult{Card: card, Legal: true, Play: &play}, nil
}

// Burn clears the pile to the dead pile for an active or burn-eligible player.
func (g *GameState) Burn(playerID string) (BurnResult, error) {
	const op = "burn"
	if err := g.requirePhase(op, PhasePlaying); err != nil {
		return BurnResult{}, err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return BurnResult{}, err
	}
	if !p.IsActive && !p.CanBurn {
		return BurnResult{}, actionError(op, playerID, "player is not active and cannot burn")
	}

	res := BurnResult{Burned: cloneCards(g.Table)}
	g.BurnTable()
	p.CanBurn = false

	// A burner with no cards left has nothing to play, so the burn closes the turn.
	if p.IsActive && !p.HasCards() {
		turn, err := g.endTurn()
		if err != nil {
			return BurnResult{}, err
		}
		res.Turn = &turn
	}
	return res, nil
}

// PickupTable moves the whole pile into the active player's hand and ends the turn.
func (g *GameState) PickupTable(playerID string) (PickupResult, error) {
	const op = "pickup"
	if err := g.requirePhase(op, PhasePlaying); err != nil {
		return PickupResult{}, err
	}
	p, err := g.Player(playerID)
	if err != nil {
		return PickupResult{}, err
	}
	if !p.IsActive {
		return PickupResult{}, actionError(op, playerID, "cannot pick up if the player is not active")
	}

	picked := make([]Card, 0, len(g.Table))
	for len(g.Table) > 0 {
		picked = append(picked, pop(&g.Table))
	}
	p.Hand = append(p.Hand, picked...)
	g.CurrentValue = ValueAny

	turn, err := g.endTurn()
	if err != nil {
		return PickupResult{}, err
	}
	return PickupResult{Cards: picked, Turn: turn}, nil
}

// endTurn refills the active player's hand, marks them out when empty, and
// either ends the round or hands the turn on.
func (g *GameState) endTurn() (TurnOutcome, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return TurnOutcome{}, invariantError("end turn", "no active player")
	}
	out := TurnOutcome{PlayerID: p.ID}

	for len(p.Hand) < zoneSize && len(g.Stack) > 0 {
		p.Hand = append(p.Hand, pop(&g.Stack))
		out.Drew++
	}

	if !p.HasCards() {
		p.IsOut = true
		out.WentOut = true
	}

	if g.PlayersRemaining() == 1 {
		loser, err := g.endRound()
		if err != nil {
			return TurnOutcome{}, err
		}
		out.RoundEnded = true
		out.LoserID = loser.ID
		return out, nil
	}

	next, err := g.NextPlayer()
	if err != nil {
		return TurnOutcome{}, err
	}
	p.IsActive = false
	next.IsActive = true
	next.CanPlay, _ = g.PlayerCanPlay(next.ID)

	out.NextID = next.ID
	out.NextCanPlay = next.CanPlay
	return out, nil
}

func (g *GameState) endRound() (*Player, error) {
	g.Phase = PhaseEnd
	for _, p := range g.Players {
		if !p.IsOut {
			p.IsShithead = true
			p.ShedCount++
			return p, nil
		}
	}
	return nil, invariantError("end round", "round ended but no players remaining")
}
