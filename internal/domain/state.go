package domain

// Phase represents the lifecycle stage of a game. Transitions only move forward.
type Phase string

const (
	// PhaseInit is the lobby stage where players join.
	PhaseInit Phase = "INIT"
	// PhaseDeal waits for the dealer to deal once the table is full.
	PhaseDeal Phase = "DEAL"
	// PhasePrep lets players swap hand and table cards before readying up.
	PhasePrep Phase = "PREP"
	// PhasePlaying is the active game.
	PhasePlaying Phase = "PLAYING"
	// PhaseEnd is reached when one player is left holding cards.
	PhaseEnd Phase = "END"
)

// GameState is the authoritative snapshot of a single game.
type GameState struct {
	Phase        Phase     `json:"status"`
	TotalPlayers int       `json:"total_players"`
	Players      []*Player `json:"players"`
	Table        []Card    `json:"table"` // oldest first
	Stack        []Card    `json:"stack"`
	Dead         []Card    `json:"dead"`
	CurrentValue int       `json:"current_value"`

	// DeckSalt seeds card ids and is never projected to clients.
	DeckSalt string `json:"deck_salt"`
}

// NewGameState returns an INIT-phase game whose draw stack holds deck.
func NewGameState(totalPlayers int, deck []Card, salt string) *GameState {
	return &GameState{
		Phase:        PhaseInit,
		TotalPlayers: totalPlayers,
		Players:      []*Player{},
		Table:        []Card{},
		Stack:        deck,
		Dead:         []Card{},
		DeckSalt:     salt,
	}
}

// Clone returns a deep copy safe to mutate independently.
func (g *GameState) Clone() *GameState {
	cp := *g
	cp.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp.Players[i] = p.clone()
	}
	cp.Table = cloneCards(g.Table)
	cp.Stack = cloneCards(g.Stack)
	cp.Dead = cloneCards(g.Dead)
	return &cp
}

func (g *GameState) NPlayers() int { return len(g.Players) }

// PlayersReady counts players that confirmed their table.
func (g *GameState) PlayersReady() int {
	n := 0
	for _, p := range g.Players {
		if p.IsReady {
			n++
		}
	}
	return n
}

// PlayersRemaining counts players that still hold cards.
func (g *GameState) PlayersRemaining() int {
	n := 0
	for _, p := range g.Players {
		if !p.IsOut {
			n++
		}
	}
	return n
}

// Player looks a player up by id.
func (g *GameState) Player(id string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, playerNotFound("player", id)
}

// ActivePlayer returns the player whose turn it is. Having none is a defect.
func (g *GameState) ActivePlayer() (*Player, error) {
	for _, p := range g.Players {
		if p.IsActive {
			return p, nil
		}
	}
	return nil, &GameError{Kind: ErrNotFound, Op: "active player", Msg: "no active player"}
}

// NextPlayer returns the first player after the active one, by turn order and
// wrapping around, that is not out. The active player is never returned.
func (g *GameState) NextPlayer() (*Player, error) {
	active, err := g.ActivePlayer()
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int]*Player, len(g.Players))
	for _, p := range g.Players {
		byOrder[p.Order] = p
	}
	n := len(g.Players)
	for step := 1; step < n; step++ {
		p, ok := byOrder[(active.Order+step)%n]
		if ok && !p.IsOut {
			return p, nil
		}
	}
	return nil, invariantError("next player", "no other player remaining")
}

// Playable reports whether a card of the given value and speciality may go
// on a pile whose value to beat is current.
func Playable(value int, special bool, current int) bool {
	if special {
		return true
	}
	if current == ValueLower {
		return value <= ValueLower
	}
	return value >= current
}

// PlayerCanPlay reports whether the player has any legal move on the current pile.
// A player with only hidden cards can always attempt a reveal.
func (g *GameState) PlayerCanPlay(id string) (bool, error) {
	p, err := g.Player(id)
	if err != nil {
		return false, err
	}
	if p.HasSpecial() {
		return true, nil
	}
	for _, c := range p.ActiveZone() {
		if Playable(c.Value, false, g.CurrentValue) {
			return true, nil
		}
	}
	return !p.HasHand() && !p.HasTable() && p.HasHidden(), nil
}

// BurnTable moves the shared pile to the dead pile and resets the value to beat.
func (g *GameState) BurnTable() {
	g.Dead = append(g.Dead, g.Table...)
	g.Table = []Card{}
	g.CurrentValue = ValueAny
}

// TopRun returns how many cards at the top of the pile share the top card's value.
func (g *GameState) TopRun() int {
	if len(g.Table) == 0 {
		return 0
	}
	top := g.Table[len(g.Table)-1].Value
	n := 0
	for i := len(g.Table) - 1; i >= 0 && g.Table[i].Value == top; i-- {
		n++
	}
	return n
}
