package domain

// HiddenCard is a face-down card as clients see it.
type HiddenCard struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// PlayerView is a sanitized player. Hand is only set for the owner; everyone
// else gets HandCount. CanBurn and CanPlay are owner-only.
type PlayerView struct {
	ID         string       `json:"id"`
	Order      int          `json:"order"`
	ShedCount  int          `json:"sh_count"`
	Hand       []Card       `json:"hand,omitempty"`
	HandCount  int          `json:"hand_count"`
	Table      []Card       `json:"table"`
	Hidden     []HiddenCard `json:"hidden"`
	IsDealer   bool         `json:"is_dealer"`
	IsActive   bool         `json:"is_active"`
	IsReady    bool         `json:"is_ready"`
	IsOut      bool         `json:"is_out"`
	IsShithead bool         `json:"is_sh"`
	CanBurn    *bool        `json:"can_burn,omitempty"`
	CanPlay    *bool        `json:"can_play,omitempty"`
}

// GameView is the game as one audience member may see it.
type GameView struct {
	Phase        Phase        `json:"status"`
	TotalPlayers int          `json:"total_players"`
	CurrentValue int          `json:"current_value"`
	Table        []Card       `json:"table"`
	StackCount   int          `json:"stack_count"`
	DeadCount    int          `json:"dead_count"`
	Players      []PlayerView `json:"players"`
}

// PlayerCounts is a player reduced to zone sizes.
type PlayerCounts struct {
	ID          string `json:"id"`
	Order       int    `json:"order"`
	HandCount   int    `json:"hand_count"`
	TableCount  int    `json:"table_count"`
	HiddenCount int    `json:"hidden_count"`
	ShedCount   int    `json:"sh_count"`
	IsDealer    bool   `json:"is_dealer"`
	IsActive    bool   `json:"is_active"`
	IsReady     bool   `json:"is_ready"`
	IsOut       bool   `json:"is_out"`
}

// TableView is the audience-wide projection: counts only, no card identities.
type TableView struct {
	Phase        Phase          `json:"status"`
	TotalPlayers int            `json:"total_players"`
	CurrentValue int            `json:"current_value"`
	TableCount   int            `json:"table_count"`
	StackCount   int            `json:"stack_count"`
	DeadCount    int            `json:"dead_count"`
	Players      []PlayerCounts `json:"players"`
}

// SanitizedView projects a player for an audience. It never mutates p.
func (p *Player) SanitizedView(forOwner bool) PlayerView {
	v := PlayerView{
		ID:         p.ID,
		Order:      p.Order,
		ShedCount:  p.ShedCount,
		HandCount:  len(p.Hand),
		Table:      cloneCards(p.Table),
		Hidden:     make([]HiddenCard, len(p.Hidden)),
		IsDealer:   p.IsDealer,
		IsActive:   p.IsActive,
		IsReady:    p.IsReady,
		IsOut:      p.IsOut,
		IsShithead: p.IsShithead,
	}
	if v.Table == nil {
		v.Table = []Card{}
	}
	for i, c := range p.Hidden {
		v.Hidden[i] = HiddenCard{ID: c.ID, Position: i}
	}
	if forOwner {
		v.Hand = cloneCards(p.Hand)
		if v.Hand == nil {
			v.Hand = []Card{}
		}
		canBurn, canPlay := p.CanBurn, p.CanPlay
		v.CanBurn = &canBurn
		v.CanPlay = &canPlay
	}
	return v
}

// ViewFor projects the game for audienceID. Any id that is not a player gets
// the spectator view.
func (g *GameState) ViewFor(audienceID string) GameView {
	v := GameView{
		Phase:        g.Phase,
		TotalPlayers: g.TotalPlayers,
		CurrentValue: g.CurrentValue,
		Table:        cloneCards(g.Table),
		StackCount:   len(g.Stack),
		DeadCount:    len(g.Dead),
		Players:      make([]PlayerView, 0, len(g.Players)),
	}
	if v.Table == nil {
		v.Table = []Card{}
	}
	for _, p := range g.Players {
		v.Players = append(v.Players, p.SanitizedView(p.ID == audienceID))
	}
	return v
}

// TableView projects the game for audience-wide broadcast.
func (g *GameState) TableView() TableView {
	v := TableView{
		Phase:        g.Phase,
		TotalPlayers: g.TotalPlayers,
		CurrentValue: g.CurrentValue,
		TableCount:   len(g.Table),
		StackCount:   len(g.Stack),
		DeadCount:    len(g.Dead),
		Players:      make([]PlayerCounts, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		v.Players = append(v.Players, PlayerCounts{
			ID:          p.ID,
			Order:       p.Order,
			HandCount:   len(p.Hand),
			TableCount:  len(p.Table),
			HiddenCount: len(p.Hidden),
			ShedCount:   p.ShedCount,
			IsDealer:    p.IsDealer,
			IsActive:    p.IsActive,
			IsReady:     p.IsReady,
			IsOut:       p.IsOut,
		})
	}
	return v
}
