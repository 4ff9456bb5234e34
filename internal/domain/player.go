package domain

// Player holds one participant's card zones and per-turn flags.
type Player struct {
	ID        string `json:"id"`
	Order     int    `json:"order"`
	ShedCount int    `json:"sh_count"`
	Hand      []Card `json:"hand"`
	Table     []Card `json:"table"`  // face up, fixed at deal time
	Hidden    []Card `json:"hidden"` // face down, fixed at deal time

	IsDealer   bool `json:"is_dealer"`
	IsActive   bool `json:"is_active"`
	IsReady    bool `json:"is_ready"`
	IsOut      bool `json:"is_out"`
	IsShithead bool `json:"is_sh"`
	CanBurn    bool `json:"can_burn"`
	CanPlay    bool `json:"can_play"`
}

func (p *Player) HasHand() bool   { return len(p.Hand) > 0 }
func (p *Player) HasTable() bool  { return len(p.Table) > 0 }
func (p *Player) HasHidden() bool { return len(p.Hidden) > 0 }

// HasCards reports whether any zone still holds a card.
func (p *Player) HasCards() bool {
	return p.HasHand() || p.HasTable() || p.HasHidden()
}

// ActiveZone is the face-up zone cards are played from: hand while it has
// cards, table otherwise.
func (p *Player) ActiveZone() []Card {
	if p.HasHand() {
		return p.Hand
	}
	return p.Table
}

func (p *Player) activeZoneRef() (*[]Card, string) {
	if p.HasHand() {
		return &p.Hand, "hand"
	}
	return &p.Table, "table"
}

// HasSpecial reports whether the active zone holds a special-rank card.
func (p *Player) HasSpecial() bool {
	for _, c := range p.ActiveZone() {
		if c.IsSpecial {
			return true
		}
	}
	return false
}

// SwapHandForTable exchanges one hand card with one table card in place.
func (p *Player) SwapHandForTable(handCardID, tableCardID string) error {
	const op = "swap"
	if p.IsReady {
		return actionError(op, p.ID, "player already ready")
	}
	hi := indexOfCard(p.Hand, handCardID)
	if hi < 0 {
		return cardNotFound(op, p.ID, handCardID, "hand")
	}
	ti := indexOfCard(p.Table, tableCardID)
	if ti < 0 {
		return cardNotFound(op, p.ID, tableCardID, "table")
	}
	p.Hand[hi], p.Table[ti] = p.Table[ti], p.Hand[hi]
	return nil
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Hand = cloneCards(p.Hand)
	cp.Table = cloneCards(p.Table)
	cp.Hidden = cloneCards(p.Hidden)
	return &cp
}
