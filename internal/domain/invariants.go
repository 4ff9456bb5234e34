package domain

import "fmt"

// CheckInvariants verifies that every card of the configured deck sits in
// exactly one zone, that turn orders are dense and unique, and that exactly
// one player is active while playing.
func (g *GameState) CheckInvariants(cfg DeckConfig) error {
	const op = "check invariants"

	seen := make(map[string]string, cfg.Size())
	place := func(zone string, cards []Card) error {
		for _, c := range cards {
			if prev, dup := seen[c.ID]; dup {
				return invariantError(op, fmt.Sprintf("card %s%s in both %s and %s", c.Rank, c.Suit, prev, zone))
			}
			seen[c.ID] = zone
		}
		return nil
	}

	orders := make(map[int]bool, len(g.Players))
	active := 0
	for _, p := range g.Players {
		for zone, cards := range map[string][]Card{"hand": p.Hand, "table": p.Table, "hidden": p.Hidden} {
			if err := place(p.ID+"/"+zone, cards); err != nil {
				return err
			}
		}
		if p.Order < 0 || p.Order >= len(g.Players) || orders[p.Order] {
			return invariantError(op, fmt.Sprintf("player %s has invalid turn order %d", p.ID, p.Order))
		}
		orders[p.Order] = true
		if p.IsActive {
			active++
		}
	}
	for zone, cards := range map[string][]Card{"pile": g.Table, "stack": g.Stack, "dead": g.Dead} {
		if err := place(zone, cards); err != nil {
			return err
		}
	}

	for _, c := range NewDeck(cfg, g.DeckSalt) {
		if _, ok := seen[c.ID]; !ok {
			return invariantError(op, fmt.Sprintf("card %s%s missing", c.Rank, c.Suit))
		}
	}
	if len(seen) != cfg.Size() {
		return invariantError(op, fmt.Sprintf("%d distinct cards, want %d", len(seen), cfg.Size()))
	}

	if g.Phase == PhasePlaying && active != 1 {
		return invariantError(op, fmt.Sprintf("%d active players while playing", active))
	}
	if active > 1 {
		return invariantError(op, fmt.Sprintf("%d active players", active))
	}
	return nil
}
