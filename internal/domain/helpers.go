package domain

// GameName is advertised in labels so listings can filter on it.
const GameName = "shithead"

// LabelPayload produces the values needed for game listing advertisement.
type LabelPayload struct {
	Open    bool   `json:"open"`
	Game    string `json:"game"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
	Seats   int    `json:"seats"`
}

// ComputeLabel derives the advertised label from game state.
func ComputeLabel(g *GameState) LabelPayload {
	open := g.Phase == PhaseInit && g.NPlayers() < g.TotalPlayers
	return LabelPayload{
		Open:    open,
		Game:    GameName,
		Phase:   string(g.Phase),
		Players: g.NPlayers(),
		Seats:   g.TotalPlayers,
	}
}

// CardIDs returns the ids of cards in order.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// GroupByValue buckets cards by value, preserving order within a bucket.
func GroupByValue(cards []Card) map[int][]Card {
	groups := make(map[int][]Card)
	for _, c := range cards {
		groups[c.Value] = append(groups[c.Value], c)
	}
	return groups
}
