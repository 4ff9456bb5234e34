package app

// Seat limits for a new game. Nine cards per player must fit in one deck.
const (
	MinPlayers = 2
	MaxPlayers = 5
)
