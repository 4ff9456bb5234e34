package bot

import (
	"shithead/internal/app"
	"shithead/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	Kind        app.ActionKind
	CardIDs     []string
	HandCardID  string
	TableCardID string
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// CalculateMove picks a play for an active player in the PLAYING phase.
	CalculateMove(game *domain.GameState, player *domain.Player) (Move, error)
	OnEvent(event app.Event)
}
