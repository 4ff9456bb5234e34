package bot

import (
	"shithead/internal/app"
	"shithead/internal/domain"
)

// GoodBot sheds its lowest legal value every turn, specials included.
type GoodBot struct{}

func (b *GoodBot) CalculateMove(game *domain.GameState, player *domain.Player) (Move, error) {
	if move, ok := forcedMove(game, player); ok {
		return move, nil
	}
	groups := legalGroups(game, player)
	return playMove(groups[0]), nil
}

func (b *GoodBot) OnEvent(app.Event) {}
