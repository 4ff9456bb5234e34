package bot

import (
	"sort"

	"shithead/internal/app"
	"shithead/internal/domain"
)

// forcedMove covers the turns where the rules leave no real choice: a
// pending burn, a blind reveal, or a pickup when nothing face-up is legal.
func forcedMove(game *domain.GameState, player *domain.Player) (Move, bool) {
	if player.CanBurn {
		return Move{Kind: app.ActionBurn}, true
	}
	if !player.HasHand() && !player.HasTable() {
		if player.HasHidden() && player.CanPlay {
			return Move{Kind: app.ActionPlayHidden}, true
		}
		return Move{Kind: app.ActionPickup}, true
	}
	if len(legalGroups(game, player)) == 0 {
		return Move{Kind: app.ActionPickup}, true
	}
	return Move{}, false
}

// legalGroups returns the active zone grouped by value, keeping only values
// that may go on the pile. Groups are ordered by ascending value.
func legalGroups(game *domain.GameState, player *domain.Player) [][]domain.Card {
	byValue := domain.GroupByValue(player.ActiveZone())
	values := make([]int, 0, len(byValue))
	for v, cards := range byValue {
		if domain.Playable(v, cards[0].IsSpecial, game.CurrentValue) {
			values = append(values, v)
		}
	}
	sort.Ints(values)

	groups := make([][]domain.Card, 0, len(values))
	for _, v := range values {
		groups = append(groups, byValue[v])
	}
	return groups
}

func playMove(cards []domain.Card) Move {
	return Move{Kind: app.ActionPlay, CardIDs: domain.CardIDs(cards)}
}
