package bot

import (
	"fmt"

	"shithead/internal/app"
	"shithead/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Next returns the action the agent wants to take in game, or false when it
// has nothing to do right now.
func (a *Agent) Next(game *domain.GameState) (app.Action, bool, error) {
	player, err := game.Player(a.ID)
	if err != nil {
		// Agent is not part of this game
		return app.Action{}, false, nil
	}

	switch game.Phase {
	case domain.PhaseDeal:
		if player.IsDealer {
			return app.Deal(a.ID), true, nil
		}
	case domain.PhasePrep:
		if player.IsReady {
			return app.Action{}, false, nil
		}
		if hand, table, ok := prepSwap(player); ok {
			return app.Swap(a.ID, hand, table), true, nil
		}
		return app.Ready(a.ID), true, nil
	case domain.PhasePlaying:
		if !player.IsActive && !player.CanBurn {
			return app.Action{}, false, nil
		}
		move, err := a.Strategy.CalculateMove(game, player)
		if err != nil {
			return app.Action{}, false, fmt.Errorf("bot %s: %w", a.ID, err)
		}
		return a.toAction(move), true, nil
	}
	return app.Action{}, false, nil
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event app.Event) {
	a.Strategy.OnEvent(event)
}

func (a *Agent) toAction(m Move) app.Action {
	return app.Action{
		Kind:        m.Kind,
		PlayerID:    a.ID,
		CardIDs:     m.CardIDs,
		HandCardID:  m.HandCardID,
		TableCardID: m.TableCardID,
	}
}

// prepSwap proposes moving the strongest hand card onto the table in place of
// the weakest table card. Each accepted swap raises the table's total
// strength, so repeated calls settle.
func prepSwap(p *domain.Player) (string, string, bool) {
	if len(p.Hand) == 0 || len(p.Table) == 0 {
		return "", "", false
	}
	best, worst := p.Hand[0], p.Table[0]
	for _, c := range p.Hand[1:] {
		if strength(c) > strength(best) {
			best = c
		}
	}
	for _, c := range p.Table[1:] {
		if strength(c) < strength(worst) {
			worst = c
		}
	}
	if strength(best) <= strength(worst) {
		return "", "", false
	}
	return best.ID, worst.ID, true
}

// strength ranks cards for keeping: specials above everything, then value.
func strength(c domain.Card) int {
	if c.IsSpecial {
		return 100 + c.Value
	}
	return c.Value
}
