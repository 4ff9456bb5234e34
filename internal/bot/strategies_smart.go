package bot

import (
	"sync"

	"shithead/internal/app"
	"shithead/internal/domain"
)

// SmartBot scores every legal play through a rule pipeline and counts the
// cards it has seen leave play.
type SmartBot struct {
	Tuning Tuning
	Rules  []SelectionRule

	mu   sync.Mutex
	seen map[int]int
}

// NewSmartBot builds a SmartBot with the default tuning and rules.
func NewSmartBot() *SmartBot {
	return &SmartBot{Tuning: DefaultTuning, Rules: DefaultRules(), seen: map[int]int{}}
}

func (b *SmartBot) CalculateMove(game *domain.GameState, player *domain.Player) (Move, error) {
	if move, ok := forcedMove(game, player); ok {
		return move, nil
	}

	groups := legalGroups(game, player)
	ctx := &SelectionContext{
		Game:       game,
		Player:     player,
		Weights:    b.Tuning.ForPhase(len(game.Stack)),
		Seen:       b.snapshotSeen(),
		Candidates: make([]Candidate, 0, len(groups)),
	}
	for _, g := range groups {
		ctx.Candidates = append(ctx.Candidates, Candidate{Cards: g})
	}
	for _, rule := range b.Rules {
		rule.Apply(ctx)
	}
	return playMove(ctx.Best().Cards), nil
}

// OnEvent counts cards that went face up on the pile. A round end resets the count.
func (b *SmartBot) OnEvent(event app.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen == nil {
		b.seen = map[int]int{}
	}
	switch p := event.Payload.(type) {
	case app.CardsPlayedPayload:
		for _, c := range p.Cards {
			b.seen[c.Value]++
		}
	case app.HiddenRevealedPayload:
		// legal reveals are counted by the cards_played event that follows
		if !p.Legal {
			b.seen[p.Card.Value]++
		}
	case app.RoundEndedPayload:
		b.seen = map[int]int{}
	}
}

func (b *SmartBot) snapshotSeen() map[int]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[int]int, len(b.seen))
	for v, n := range b.seen {
		out[v] = n
	}
	return out
}
