package bot

import (
	"testing"

	"shithead/internal/domain"
)

func selection(g *domain.GameState, p *domain.Player, groups ...[]domain.Card) *SelectionContext {
	ctx := &SelectionContext{Game: g, Player: p, Weights: DefaultTuning.Drawing, Seen: map[int]int{}}
	for _, cards := range groups {
		ctx.Candidates = append(ctx.Candidates, Candidate{Cards: cards})
	}
	return ctx
}

func TestCompleteRunRule(t *testing.T) {
	g, p := playing(cards("8S", "9C"), cards("8C", "8D", "8H"), 8)
	ctx := selection(g, p, cards("8S"), cards("9C"))

	(&CompleteRunRule{}).Apply(ctx)
	if ctx.Candidates[0].Score != ctx.Weights.BurnBonus || ctx.Candidates[1].Score != 0 {
		t.Fatalf("scores = %v, %v", ctx.Candidates[0].Score, ctx.Candidates[1].Score)
	}
}

func TestFinishZoneRule(t *testing.T) {
	g, p := playing(cards("KC", "KD"), []domain.Card{}, domain.ValueAny)
	ctx := selection(g, p, p.Hand)
	ctx.Weights = DefaultTuning.Endgame

	(&FinishZoneRule{}).Apply(ctx)
	if ctx.Candidates[0].Score != 0 {
		t.Fatalf("no bonus while the stack can refill the hand, got %v", ctx.Candidates[0].Score)
	}

	g.Stack = []domain.Card{}
	(&FinishZoneRule{}).Apply(ctx)
	if ctx.Candidates[0].Score != DefaultTuning.Endgame.FinishBonus {
		t.Fatalf("score = %v, want finish bonus", ctx.Candidates[0].Score)
	}
}

func TestSaveSpecialsRule(t *testing.T) {
	g, p := playing(cards("10H", "9S"), []domain.Card{}, 8)
	ctx := selection(g, p, cards("9S"), cards("10H"))
	(&SaveSpecialsRule{}).Apply(ctx)
	if ctx.Candidates[1].Score >= ctx.Candidates[0].Score {
		t.Fatalf("special should score below the plain card")
	}

	only := selection(g, p, cards("10H"))
	(&SaveSpecialsRule{}).Apply(only)
	if only.Candidates[0].Score != 0 {
		t.Fatalf("a lone special must not be penalized")
	}
}

func TestBestPrefersFirstOnTies(t *testing.T) {
	g, p := playing(cards("5C", "6C"), []domain.Card{}, domain.ValueAny)
	ctx := selection(g, p, cards("5C"), cards("6C"))
	if best := ctx.Best(); best.Cards[0].Value != 5 {
		t.Fatalf("best = %+v, want the five", best)
	}
}

func TestTuningForPhase(t *testing.T) {
	if DefaultTuning.ForPhase(10) != DefaultTuning.Drawing {
		t.Fatal("non-empty stack should use drawing weights")
	}
	if DefaultTuning.ForPhase(0) != DefaultTuning.Endgame {
		t.Fatal("empty stack should use endgame weights")
	}
}
