package bot

import (
	"shithead/internal/domain"
)

// Candidate is one legal play with its running score.
type Candidate struct {
	Cards []domain.Card
	Score float64
}

// SelectionContext holds the state for the play selection pipeline.
type SelectionContext struct {
	Game       *domain.GameState
	Player     *domain.Player
	Weights    PhaseWeights
	Seen       map[int]int // copies of each value known to have left play
	Candidates []Candidate
}

// SelectionRule represents a logic unit that adjusts candidate scores.
type SelectionRule interface {
	Name() string
	Apply(ctx *SelectionContext)
}

// Best returns the highest scoring candidate, preferring the lower value on ties.
func (ctx *SelectionContext) Best() Candidate {
	best := ctx.Candidates[0]
	for _, c := range ctx.Candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// LowValueRule prefers shedding low cards and keeping high ones.
type LowValueRule struct{}

func (r *LowValueRule) Name() string { return "LowValue" }

func (r *LowValueRule) Apply(ctx *SelectionContext) {
	top := 0
	for _, c := range ctx.Candidates {
		if v := c.Cards[0].Value; v > top {
			top = v
		}
	}
	for i := range ctx.Candidates {
		ctx.Candidates[i].Score += float64(top-ctx.Candidates[i].Cards[0].Value) * ctx.Weights.LowValueWeight
	}
}

// GroupSizeRule prefers playing more cards at once.
type GroupSizeRule struct{}

func (r *GroupSizeRule) Name() string { return "GroupSize" }

func (r *GroupSizeRule) Apply(ctx *SelectionContext) {
	for i := range ctx.Candidates {
		ctx.Candidates[i].Score += float64(len(ctx.Candidates[i].Cards)-1) * ctx.Weights.GroupWeight
	}
}

// SaveSpecialsRule penalizes specials while a plain card is also legal.
type SaveSpecialsRule struct{}

func (r *SaveSpecialsRule) Name() string { return "SaveSpecials" }

func (r *SaveSpecialsRule) Apply(ctx *SelectionContext) {
	plain := false
	for _, c := range ctx.Candidates {
		if !c.Cards[0].IsSpecial {
			plain = true
			break
		}
	}
	if !plain {
		return
	}
	for i := range ctx.Candidates {
		if ctx.Candidates[i].Cards[0].IsSpecial {
			ctx.Candidates[i].Score -= ctx.Weights.SpecialPenalty
		}
	}
}

// CompleteRunRule rewards plays that finish four of a kind on the pile.
type CompleteRunRule struct{}

func (r *CompleteRunRule) Name() string { return "CompleteRun" }

func (r *CompleteRunRule) Apply(ctx *SelectionContext) {
	table := ctx.Game.Table
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		run := len(c.Cards)
		if len(table) > 0 && table[len(table)-1].Value == c.Cards[0].Value {
			run += ctx.Game.TopRun()
		}
		if run >= 4 {
			c.Score += ctx.Weights.BurnBonus
		}
	}
}

// FinishZoneRule rewards plays that empty the active zone.
type FinishZoneRule struct{}

func (r *FinishZoneRule) Name() string { return "FinishZone" }

func (r *FinishZoneRule) Apply(ctx *SelectionContext) {
	if len(ctx.Game.Stack) > 0 && ctx.Player.HasHand() {
		return
	}
	zone := len(ctx.Player.ActiveZone())
	for i := range ctx.Candidates {
		if len(ctx.Candidates[i].Cards) == zone {
			ctx.Candidates[i].Score += ctx.Weights.FinishBonus
		}
	}
}

// ScarcityRule prefers values whose remaining copies are mostly accounted
// for, since opponents are less likely to stack on them.
type ScarcityRule struct{}

func (r *ScarcityRule) Name() string { return "Scarcity" }

func (r *ScarcityRule) Apply(ctx *SelectionContext) {
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		known := ctx.Seen[c.Cards[0].Value] + len(c.Cards)
		c.Score += float64(known) * ctx.Weights.ScarcityWeight
	}
}

// DefaultRules is the pipeline SmartBot runs.
func DefaultRules() []SelectionRule {
	return []SelectionRule{
		&LowValueRule{},
		&GroupSizeRule{},
		&SaveSpecialsRule{},
		&CompleteRunRule{},
		&FinishZoneRule{},
		&ScarcityRule{},
	}
}
