package bot

// PhaseWeights scores a candidate play. Positive weights favour a feature.
type PhaseWeights struct {
	LowValueWeight float64 // per value point below the top rank
	GroupWeight    float64 // per extra card shed in one play
	SpecialPenalty float64 // for spending a special while a plain card would do
	BurnBonus      float64 // for completing a run of four on the pile
	FinishBonus    float64 // for emptying the active zone
	ScarcityWeight float64 // per copy of the value already accounted for
}

// Tuning holds weights for the two halves of a round: while the draw stack
// still refills hands, and after it runs out.
type Tuning struct {
	Drawing PhaseWeights
	Endgame PhaseWeights
}

// ForPhase picks the weights for the current stack size.
func (t Tuning) ForPhase(stackCount int) PhaseWeights {
	if stackCount == 0 {
		return t.Endgame
	}
	return t.Drawing
}

// DefaultTuning saves specials while the stack refills hands and sheds
// aggressively once it is empty.
var DefaultTuning = Tuning{
	Drawing: PhaseWeights{
		LowValueWeight: 1.0,
		GroupWeight:    0.5,
		SpecialPenalty: 12.0,
		BurnBonus:      4.0,
		FinishBonus:    0,
		ScarcityWeight: 0.3,
	},
	Endgame: PhaseWeights{
		LowValueWeight: 0.6,
		GroupWeight:    2.0,
		SpecialPenalty: 4.0,
		BurnBonus:      6.0,
		FinishBonus:    20.0,
		ScarcityWeight: 0.5,
	},
}
