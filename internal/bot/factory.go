package bot

import (
	"fmt"
	"strings"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota + 1
	BotLevelSmart
)

// ParseLevel maps a difficulty name to a level.
func ParseLevel(difficulty string) (BotLevel, error) {
	switch strings.ToLower(difficulty) {
	case "", "easy", "good":
		return BotLevelGood, nil
	case "hard", "smart":
		return BotLevelSmart, nil
	default:
		return 0, fmt.Errorf("unknown bot difficulty: %q", difficulty)
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return NewSmartBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
