package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	// ErrInvalidState means the action is not legal in the current phase.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidAction means the phase is right but a player or rule check failed.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotFound means a referenced player or card is not where it was claimed to be.
	ErrNotFound = errors.New("not found")
	// ErrInvariant is a defect in the state itself, never a user mistake.
	ErrInvariant = errors.New("invariant violation")
)

// GameError carries the detail a caller needs to build a user-facing message.
type GameError struct {
	Kind     error
	Op       string
	PlayerID string
	CardID   string
	Expected Phase
	Actual   Phase
	Msg      string
}

func (e *GameError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected phase %s, got %s)", e.Expected, e.Actual)
	}
	if e.PlayerID != "" {
		fmt.Fprintf(&b, " [player %s]", e.PlayerID)
	}
	if e.CardID != "" {
		fmt.Fprintf(&b, " [card %s]", e.CardID)
	}
	return b.String()
}

func (e *GameError) Unwrap() error { return e.Kind }

func phaseError(op string, expected, actual Phase) error {
	return &GameError{Kind: ErrInvalidState, Op: op, Expected: expected, Actual: actual}
}

func actionError(op, playerID, msg string) error {
	return &GameError{Kind: ErrInvalidAction, Op: op, PlayerID: playerID, Msg: msg}
}

func playerNotFound(op, playerID string) error {
	return &GameError{Kind: ErrNotFound, Op: op, PlayerID: playerID, Msg: "player not in game"}
}

func cardNotFound(op, playerID, cardID, zone string) error {
	return &GameError{Kind: ErrNotFound, Op: op, PlayerID: playerID, CardID: cardID, Msg: "card not in " + zone}
}

func invariantError(op, msg string) error {
	return &GameError{Kind: ErrInvariant, Op: op, Msg: msg}
}
