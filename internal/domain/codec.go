package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeState serializes a snapshot for storage.
func EncodeState(g *GameState) ([]byte, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode game state: %w", err)
	}
	return raw, nil
}

// DecodeState restores a snapshot written by EncodeState.
func DecodeState(raw []byte) (*GameState, error) {
	var g GameState
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	if g.Phase == "" {
		return nil, fmt.Errorf("decode game state: missing status")
	}
	return &g, nil
}
