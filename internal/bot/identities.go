package bot

import (
	"encoding/json"
	"fmt"
	"os"
)

// BotIdentity is one entry of a bot roster file.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "hard"
}

// Roster is the pool of bot identities available to seat.
type Roster struct {
	identities []BotIdentity
	byID       map[string]BotIdentity
}

// NewRoster indexes identities. Entries without a user id are skipped.
func NewRoster(identities []BotIdentity) *Roster {
	r := &Roster{byID: make(map[string]BotIdentity, len(identities))}
	for _, identity := range identities {
		if identity.UserID == "" {
			continue
		}
		r.identities = append(r.identities, identity)
		r.byID[identity.UserID] = identity
	}
	return r
}

// LoadRoster loads the bot profiles from the given path.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bot identities: %w", err)
	}
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	return NewRoster(identities), nil
}

// Identity returns an identity for a bot by index (mod pool size).
// An empty roster hands out generated identities.
func (r *Roster) Identity(index int) BotIdentity {
	if len(r.identities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return r.identities[index%len(r.identities)]
}

// IsBot reports whether the given user ID belongs to the roster.
func (r *Roster) IsBot(userID string) bool {
	_, ok := r.byID[userID]
	return ok
}

// DisplayName returns the display name for a bot ID, or an empty string if not a bot.
func (r *Roster) DisplayName(userID string) string {
	return r.byID[userID].DisplayName
}

// NewAgent seats the identity at index with the brain its difficulty asks for.
func (r *Roster) NewAgent(index int) (*Agent, error) {
	identity := r.Identity(index)
	level, err := ParseLevel(identity.Difficulty)
	if err != nil {
		return nil, err
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}, nil
}
