package app

import "shithead/internal/domain"

// EventKind identifies emitted game events for notification fan-out.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventCardsDealt     EventKind = "cards_dealt"
	EventCardsSwapped   EventKind = "cards_swapped"
	EventPlayerReady    EventKind = "player_ready"
	EventGameStarted    EventKind = "game_started"
	EventCardsPlayed    EventKind = "cards_played"
	EventHiddenRevealed EventKind = "hidden_revealed"
	EventTableBurned    EventKind = "table_burned"
	EventTablePickedUp  EventKind = "table_picked_up"
	EventTurnPassed     EventKind = "turn_passed"
	EventPlayerOut      EventKind = "player_out"
	EventRoundEnded     EventKind = "round_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player ids; empty means every player in the game
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Order    int    `json:"order"`
	Dealer   bool   `json:"dealer"`
}

type CardsDealtPayload struct {
	PlayerID    string        `json:"player_id"`
	Hand        []domain.Card `json:"hand"`
	Table       []domain.Card `json:"table"`
	HiddenCount int           `json:"hidden_count"`
}

type CardsSwappedPayload struct {
	PlayerID    string `json:"player_id"`
	HandCardID  string `json:"hand_card_id"`
	TableCardID string `json:"table_card_id"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
}

type GameStartedPayload struct {
	ActivePlayerID string `json:"active_player_id"`
	CanPlay        bool   `json:"can_play"`
}

type CardsPlayedPayload struct {
	PlayerID     string        `json:"player_id"`
	Cards        []domain.Card `json:"cards"`
	CurrentValue int           `json:"current_value"`
	CanBurn      bool          `json:"can_burn"`
}

type HiddenRevealedPayload struct {
	PlayerID string      `json:"player_id"`
	Card     domain.Card `json:"card"`
	Legal    bool        `json:"legal"`
}

type TableBurnedPayload struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type TablePickedUpPayload struct {
	PlayerID string        `json:"player_id"`
	Cards    []domain.Card `json:"cards"`
}

type TurnPassedPayload struct {
	PlayerID     string `json:"player_id"`
	NextPlayerID string `json:"next_player_id"`
	NextCanPlay  bool   `json:"next_can_play"`
	Drew         int    `json:"drew"`
}

type PlayerOutPayload struct {
	PlayerID string `json:"player_id"`
}

type RoundEndedPayload struct {
	LoserID   string `json:"loser_id"`
	ShedCount int    `json:"sh_count"`
}
