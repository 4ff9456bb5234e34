package app

// ActionKind names a player action.
type ActionKind string

const (
	ActionJoin       ActionKind = "JOIN"
	ActionDeal       ActionKind = "DEAL"
	ActionSwap       ActionKind = "SWAP"
	ActionReady      ActionKind = "READY"
	ActionPlay       ActionKind = "PLAY"
	ActionPlayHidden ActionKind = "PLAY_HIDDEN"
	ActionPickup     ActionKind = "PICKUP"
	ActionBurn       ActionKind = "BURN"
)

// Action is a single player command. Only the fields of its kind are read:
// CardIDs for PLAY, HandCardID and TableCardID for SWAP.
type Action struct {
	Kind        ActionKind `json:"kind"`
	PlayerID    string     `json:"player_id"`
	CardIDs     []string   `json:"card_ids,omitempty"`
	HandCardID  string     `json:"hand_card_id,omitempty"`
	TableCardID string     `json:"table_card_id,omitempty"`
}

func Join(playerID string) Action       { return Action{Kind: ActionJoin, PlayerID: playerID} }
func Deal(playerID string) Action       { return Action{Kind: ActionDeal, PlayerID: playerID} }
func Ready(playerID string) Action      { return Action{Kind: ActionReady, PlayerID: playerID} }
func PlayHidden(playerID string) Action { return Action{Kind: ActionPlayHidden, PlayerID: playerID} }
func Pickup(playerID string) Action     { return Action{Kind: ActionPickup, PlayerID: playerID} }
func Burn(playerID string) Action       { return Action{Kind: ActionBurn, PlayerID: playerID} }

func Swap(playerID, handCardID, tableCardID string) Action {
	return Action{Kind: ActionSwap, PlayerID: playerID, HandCardID: handCardID, TableCardID: tableCardID}
}

func Play(playerID string, cardIDs ...string) Action {
	return Action{Kind: ActionPlay, PlayerID: playerID, CardIDs: cardIDs}
}
