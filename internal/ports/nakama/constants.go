package nakama

import "shithead/internal/app"

// RPC ids registered with Nakama.
const (
	RpcCreateGame = "shd_create"
	RpcAction     = "shd_action"
	RpcView       = "shd_view"
	RpcTicket     = "shd_ticket"
)

// Nakama gRPC-style status codes used by runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
	codeUnauthenticated    = 16
)

// Notification codes, one per subject. Nakama reserves codes <= 0.
const (
	NotifyPlayerJoined   = 101
	NotifyCardsDealt     = 102 // sent privately
	NotifyCardsSwapped   = 103
	NotifyPlayerReady    = 104
	NotifyGameStarted    = 105
	NotifyCardsPlayed    = 106
	NotifyHiddenRevealed = 107
	NotifyTableBurned    = 108
	NotifyTablePickedUp  = 109
	NotifyTurnPassed     = 110
	NotifyPlayerOut      = 111
	NotifyRoundEnded     = 112

	NotifyGameView  = 120 // sent privately
	NotifyTableView = 121
)

var notificationCodes = map[string]int{
	string(app.EventPlayerJoined):   NotifyPlayerJoined,
	string(app.EventCardsDealt):     NotifyCardsDealt,
	string(app.EventCardsSwapped):   NotifyCardsSwapped,
	string(app.EventPlayerReady):    NotifyPlayerReady,
	string(app.EventGameStarted):    NotifyGameStarted,
	string(app.EventCardsPlayed):    NotifyCardsPlayed,
	string(app.EventHiddenRevealed): NotifyHiddenRevealed,
	string(app.EventTableBurned):    NotifyTableBurned,
	string(app.EventTablePickedUp):  NotifyTablePickedUp,
	string(app.EventTurnPassed):     NotifyTurnPassed,
	string(app.EventPlayerOut):      NotifyPlayerOut,
	string(app.EventRoundEnded):     NotifyRoundEnded,
	app.SubjectGameView:             NotifyGameView,
	app.SubjectTableView:            NotifyTableView,
}
