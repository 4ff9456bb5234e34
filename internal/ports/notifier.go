package ports

import "context"

// Notification is a single message addressed to one user.
type Notification struct {
	UserID  string
	Subject string
	Content any
}

// NotifierPort delivers per-user messages produced by a game update.
type NotifierPort interface {
	// Notify sends all notifications for one game update.
	// Delivery is best effort; the caller has already persisted the state.
	Notify(ctx context.Context, gameID string, notes []Notification) error
}
