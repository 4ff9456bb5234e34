package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"shithead/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// notificationSender is the slice of runtime.NakamaModule the notifier needs.
type notificationSender interface {
	NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error
}

// NakamaNotifier implements ports.NotifierPort with in-app notifications.
type NakamaNotifier struct {
	nk notificationSender
}

// NewNakamaNotifier creates a new notifier adapter.
func NewNakamaNotifier(nk notificationSender) *NakamaNotifier {
	return &NakamaNotifier{nk: nk}
}

// Notify sends every notification in one batch. Notifications are not
// persistent; clients re-fetch the view after reconnecting.
func (n *NakamaNotifier) Notify(ctx context.Context, gameID string, notes []ports.Notification) error {
	if len(notes) == 0 {
		return nil
	}
	batch := make([]*runtime.NotificationSend, 0, len(notes))
	for _, note := range notes {
		content, err := toContent(note.Content)
		if err != nil {
			return fmt.Errorf("failed to encode %s for %s: %w", note.Subject, note.UserID, err)
		}
		content["game_id"] = gameID
		batch = append(batch, &runtime.NotificationSend{
			UserID:     note.UserID,
			Subject:    note.Subject,
			Content:    content,
			Code:       notificationCodes[note.Subject],
			Persistent: false,
		})
	}
	if err := n.nk.NotificationsSend(ctx, batch); err != nil {
		return fmt.Errorf("failed to send notifications: %w", err)
	}
	return nil
}

// toContent flattens a payload struct to the map form Nakama notifications carry.
func toContent(v any) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	content := map[string]interface{}{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, err
	}
	return content, nil
}

var _ ports.NotifierPort = (*NakamaNotifier)(nil)
