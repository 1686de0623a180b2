package ws

import (
	"context"
	"encoding/json"

	"skill-match/internal/domain/event"
)

// Notifier pushes domain events to the owning user's open connections.
type Notifier struct {
	hub *Hub
}

var _ event.Publisher = (*Notifier)(nil)

func NewNotifier(h *Hub) *Notifier {
	return &Notifier{hub: h}
}

func (n *Notifier) Publish(_ context.Context, e event.Event) error {
	if n == nil || n.hub == nil {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	n.hub.Send(e.UserID, b)
	return nil
}
