// Package event defines the notifications emitted when a user's state changes.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeLedgerAppended = "ledger_appended"
	TypeSkillsUpdated  = "skills_updated"
	TypeProfileUpdated = "profile_updated"
	TypeUserCreated    = "user_created"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ string, userID uuid.UUID, data any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events. Delivery is best effort: a failed publish must
// never undo the state change that produced the event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every publisher and returns the first error after
// trying all of them.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var firstErr error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
