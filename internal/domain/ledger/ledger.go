// Package ledger keeps the append-only points history of each user.
//
// The total a reader observes always equals the sum over some prefix of the
// user's append sequence. The ledger does not deduplicate: logging the same
// action twice awards its points twice.
package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNegativePoints = errors.New("ledger: negative points")
	ErrInvalidAction  = errors.New("ledger: invalid action")
	ErrUnknownUser    = errors.New("ledger: unknown user")
)

type Ledger interface {
	Append(ctx context.Context, userID uuid.UUID, action Action) (Entry, error)
	Total(ctx context.Context, userID uuid.UUID) (int, error)
	// Entries returns a snapshot in append order.
	Entries(ctx context.Context, userID uuid.UUID) ([]Entry, error)
}

func validateAction(a Action) error {
	if a.ID == "" {
		return ErrInvalidAction
	}
	if a.Points < 0 {
		return ErrNegativePoints
	}
	return nil
}
