package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userState is a user together with the ledger snapshot its points were
// derived from.
type userState struct {
	User    user.User
	Entries []ledger.Entry
}

func loadUser(ctx context.Context, users user.Repository, userID uuid.UUID) (user.User, error) {
	if userID == uuid.Nil {
		return user.User{}, ErrInvalidInput
	}
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return u, nil
}

// loadState reads the user and the ledger. LifePoints is recomputed from the
// entries, so it always equals a prefix sum of the append sequence.
func loadState(ctx context.Context, users user.Repository, l ledger.Ledger, userID uuid.UUID) (userState, error) {
	u, err := loadUser(ctx, users, userID)
	if err != nil {
		return userState{}, err
	}
	entries, err := l.Entries(ctx, userID)
	if err != nil {
		return userState{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	u.LifePoints = sumPoints(entries)
	return userState{User: u, Entries: entries}, nil
}

func sumPoints(entries []ledger.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Points
	}
	return total
}

func publish(ctx context.Context, pub event.Publisher, logger *zap.Logger, e event.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		logger.Warn("event publish failed",
			zap.String("type", e.Type),
			zap.Stringer("user_id", e.UserID),
			zap.Error(err),
		)
	}
}

func invalidateListings(ctx context.Context, cache ListingCache, logger *zap.Logger, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.DeleteByPrefix(ctx, ListingPrefix(userID)); err != nil {
		logger.Warn("listing cache invalidation failed", zap.Stringer("user_id", userID), zap.Error(err))
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
