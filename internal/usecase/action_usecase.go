package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lifePointsMirror is implemented by user stores that keep a copy of the
// ledger total outside the ledger itself.
type lifePointsMirror interface {
	SetLifePoints(ctx context.Context, id uuid.UUID, points int) error
}

// ActionResult is the state after one ledger append.
type ActionResult struct {
	LifePoints int
	BadgeLevel string
	Progress   ledger.Progress
	Entry      ledger.Entry
}

type ActionUsecase interface {
	LogAction(ctx context.Context, userID uuid.UUID, actionID string) (ActionResult, error)
}

type ActionOptions struct {
	DedupeDaily bool
}

type Action struct {
	users   user.Repository
	ledger  ledger.Ledger
	catalog *catalog.Catalog
	badges  ledger.BadgeTable
	guard   *DailyGuard
	cache   ListingCache
	events  event.Publisher
	logger  *zap.Logger
	opts    ActionOptions
	now     func() time.Time
}

func NewActionUsecase(
	users user.Repository,
	l ledger.Ledger,
	cat *catalog.Catalog,
	badges ledger.BadgeTable,
	guard *DailyGuard,
	cache ListingCache,
	events event.Publisher,
	logger *zap.Logger,
	opts ActionOptions,
) *Action {
	return &Action{
		users:   users,
		ledger:  l,
		catalog: cat,
		badges:  badges,
		guard:   guard,
		cache:   cache,
		events:  events,
		logger:  orNop(logger),
		opts:    opts,
		now:     time.Now,
	}
}

// LogAction appends the catalog action to the user's ledger. With daily
// deduplication on, the same action is accepted once per user per UTC day.
func (u *Action) LogAction(ctx context.Context, userID uuid.UUID, actionID string) (ActionResult, error) {
	actionID = strings.TrimSpace(actionID)
	if actionID == "" {
		return ActionResult{}, ErrInvalidInput
	}
	a, ok := u.catalog.LifeAction(actionID)
	if !ok {
		return ActionResult{}, ErrActionNotFound
	}
	if _, err := loadUser(ctx, u.users, userID); err != nil {
		return ActionResult{}, err
	}
	return u.appendOnce(ctx, userID, a)
}

// appendOnce runs the dedupe guard, the append and the follow-up
// bookkeeping shared by actions and course completions. Once Append has
// succeeded it never returns an error: a retry would award the points twice.
func (u *Action) appendOnce(ctx context.Context, userID uuid.UUID, a ledger.Action) (ActionResult, error) {
	key := ""
	if u.opts.DedupeDaily && u.guard != nil {
		key = DedupeKey(userID, a.ID, u.now())
		ok, err := u.guard.Acquire(ctx, key)
		if err != nil {
			return ActionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
		}
		if !ok {
			return ActionResult{}, ErrDuplicateAction
		}
	}
	release := func() {
		if key != "" {
			u.guard.Release(ctx, key)
		}
	}

	prior, err := u.ledger.Total(ctx, userID)
	if err != nil {
		release()
		u.logger.Error("ledger total failed", zap.Stringer("user_id", userID), zap.Error(err))
		return ActionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	entry, err := u.ledger.Append(ctx, userID, a)
	if err != nil {
		release()
		switch {
		case errors.Is(err, ledger.ErrUnknownUser):
			return ActionResult{}, ErrUserNotFound
		case errors.Is(err, ledger.ErrNegativePoints), errors.Is(err, ledger.ErrInvalidAction):
			return ActionResult{}, ErrInvalidInput
		}
		u.logger.Error("ledger append failed", zap.Stringer("user_id", userID), zap.String("action_id", a.ID), zap.Error(err))
		return ActionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}

	total, err := u.ledger.Total(ctx, userID)
	if err != nil {
		total = prior + entry.Points
		u.logger.Warn("ledger total after append failed, using estimate",
			zap.Stringer("user_id", userID),
			zap.Int("life_points", total),
			zap.Error(err),
		)
	}

	if m, ok := u.users.(lifePointsMirror); ok {
		if err := m.SetLifePoints(ctx, userID, total); err != nil {
			u.logger.Warn("life points mirror failed", zap.Stringer("user_id", userID), zap.Error(err))
		}
	}

	res := ActionResult{
		LifePoints: total,
		BadgeLevel: u.badges.Level(total),
		Progress:   u.badges.Progress(total),
		Entry:      entry,
	}

	u.logger.Info("ledger appended",
		zap.Stringer("user_id", userID),
		zap.String("action_id", a.ID),
		zap.Int("points", entry.Points),
		zap.Int("life_points", total),
	)
	invalidateListings(ctx, u.cache, u.logger, userID)
	publish(ctx, u.events, u.logger, event.New(event.TypeLedgerAppended, userID, map[string]any{
		"entry":       entry,
		"life_points": total,
		"badge_level": res.BadgeLevel,
	}))
	return res, nil
}
