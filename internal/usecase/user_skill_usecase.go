package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UpdateSkillsInput struct {
	Skills  []string
	Replace bool
}

type UserSkillUsecase interface {
	UpdateSkills(ctx context.Context, userID uuid.UUID, in UpdateSkillsInput) (Profile, error)
}

type UserSkill struct {
	users    user.Repository
	ledger   ledger.Ledger
	taxonomy *skill.Taxonomy
	badges   ledger.BadgeTable
	cache    ListingCache
	events   event.Publisher
	logger   *zap.Logger
}

func NewUserSkillUsecase(
	users user.Repository,
	l ledger.Ledger,
	taxonomy *skill.Taxonomy,
	badges ledger.BadgeTable,
	cache ListingCache,
	events event.Publisher,
	logger *zap.Logger,
) *UserSkill {
	return &UserSkill{
		users:    users,
		ledger:   l,
		taxonomy: taxonomy,
		badges:   badges,
		cache:    cache,
		events:   events,
		logger:   orNop(logger),
	}
}

// UpdateSkills unions the given skills into the profile, or replaces the
// profile's skills when in.Replace is set. Merging the same set twice leaves
// the profile unchanged.
func (u *UserSkill) UpdateSkills(ctx context.Context, userID uuid.UUID, in UpdateSkillsInput) (Profile, error) {
	if userID == uuid.Nil {
		return Profile{}, ErrInvalidInput
	}
	set := skill.NewSet()
	for _, id := range in.Skills {
		if skill.NormalizeID(id) == "" {
			return Profile{}, ErrInvalidInput
		}
		set.Add(id)
	}

	if _, err := loadUser(ctx, u.users, userID); err != nil {
		return Profile{}, err
	}
	if unknown := u.taxonomy.Unknown(set); len(unknown) > 0 {
		return Profile{}, &UnknownSkillsError{IDs: unknown}
	}

	updated, err := u.users.MergeSkills(ctx, userID, set, in.Replace)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	invalidateListings(ctx, u.cache, u.logger, userID)
	publish(ctx, u.events, u.logger, event.New(event.TypeSkillsUpdated, userID, map[string]any{
		"skills":  updated.Skills.Sorted(),
		"replace": in.Replace,
	}))

	st, err := loadState(ctx, u.users, u.ledger, userID)
	if err != nil {
		return Profile{}, err
	}
	return buildProfile(st, u.badges), nil
}
