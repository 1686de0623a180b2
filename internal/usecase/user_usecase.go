package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCareerGoalLength = 500

// Profile is a user with everything derived from its ledger.
type Profile struct {
	User        user.User
	BadgeLevel  string
	Progress    ledger.Progress
	CarbonSaved float64
	Entries     []ledger.Entry
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	UpdateCareerGoal(ctx context.Context, userID uuid.UUID, goal string) (Profile, error)
}

type User struct {
	users  user.Repository
	ledger ledger.Ledger
	badges ledger.BadgeTable
	events event.Publisher
	logger *zap.Logger
}

func NewUserUsecase(users user.Repository, l ledger.Ledger, badges ledger.BadgeTable, events event.Publisher, logger *zap.Logger) *User {
	return &User{users: users, ledger: l, badges: badges, events: events, logger: orNop(logger)}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	st, err := loadState(ctx, u.users, u.ledger, userID)
	if err != nil {
		return Profile{}, err
	}
	return buildProfile(st, u.badges), nil
}

func (u *User) UpdateCareerGoal(ctx context.Context, userID uuid.UUID, goal string) (Profile, error) {
	if userID == uuid.Nil {
		return Profile{}, ErrInvalidInput
	}
	goal = strings.TrimSpace(goal)
	if utf8.RuneCountInString(goal) > maxCareerGoalLength {
		return Profile{}, ErrInvalidInput
	}

	if _, err := u.users.UpdateCareerGoal(ctx, userID, goal); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	publish(ctx, u.events, u.logger, event.New(event.TypeProfileUpdated, userID, map[string]string{"career_goal": goal}))
	return u.GetProfile(ctx, userID)
}

func buildProfile(st userState, badges ledger.BadgeTable) Profile {
	entries := st.Entries
	if entries == nil {
		entries = []ledger.Entry{}
	}
	return Profile{
		User:        st.User,
		BadgeLevel:  badges.Level(st.User.LifePoints),
		Progress:    badges.Progress(st.User.LifePoints),
		CarbonSaved: ledger.CarbonSaved(entries),
		Entries:     entries,
	}
}
