package user

import (
	"context"
	"errors"

	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// MergeSkills unions skills into the profile, or replaces the profile's
	// skills when replace is true, and returns the updated user.
	MergeSkills(ctx context.Context, id uuid.UUID, skills skill.Set, replace bool) (User, error)
	UpdateCareerGoal(ctx context.Context, id uuid.UUID, goal string) (User, error)
}
