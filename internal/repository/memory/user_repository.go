// Package memory holds process-local repositories used when the service
// runs without Postgres and in tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return user.ErrEmailTaken
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	u = u.Clone()
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *UserRepository) MergeSkills(ctx context.Context, id uuid.UUID, skills skill.Set, replace bool) (user.User, error) {
	return r.update(ctx, id, func(u *user.User) {
		if replace {
			u.Skills = skill.NewSet().Union(skills)
			return
		}
		u.Skills = u.Skills.Union(skills)
	})
}

func (r *UserRepository) UpdateCareerGoal(ctx context.Context, id uuid.UUID, goal string) (user.User, error) {
	return r.update(ctx, id, func(u *user.User) {
		u.CareerGoal = strings.TrimSpace(goal)
	})
}

// SetLifePoints mirrors the ledger total onto the stored profile. Ledger
// totals only grow, so a lower value is a stale read and is ignored.
func (r *UserRepository) SetLifePoints(ctx context.Context, id uuid.UUID, points int) error {
	_, err := r.update(ctx, id, func(u *user.User) {
		if points > u.LifePoints {
			u.LifePoints = points
		}
	})
	return err
}

func (r *UserRepository) update(ctx context.Context, id uuid.UUID, fn func(u *user.User)) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u = u.Clone()
	fn(&u)
	u.UpdatedAt = r.now()
	r.byID[id] = u
	return u.Clone(), nil
}
