package memory

import (
	"context"
	"sync"
	"testing"

	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, r *UserRepository) user.User {
	t.Helper()
	u := user.User{ID: uuid.New(), Name: "Asha", Email: "Asha@Example.com", Skills: skill.NewSet("python")}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	got, err := r.GetByEmail(ctx, " asha@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	err = r.Create(ctx, user.User{ID: uuid.New(), Email: "asha@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	_, err = r.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_MergeSkills(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	got, err := r.MergeSkills(ctx, u.ID, skill.NewSet("gis", "python"), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"gis", "python"}, got.Skills.Sorted())

	got, err = r.MergeSkills(ctx, u.ID, skill.NewSet("forestry"), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"forestry"}, got.Skills.Sorted())

	_, err = r.MergeSkills(ctx, uuid.New(), skill.NewSet("x"), false)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Skills.Add("mutated")

	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, again.Skills.Has("mutated"))
}

func TestUserRepository_ConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	var wg sync.WaitGroup
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			_, err := r.MergeSkills(ctx, u.ID, skill.NewSet(s), false)
			assert.NoError(t, err)
		}(s)
	}
	wg.Wait()

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "python"}, got.Skills.Sorted())
}

func TestUserRepository_CareerGoalAndPoints(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	got, err := r.UpdateCareerGoal(ctx, u.ID, "  solar engineer ")
	require.NoError(t, err)
	assert.Equal(t, "solar engineer", got.CareerGoal)

	require.NoError(t, r.SetLifePoints(ctx, u.ID, 120))
	got, _ = r.GetByID(ctx, u.ID)
	assert.Equal(t, 120, got.LifePoints)
}

func TestUserRepository_SetLifePointsNeverLowers(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := seedUser(t, r)

	require.NoError(t, r.SetLifePoints(ctx, u.ID, 80))
	require.NoError(t, r.SetLifePoints(ctx, u.ID, 50))
	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, got.LifePoints)

	assert.ErrorIs(t, r.SetLifePoints(ctx, uuid.New(), 10), user.ErrNotFound)
}
