package user

import (
	"time"

	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

// User is a profile as stored. LifePoints mirrors the ledger total and is
// refreshed from it on every read; the badge level is always derived.
type User struct {
	ID         uuid.UUID
	Name       string
	Email      string
	CareerGoal string
	Skills     skill.Set
	LifePoints int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone returns a copy that shares no mutable state with u.
func (u User) Clone() User {
	c := u
	c.Skills = skill.NewSet().Union(u.Skills)
	return c
}
