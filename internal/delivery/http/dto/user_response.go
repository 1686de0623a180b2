package dto

import (
	"time"

	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"
	"skill-match/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CareerGoal string    `json:"career_goal"`
	Skills     []string  `json:"skills"`
	LifePoints int       `json:"life_points"`
	BadgeLevel string    `json:"badge_level"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProgressResponse struct {
	Level     string `json:"level"`
	Next      string `json:"next"`
	Remaining int    `json:"remaining"`
	Percent   int    `json:"percent"`
}

type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Seq       int       `json:"seq"`
	ActionID  string    `json:"action_id"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Points    int       `json:"points"`
	Carbon    float64   `json:"carbon"`
	Timestamp time.Time `json:"timestamp"`
}

type ProfileResponse struct {
	UserResponse
	LifeActions []EntryResponse  `json:"life_actions"`
	Progress    ProgressResponse `json:"progress"`
	CarbonSaved float64          `json:"carbon_saved"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	Created      bool         `json:"created"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ActionResponse struct {
	LifePoints int              `json:"life_points"`
	BadgeLevel string           `json:"badge_level"`
	Progress   ProgressResponse `json:"progress"`
	Entry      EntryResponse    `json:"entry"`
}

type CourseCompletionResponse struct {
	ActionResponse
	User ProfileResponse `json:"user"`
}

func NewUserResponse(u user.User, badgeLevel string) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		CareerGoal: u.CareerGoal,
		Skills:     u.Skills.Sorted(),
		LifePoints: u.LifePoints,
		BadgeLevel: badgeLevel,
		CreatedAt:  u.CreatedAt,
	}
}

func NewProgressResponse(p ledger.Progress) ProgressResponse {
	return ProgressResponse{Level: p.Level, Next: p.Next, Remaining: p.Remaining, Percent: p.Percent}
}

func NewEntryResponse(e ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Seq:       e.Seq,
		ActionID:  e.ActionID,
		Action:    e.ActionName,
		Category:  e.Category,
		Points:    e.Points,
		Carbon:    e.Carbon,
		Timestamp: e.CreatedAt,
	}
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	entries := make([]EntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, NewEntryResponse(e))
	}
	return ProfileResponse{
		UserResponse: NewUserResponse(p.User, p.BadgeLevel),
		LifeActions:  entries,
		Progress:     NewProgressResponse(p.Progress),
		CarbonSaved:  p.CarbonSaved,
	}
}

func NewActionResponse(r usecase.ActionResult) ActionResponse {
	return ActionResponse{
		LifePoints: r.LifePoints,
		BadgeLevel: r.BadgeLevel,
		Progress:   NewProgressResponse(r.Progress),
		Entry:      NewEntryResponse(r.Entry),
	}
}
