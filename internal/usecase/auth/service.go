package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// LoginInput identifies a person by email. Sessions carry no password: the
// first login for an email creates the account.
type LoginInput struct {
	Name  string `validate:"required,max=120"`
	Email string `validate:"required,email,max=254"`
}

type Service struct {
	users    user.Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, validate: validator.New(), now: time.Now}
}

// LoginOrCreate returns the user registered under the email, creating it
// when absent. The bool reports whether a new user was created.
func (s *Service) LoginOrCreate(ctx context.Context, in LoginInput) (user.User, bool, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	if err := s.validate.Struct(in); err != nil {
		return user.User{}, false, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, false, ErrInternal
	}

	now := s.now().UTC()
	u = user.User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Skills:    skill.NewSet(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Lost a race against a concurrent first login.
		if errors.Is(err, user.ErrEmailTaken) {
			existing, gerr := s.users.GetByEmail(ctx, in.Email)
			if gerr == nil {
				return existing, false, nil
			}
		}
		return user.User{}, false, ErrInternal
	}
	return u, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
