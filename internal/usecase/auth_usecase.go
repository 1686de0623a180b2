package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"
	ucauth "skill-match/internal/usecase/auth"

	"go.uber.org/zap"
)

type LoginResult struct {
	User         user.User
	Created      bool
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Login(ctx context.Context, in ucauth.LoginInput) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	ledger  ledger.Ledger
	jwt     jwt.Service
	events  event.Publisher
	logger  *zap.Logger
}

func NewAuthUsecase(users user.Repository, l ledger.Ledger, jwtSvc jwt.Service, events event.Publisher, logger *zap.Logger) *Auth {
	return &Auth{
		authSvc: ucauth.NewService(users),
		users:   users,
		ledger:  l,
		jwt:     jwtSvc,
		events:  events,
		logger:  orNop(logger),
	}
}

// Login returns the user for in.Email, creating it on first sight. The
// returned LifePoints come from the ledger, not the stored profile.
func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (LoginResult, error) {
	usr, created, err := u.authSvc.LoginOrCreate(ctx, in)
	if err != nil {
		if errors.Is(err, ucauth.ErrInvalidInput) {
			return LoginResult{}, ErrInvalidInput
		}
		return LoginResult{}, ErrInternal
	}

	total, err := u.ledger.Total(ctx, usr.ID)
	if err != nil {
		u.logger.Error("ledger total failed", zap.Stringer("user_id", usr.ID), zap.Error(err))
		return LoginResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	usr.LifePoints = total

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return LoginResult{}, ErrInternal
	}

	if created {
		u.logger.Info("user created", zap.Stringer("user_id", usr.ID))
		publish(ctx, u.events, u.logger, event.New(event.TypeUserCreated, usr.ID, nil))
	}

	return LoginResult{User: usr, Created: created, AccessToken: access, RefreshToken: refresh}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	return access, newRefresh, nil
}
