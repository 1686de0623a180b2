package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrActionNotFound      = errors.New("life action not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrLedgerUnavailable   = errors.New("ledger unavailable")
	ErrDuplicateAction     = errors.New("action already logged today")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal error")

	// ErrResumeTooLong matches ErrInvalidInput.
	ErrResumeTooLong = fmt.Errorf("%w: resume text too long", ErrInvalidInput)
)

// UnknownSkillsError names the skill ids a request referenced that are not
// in the taxonomy. It matches ErrSkillNotFound.
type UnknownSkillsError struct {
	IDs []string
}

func (e *UnknownSkillsError) Error() string {
	return "unknown skills: " + strings.Join(e.IDs, ", ")
}

func (e *UnknownSkillsError) Unwrap() error {
	return ErrSkillNotFound
}
