package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryLearning is the ledger category of course completions.
const CategoryLearning = "learning"

// CourseCompletion is the ledger outcome of completing a course plus the
// profile after its skills were merged.
type CourseCompletion struct {
	ActionResult
	Profile Profile
}

type CourseUsecase interface {
	CompleteCourse(ctx context.Context, userID uuid.UUID, courseID string) (CourseCompletion, error)
}

// Course awards a course's points and merges the skills it teaches. It
// shares the ledger bookkeeping of Action.
type Course struct {
	actions *Action
}

func NewCourseUsecase(actions *Action) *Course {
	return &Course{actions: actions}
}

func (u *Course) CompleteCourse(ctx context.Context, userID uuid.UUID, courseID string) (CourseCompletion, error) {
	a := u.actions
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return CourseCompletion{}, ErrInvalidInput
	}
	c, ok := a.catalog.Course(courseID)
	if !ok {
		return CourseCompletion{}, ErrCourseNotFound
	}
	usr, err := loadUser(ctx, a.users, userID)
	if err != nil {
		return CourseCompletion{}, err
	}

	// Skills merge before the append: merging is idempotent and can be
	// retried, an append cannot.
	if c.SkillsTaught.Len() > 0 {
		usr, err = a.users.MergeSkills(ctx, userID, c.SkillsTaught, false)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return CourseCompletion{}, ErrUserNotFound
			}
			return CourseCompletion{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	res, err := a.appendOnce(ctx, userID, ledger.Action{
		ID:       "course:" + c.ID,
		Name:     c.Title,
		Category: CategoryLearning,
		Points:   c.PointsReward,
		Level:    c.Level,
	})
	if err != nil {
		return CourseCompletion{}, err
	}

	if c.SkillsTaught.Len() > 0 {
		invalidateListings(ctx, a.cache, a.logger, userID)
		publish(ctx, a.events, a.logger, event.New(event.TypeSkillsUpdated, userID, map[string]any{
			"skills":  usr.Skills.Sorted(),
			"replace": false,
		}))
	}

	st, err := loadState(ctx, a.users, a.ledger, userID)
	if err != nil {
		// The points are already recorded; answer with what is known.
		a.logger.Warn("profile reload after course completion failed",
			zap.Stringer("user_id", userID),
			zap.String("course_id", c.ID),
			zap.Error(err),
		)
		usr.LifePoints = res.LifePoints
		st = userState{User: usr, Entries: []ledger.Entry{res.Entry}}
	}
	return CourseCompletion{ActionResult: res, Profile: buildProfile(st, a.badges)}, nil
}
