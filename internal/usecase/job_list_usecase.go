package usecase

import (
	"context"
	"strings"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobListUsecase interface {
	ListJobs(ctx context.Context, userID uuid.UUID) ([]JobMatch, error)
	GetJob(ctx context.Context, userID uuid.UUID, jobID string) (JobMatch, error)
}

type JobList struct {
	users   user.Repository
	ledger  ledger.Ledger
	catalog *catalog.Catalog
	matcher *Matcher
	cache   ListingCache
	logger  *zap.Logger
}

func NewJobListUsecase(users user.Repository, l ledger.Ledger, cat *catalog.Catalog, matcher *Matcher, cache ListingCache, logger *zap.Logger) *JobList {
	return &JobList{users: users, ledger: l, catalog: cat, matcher: matcher, cache: cache, logger: orNop(logger)}
}

// ListJobs scores every catalog job against the user's current skills and
// points. Listings are cached under a fingerprint of those inputs.
func (u *JobList) ListJobs(ctx context.Context, userID uuid.UUID) ([]JobMatch, error) {
	st, err := loadState(ctx, u.users, u.ledger, userID)
	if err != nil {
		return nil, err
	}

	key := ListingCacheKey(userID, st.User.Skills, st.User.LifePoints, len(st.Entries))
	if u.cache != nil {
		var cached []JobMatch
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Debug("listing cache hit", zap.String("key", key))
			return cached, nil
		}
		if err != nil {
			u.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	matches, err := u.matcher.ScoreAll(ctx, st.User.Skills, st.User.LifePoints)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, matches, 0); err != nil {
			u.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return matches, nil
}

func (u *JobList) GetJob(ctx context.Context, userID uuid.UUID, jobID string) (JobMatch, error) {
	if strings.TrimSpace(jobID) == "" {
		return JobMatch{}, ErrInvalidInput
	}
	st, err := loadState(ctx, u.users, u.ledger, userID)
	if err != nil {
		return JobMatch{}, err
	}
	j, ok := u.catalog.Job(jobID)
	if !ok {
		return JobMatch{}, ErrJobNotFound
	}
	return u.matcher.ScoreOne(j, st.User.Skills, st.User.LifePoints), nil
}
