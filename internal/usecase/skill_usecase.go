package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/course"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/resume"
	"skill-match/internal/domain/skill"
)

// MaxResumeLength bounds the resume text accepted for parsing, in runes.
const MaxResumeLength = 100_000

type CatalogUsecase interface {
	ListSkills(ctx context.Context) []skill.Skill
	ListCourses(ctx context.Context) []course.Course
	LifeActions(ctx context.Context) map[string][]ledger.Action
	ParseResume(ctx context.Context, text string) ([]string, error)
}

type Catalog struct {
	catalog   *catalog.Catalog
	extractor *resume.Extractor
}

func NewCatalogUsecase(cat *catalog.Catalog) *Catalog {
	return &Catalog{catalog: cat, extractor: resume.NewExtractor(cat.Taxonomy())}
}

func (u *Catalog) ListSkills(context.Context) []skill.Skill {
	return u.catalog.Taxonomy().Skills()
}

func (u *Catalog) ListCourses(context.Context) []course.Course {
	return u.catalog.Courses()
}

func (u *Catalog) LifeActions(context.Context) map[string][]ledger.Action {
	return u.catalog.ActionsByCategory()
}

// ParseResume extracts the skill ids mentioned in text, sorted. The profile
// is not touched; callers merge explicitly.
func (u *Catalog) ParseResume(_ context.Context, text string) ([]string, error) {
	if utf8.RuneCountInString(text) > MaxResumeLength {
		return nil, fmt.Errorf("%w: limit is %d characters", ErrResumeTooLong, MaxResumeLength)
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	return u.extractor.Extract(text).Sorted(), nil
}
