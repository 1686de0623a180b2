package usecase

import (
	"context"
	"runtime"
	"sort"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/recommend"
	"skill-match/internal/domain/skill"

	"golang.org/x/sync/errgroup"
)

// JobMatch is one catalog job scored against a user.
type JobMatch struct {
	Job     job.Job         `json:"job"`
	Result  matching.Result `json:"result"`
	Courses []course.Course `json:"courses"`
}

// Matcher scores catalog jobs and attaches gap-closing courses.
type Matcher struct {
	catalog        *catalog.Catalog
	policy         matching.Policy
	recommendLimit int
	workers        int
}

func NewMatcher(cat *catalog.Catalog, policy matching.Policy, recommendLimit, workers int) *Matcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Matcher{catalog: cat, policy: policy, recommendLimit: recommendLimit, workers: workers}
}

func (m *Matcher) ScoreOne(j job.Job, skills skill.Set, points int) JobMatch {
	res := m.policy.Score(skills, j, points)
	courses := []course.Course{}
	if res.MissingSkills.Len() > 0 {
		courses = recommend.Recommend(res.MissingSkills, m.catalog.Courses(), m.recommendLimit)
	}
	res.RecommendedCourses = recommend.IDs(courses)
	return JobMatch{Job: j, Result: res, Courses: courses}
}

// ScoreAll scores every catalog job concurrently. The output is ordered by
// rank score descending, then job id.
func (m *Matcher) ScoreAll(ctx context.Context, skills skill.Set, points int) ([]JobMatch, error) {
	jobs := m.catalog.Jobs()
	out := make([]JobMatch, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = m.ScoreOne(j, skills, points)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortMatches(out)
	return out, nil
}

func SortMatches(ms []JobMatch) {
	sort.SliceStable(ms, func(a, b int) bool {
		if ms[a].Result.RankScore != ms[b].Result.RankScore {
			return ms[a].Result.RankScore > ms[b].Result.RankScore
		}
		return ms[a].Job.ID < ms[b].Job.ID
	})
}
