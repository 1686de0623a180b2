package repository

import (
	"context"

	"skill-match/internal/catalog"
	"skill-match/internal/database"
	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/skill"
)

// PostgresCatalogSource reads the seeded reference tables.
type PostgresCatalogSource struct {
	db database.DB
}

var _ catalog.Source = (*PostgresCatalogSource)(nil)

func NewPostgresCatalogSource(db database.DB) *PostgresCatalogSource {
	return &PostgresCatalogSource{db: db}
}

func (s *PostgresCatalogSource) Load(ctx context.Context) (catalog.Data, error) {
	var d catalog.Data
	var err error

	if d.Skills, err = s.loadSkills(ctx); err != nil {
		return catalog.Data{}, err
	}
	if d.Jobs, err = s.loadJobs(ctx); err != nil {
		return catalog.Data{}, err
	}
	if d.Courses, err = s.loadCourses(ctx); err != nil {
		return catalog.Data{}, err
	}
	if d.LifeActions, err = s.loadLifeActions(ctx); err != nil {
		return catalog.Data{}, err
	}
	return d, nil
}

func (s *PostgresCatalogSource) loadSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := s.db.Query(ctx,
		`SELECT s.id, s.name, s.category, COALESCE(array_agg(ss.synonym ORDER BY ss.synonym) FILTER (WHERE ss.synonym IS NOT NULL), '{}')
		 FROM skills s
		 LEFT JOIN skill_synonyms ss ON ss.skill_id = s.id
		 GROUP BY s.id, s.name, s.category
		 ORDER BY s.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var sk skill.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Synonyms); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresCatalogSource) loadJobs(ctx context.Context) ([]job.Job, error) {
	rows, err := s.db.Query(ctx,
		`SELECT j.id, j.title, j.sector, j.description, j.salary, j.demand, j.impact,
		        j.life_points_required, j.is_privileged,
		        COALESCE(array_agg(r.skill_id) FILTER (WHERE r.skill_id IS NOT NULL), '{}')
		 FROM jobs j
		 LEFT JOIN job_required_skills r ON r.job_id = j.id
		 GROUP BY j.id
		 ORDER BY j.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		var required []string
		if err := rows.Scan(&j.ID, &j.Title, &j.Sector, &j.Description, &j.Salary, &j.Demand, &j.Impact,
			&j.LifePointsRequired, &j.IsPrivileged, &required); err != nil {
			return nil, err
		}
		j.RequiredSkills = skill.NewSet(required...)
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresCatalogSource) loadCourses(ctx context.Context) ([]course.Course, error) {
	rows, err := s.db.Query(ctx,
		`SELECT c.id, c.title, c.provider, c.duration, c.level, c.points_reward,
		        COALESCE(array_agg(cs.skill_id) FILTER (WHERE cs.skill_id IS NOT NULL), '{}')
		 FROM courses c
		 LEFT JOIN course_skills cs ON cs.course_id = c.id
		 GROUP BY c.id
		 ORDER BY c.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		var taught []string
		if err := rows.Scan(&c.ID, &c.Title, &c.Provider, &c.Duration, &c.Level, &c.PointsReward, &taught); err != nil {
			return nil, err
		}
		c.SkillsTaught = skill.NewSet(taught...)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresCatalogSource) loadLifeActions(ctx context.Context) ([]ledger.Action, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, action, category, points, carbon, level FROM life_actions ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Action, 0)
	for rows.Next() {
		var a ledger.Action
		if err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.Points, &a.Carbon, &a.Level); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
