package seeder

import (
	"context"
	"fmt"

	"skill-match/internal/catalog"
	"skill-match/internal/database"
	"skill-match/internal/domain/skill"
)

// CatalogSeeder writes reference data. Rows that already exist are left
// alone, so re-running it never overwrites curated edits.
type CatalogSeeder struct {
	Data catalog.Data
}

func (CatalogSeeder) Name() string { return "catalog" }

func (s CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	// New rejects data whose jobs or courses reference unknown skills.
	if _, err := catalog.New(s.Data); err != nil {
		return err
	}

	checks := map[string][]string{
		"skills":              {"id", "name", "category"},
		"skill_synonyms":      {"synonym", "skill_id"},
		"jobs":                {"id", "title", "sector", "life_points_required", "is_privileged"},
		"job_required_skills": {"job_id", "skill_id"},
		"courses":             {"id", "title", "provider", "points_reward"},
		"course_skills":       {"course_id", "skill_id"},
		"life_actions":        {"id", "action", "category", "points", "carbon"},
	}
	for table, cols := range checks {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		if err := seedSkills(ctx, tx, s.Data.Skills); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		if err := seedJobs(ctx, tx, s.Data); err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
		if err := seedCourses(ctx, tx, s.Data); err != nil {
			return fmt.Errorf("courses: %w", err)
		}
		if err := seedLifeActions(ctx, tx, s.Data); err != nil {
			return fmt.Errorf("life actions: %w", err)
		}
		return nil
	})
}

func seedSkills(ctx context.Context, tx database.Tx, skills []skill.Skill) error {
	for _, sk := range skills {
		id := skill.NormalizeID(sk.ID)
		name := sk.Name
		if name == "" {
			name = sk.ID
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			id, name, sk.Category,
		); err != nil {
			return err
		}
		for _, syn := range sk.Synonyms {
			form := skill.NormalizeText(syn)
			if form == "" {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO skill_synonyms (synonym, skill_id) VALUES ($1, $2) ON CONFLICT (synonym) DO NOTHING`,
				form, id,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedJobs(ctx context.Context, tx database.Tx, d catalog.Data) error {
	for _, j := range d.Jobs {
		id := skill.NormalizeID(j.ID)
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, title, sector, description, salary, demand, impact, life_points_required, is_privileged)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			id, j.Title, j.Sector, j.Description, j.Salary, j.Demand, j.Impact, j.LifePointsRequired, j.IsPrivileged,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_required_skills (job_id, skill_id)
			 SELECT $1, unnest($2::text[])
			 ON CONFLICT DO NOTHING`,
			id, j.RequiredSkills.Sorted(),
		); err != nil {
			return err
		}
	}
	return nil
}

func seedCourses(ctx context.Context, tx database.Tx, d catalog.Data) error {
	for _, c := range d.Courses {
		id := skill.NormalizeID(c.ID)
		if _, err := tx.Exec(ctx,
			`INSERT INTO courses (id, title, provider, duration, level, points_reward)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			id, c.Title, c.Provider, c.Duration, c.Level, c.PointsReward,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO course_skills (course_id, skill_id)
			 SELECT $1, unnest($2::text[])
			 ON CONFLICT DO NOTHING`,
			id, c.SkillsTaught.Sorted(),
		); err != nil {
			return err
		}
	}
	return nil
}

func seedLifeActions(ctx context.Context, tx database.Tx, d catalog.Data) error {
	for _, a := range d.LifeActions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO life_actions (id, action, category, points, carbon, level)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			skill.NormalizeID(a.ID), a.Name, a.Category, a.Points, a.Carbon, a.Level,
		); err != nil {
			return err
		}
	}
	return nil
}
