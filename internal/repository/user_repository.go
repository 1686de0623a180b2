package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-match/internal/database"
	"skill-match/internal/domain/skill"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

var _ user.Repository = (*PostgresUserRepository)(nil)

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, name, email, career_goal, life_points, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, 0, $5, $6)`,
			u.ID, u.Name, strings.TrimSpace(u.Email), u.CareerGoal, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, database.ErrUniqueViolation) {
				return user.ErrEmailTaken
			}
			return err
		}
		if u.Skills.Len() == 0 {
			return nil
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING`,
			u.ID, u.Skills.Sorted(),
		)
		return err
	})
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.get(ctx, r.db,
		`SELECT id, name, email, career_goal, life_points, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.get(ctx, r.db,
		`SELECT id, name, email, career_goal, life_points, created_at, updated_at FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	)
}

type querier interface {
	Query(ctx context.Context, query string, args ...any) (database.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) database.Row
}

func (r *PostgresUserRepository) get(ctx context.Context, q querier, query string, arg any) (user.User, error) {
	var u user.User
	err := q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.CareerGoal, &u.LifePoints, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	skills, err := loadUserSkills(ctx, q, u.ID)
	if err != nil {
		return user.User{}, err
	}
	u.Skills = skills
	return u, nil
}

func loadUserSkills(ctx context.Context, q querier, id uuid.UUID) (skill.Set, error) {
	rows, err := q.Query(ctx, `SELECT skill_id FROM user_skills WHERE user_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := skill.NewSet()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out.Add(s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MergeSkills runs in one transaction holding the user row lock, so two
// concurrent merges for the same user both land.
func (r *PostgresUserRepository) MergeSkills(ctx context.Context, id uuid.UUID, skills skill.Set, replace bool) (user.User, error) {
	var out user.User
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		u, err := r.get(ctx, tx,
			`SELECT id, name, email, career_goal, life_points, created_at, updated_at FROM users WHERE id = $1 FOR UPDATE`,
			id,
		)
		if err != nil {
			return err
		}

		if replace {
			if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, id); err != nil {
				return err
			}
			u.Skills = skill.NewSet()
		}
		if skills.Len() > 0 {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, skill_id) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING`,
				id, skills.Sorted(),
			); err != nil {
				return err
			}
		}

		u.UpdatedAt = time.Now().UTC()
		if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = $2 WHERE id = $1`, id, u.UpdatedAt); err != nil {
			return err
		}

		u.Skills = u.Skills.Union(skills)
		out = u
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return out, nil
}

func (r *PostgresUserRepository) UpdateCareerGoal(ctx context.Context, id uuid.UUID, goal string) (user.User, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET career_goal = $2, updated_at = now() WHERE id = $1`,
		id, strings.TrimSpace(goal),
	)
	if err != nil {
		return user.User{}, err
	}
	if affected == 0 {
		return user.User{}, user.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
