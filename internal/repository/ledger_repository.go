package repository

import (
	"context"
	"errors"
	"time"

	"skill-match/internal/database"
	"skill-match/internal/domain/ledger"

	"github.com/google/uuid"
)

// PostgresLedger stores entries in ledger_entries and keeps users.life_points
// in step inside the same transaction. The user row lock serializes appends
// per user.
type PostgresLedger struct {
	db database.DB
}

var _ ledger.Ledger = (*PostgresLedger)(nil)

func NewPostgresLedger(db database.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) Append(ctx context.Context, userID uuid.UUID, action ledger.Action) (ledger.Entry, error) {
	if action.ID == "" {
		return ledger.Entry{}, ledger.ErrInvalidAction
	}
	if action.Points < 0 {
		return ledger.Entry{}, ledger.ErrNegativePoints
	}

	var e ledger.Entry
	err := database.WithTx(ctx, l.db, func(tx database.Tx) error {
		var points int
		err := tx.QueryRow(ctx, `SELECT life_points FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&points)
		if err != nil {
			if errors.Is(err, database.ErrNoRows) {
				return ledger.ErrUnknownUser
			}
			return err
		}

		var seq int
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(seq), 0) FROM ledger_entries WHERE user_id = $1`, userID,
		).Scan(&seq); err != nil {
			return err
		}

		e = ledger.Entry{
			ID:         uuid.New(),
			UserID:     userID,
			Seq:        seq + 1,
			ActionID:   action.ID,
			ActionName: action.Name,
			Category:   action.Category,
			Points:     action.Points,
			Carbon:     action.Carbon,
			CreatedAt:  time.Now().UTC(),
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO ledger_entries (id, user_id, seq, action_id, action_name, category, points, carbon, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, e.UserID, e.Seq, e.ActionID, e.ActionName, e.Category, e.Points, e.Carbon, e.CreatedAt,
		); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET life_points = life_points + $2, updated_at = $3 WHERE id = $1`,
			userID, e.Points, e.CreatedAt,
		)
		return err
	})
	if err != nil {
		return ledger.Entry{}, err
	}
	return e, nil
}

// Total sums the entries rather than reading the cached column.
func (l *PostgresLedger) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := l.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0)::int FROM ledger_entries WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (l *PostgresLedger) Entries(ctx context.Context, userID uuid.UUID) ([]ledger.Entry, error) {
	rows, err := l.db.Query(ctx,
		`SELECT id, user_id, seq, action_id, action_name, category, points, carbon, created_at
		 FROM ledger_entries
		 WHERE user_id = $1
		 ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Entry, 0)
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Seq, &e.ActionID, &e.ActionName, &e.Category, &e.Points, &e.Carbon, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
