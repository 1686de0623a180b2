package seeder

import (
	"context"

	"skill-match/internal/database"
)

// Seeder writes one group of reference rows. Run must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
