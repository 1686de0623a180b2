package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Action is a catalog life action that can be logged against a user.
type Action struct {
	ID       string  `json:"id"`
	Name     string  `json:"action"`
	Category string  `json:"category"`
	Points   int     `json:"points"`
	Carbon   float64 `json:"carbon"`
	Level    string  `json:"level,omitempty"`
}

// Entry is one immutable ledger record. Seq is its 1-based position in the
// user's append sequence.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Seq        int       `json:"seq"`
	ActionID   string    `json:"action_id"`
	ActionName string    `json:"action_name"`
	Category   string    `json:"category"`
	Points     int       `json:"points"`
	Carbon     float64   `json:"carbon"`
	CreatedAt  time.Time `json:"timestamp"`
}

// CarbonSaved sums the carbon of entries.
func CarbonSaved(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Carbon
	}
	return total
}
