package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

const listingKeyPrefix = "listing:"

type listingCacheKeyInput struct {
	UserID     string   `json:"user_id"`
	Skills     []string `json:"skills"`
	LifePoints int      `json:"life_points"`
	Entries    int      `json:"entries"`
}

// ListingPrefix is the prefix shared by every cached listing of userID.
func ListingPrefix(userID uuid.UUID) string {
	return listingKeyPrefix + userID.String() + ":"
}

// ListingCacheKey fingerprints every input a listing depends on, so a
// changed profile or ledger can never be served a stale listing.
func ListingCacheKey(userID uuid.UUID, skills skill.Set, lifePoints, entries int) string {
	in := listingCacheKeyInput{
		UserID:     userID.String(),
		Skills:     skills.Sorted(),
		LifePoints: lifePoints,
		Entries:    entries,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return ListingPrefix(userID) + hex.EncodeToString(sum[:])
}

// DedupeKey identifies one action for one user on the UTC day of at.
func DedupeKey(userID uuid.UUID, actionID string, at time.Time) string {
	actionID = strings.ToLower(strings.TrimSpace(actionID))
	return "dedupe:" + userID.String() + ":" + actionID + ":" + at.UTC().Format(time.DateOnly)
}
