// Package matching scores how well a skill set fits a job.
package matching

import (
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/skill"
)

// DefaultLifeBoost is the ranking bonus granted to jobs the user is eligible for.
const DefaultLifeBoost = 15

// Result is the derived fit of one user against one job. It is never
// persisted; every field is recomputable from the Score inputs.
type Result struct {
	JobID              string    `json:"job_id"`
	MatchedSkills      skill.Set `json:"matched_skills"`
	MissingSkills      skill.Set `json:"missing_skills"`
	MatchPercent       int       `json:"match_percent"`
	MeetsEligibility   bool      `json:"meets_eligibility"`
	LifePointsNeeded   int       `json:"life_points_needed"`
	LifeBoost          int       `json:"life_boost"`
	RankScore          int       `json:"rank_score"`
	Locked             bool      `json:"locked"`
	RecommendedCourses []string  `json:"recommended_courses"`
}

// Policy holds the tunables that affect ranking but not the match percent.
type Policy struct {
	LifeBoost int
}

func DefaultPolicy() Policy {
	return Policy{LifeBoost: DefaultLifeBoost}
}

// Score computes the fit of userSkills against j with the default policy.
func Score(userSkills skill.Set, j job.Job, userPoints int) Result {
	return DefaultPolicy().Score(userSkills, j, userPoints)
}

func (p Policy) Score(userSkills skill.Set, j job.Job, userPoints int) Result {
	required := j.RequiredSkills
	matched := required.Intersect(userSkills)
	missing := required.Difference(userSkills)

	eligible := userPoints >= j.LifePointsRequired
	needed := j.LifePointsRequired - userPoints
	if needed < 0 {
		needed = 0
	}

	pct := MatchPercent(matched.Len(), required.Len())

	boost := 0
	if eligible && p.LifeBoost > 0 {
		boost = p.LifeBoost
	}
	rank := pct + boost
	if rank > 100 {
		rank = 100
	}

	return Result{
		JobID:              j.ID,
		MatchedSkills:      matched,
		MissingSkills:      missing,
		MatchPercent:       pct,
		MeetsEligibility:   eligible,
		LifePointsNeeded:   needed,
		LifeBoost:          boost,
		RankScore:          rank,
		Locked:             j.IsPrivileged && !eligible,
		RecommendedCourses: []string{},
	}
}

// MatchPercent is round-half-up of 100*matched/required in integer math.
// A job with no requirements is a full match.
func MatchPercent(matched, required int) int {
	if required <= 0 {
		return 100
	}
	matched = clampInt(matched, 0, required)
	return (200*matched + required) / (2 * required)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
