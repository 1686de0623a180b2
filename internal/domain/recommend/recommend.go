// Package recommend ranks catalog courses against a set of missing skills.
package recommend

import (
	"sort"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/skill"
)

// DefaultLimit is how many courses a job listing carries.
const DefaultLimit = 2

// Ranked is a course together with the missing skills it teaches.
type Ranked struct {
	Course   course.Course
	Covers   skill.Set
	Coverage int
}

// Rank orders every course that teaches at least one missing skill by
// coverage desc, then pointsReward asc, then id asc. It is a greedy
// single pass, not a set cover.
func Rank(missing skill.Set, catalog []course.Course) []Ranked {
	out := make([]Ranked, 0)
	if missing.Len() == 0 {
		return out
	}
	for _, c := range catalog {
		covers := c.SkillsTaught.Intersect(missing)
		if covers.Len() == 0 {
			continue
		}
		out = append(out, Ranked{Course: c, Covers: covers, Coverage: covers.Len()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Coverage != b.Coverage {
			return a.Coverage > b.Coverage
		}
		if a.Course.PointsReward != b.Course.PointsReward {
			return a.Course.PointsReward < b.Course.PointsReward
		}
		return a.Course.ID < b.Course.ID
	})
	return out
}

// Recommend returns at most limit courses from Rank. limit <= 0 yields none.
func Recommend(missing skill.Set, catalog []course.Course, limit int) []course.Course {
	out := make([]course.Course, 0)
	if limit <= 0 {
		return out
	}
	for _, r := range Rank(missing, catalog) {
		if len(out) == limit {
			break
		}
		out = append(out, r.Course)
	}
	return out
}

// IDs projects courses onto their identifiers.
func IDs(courses []course.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.ID)
	}
	return out
}
