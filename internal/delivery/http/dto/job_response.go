package dto

import (
	"skill-match/internal/domain/course"
	"skill-match/internal/usecase"
)

type CourseResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Provider     string   `json:"provider"`
	Duration     string   `json:"duration"`
	Level        string   `json:"level"`
	SkillsTaught []string `json:"skills_taught"`
	PointsReward int      `json:"points_reward"`
}

// JobMatchResponse is a catalog job merged with its match result.
type JobMatchResponse struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Sector             string   `json:"sector"`
	Description        string   `json:"description"`
	Salary             string   `json:"salary"`
	Demand             string   `json:"demand"`
	Impact             string   `json:"impact"`
	RequiredSkills     []string `json:"required_skills"`
	LifePointsRequired int      `json:"life_points_required"`
	IsPrivileged       bool     `json:"is_privileged"`

	MatchedSkills      []string         `json:"matched_skills"`
	MissingSkills      []string         `json:"missing_skills"`
	MatchPercent       int              `json:"match_percent"`
	MeetsEligibility   bool             `json:"meets_eligibility"`
	LifePointsNeeded   int              `json:"life_points_needed"`
	LifeBoost          int              `json:"life_boost"`
	RankScore          int              `json:"rank_score"`
	Locked             bool             `json:"locked"`
	RecommendedCourses []CourseResponse `json:"recommended_courses"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	return CourseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Provider:     c.Provider,
		Duration:     c.Duration,
		Level:        c.Level,
		SkillsTaught: c.SkillsTaught.Sorted(),
		PointsReward: c.PointsReward,
	}
}

func NewCourseResponses(cs []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

func NewJobMatchResponse(m usecase.JobMatch) JobMatchResponse {
	j, r := m.Job, m.Result
	return JobMatchResponse{
		ID:                 j.ID,
		Title:              j.Title,
		Sector:             j.Sector,
		Description:        j.Description,
		Salary:             j.Salary,
		Demand:             j.Demand,
		Impact:             j.Impact,
		RequiredSkills:     j.RequiredSkills.Sorted(),
		LifePointsRequired: j.LifePointsRequired,
		IsPrivileged:       j.IsPrivileged,
		MatchedSkills:      r.MatchedSkills.Sorted(),
		MissingSkills:      r.MissingSkills.Sorted(),
		MatchPercent:       r.MatchPercent,
		MeetsEligibility:   r.MeetsEligibility,
		LifePointsNeeded:   r.LifePointsNeeded,
		LifeBoost:          r.LifeBoost,
		RankScore:          r.RankScore,
		Locked:             r.Locked,
		RecommendedCourses: NewCourseResponses(m.Courses),
	}
}

func NewJobMatchResponses(ms []usecase.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewJobMatchResponse(m))
	}
	return out
}
