package job

import "skill-match/internal/domain/skill"

// Job is a catalog listing. Description, Salary, Demand and Impact are
// display fields and never take part in scoring.
type Job struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Sector             string    `json:"sector"`
	Description        string    `json:"description,omitempty"`
	Salary             string    `json:"salary,omitempty"`
	Demand             string    `json:"demand,omitempty"`
	Impact             string    `json:"impact,omitempty"`
	RequiredSkills     skill.Set `json:"required_skills"`
	LifePointsRequired int       `json:"life_points_required"`
	IsPrivileged       bool      `json:"is_privileged"`
}
