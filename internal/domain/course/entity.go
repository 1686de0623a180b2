package course

import "skill-match/internal/domain/skill"

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Provider     string    `json:"provider"`
	Duration     string    `json:"duration,omitempty"`
	Level        string    `json:"level"`
	SkillsTaught skill.Set `json:"skills_taught"`
	PointsReward int       `json:"points_reward"`
}
