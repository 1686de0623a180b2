package dto

import (
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/skill"
)

type SkillResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Synonyms []string `json:"synonyms"`
}

type LifeActionResponse struct {
	ID       string  `json:"id"`
	Action   string  `json:"action"`
	Category string  `json:"category"`
	Points   int     `json:"points"`
	Carbon   float64 `json:"carbon"`
	Level    string  `json:"level"`
}

type ResumeParseResponse struct {
	Skills []string `json:"skills"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func NewSkillResponses(skills []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		syn := s.Synonyms
		if syn == nil {
			syn = []string{}
		}
		out = append(out, SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category, Synonyms: syn})
	}
	return out
}

// NewLifeActionResponses keeps every category, each list in catalog order.
func NewLifeActionResponses(byCategory map[string][]ledger.Action) map[string][]LifeActionResponse {
	out := make(map[string][]LifeActionResponse, len(byCategory))
	for cat, actions := range byCategory {
		list := make([]LifeActionResponse, 0, len(actions))
		for _, a := range actions {
			list = append(list, LifeActionResponse{
				ID:       a.ID,
				Action:   a.Name,
				Category: a.Category,
				Points:   a.Points,
				Carbon:   a.Carbon,
				Level:    a.Level,
			})
		}
		out[cat] = list
	}
	return out
}
