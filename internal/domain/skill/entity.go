package skill

type Skill struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}
