// Package resume extracts taxonomy skills from plain resume text.
//
// Extraction is lexicon driven: a skill is reported only when one of its
// surface forms literally occurs in the text on word boundaries. Nothing is
// inferred from context, so the same text always yields the same set.
package resume

import (
	"sort"

	"skill-match/internal/domain/skill"
)

// Hit records the surface form that caused a skill to be extracted.
type Hit struct {
	SkillID string `json:"skill_id"`
	Form    string `json:"form"`
}

type Extractor struct {
	forms []skill.SurfaceForm
}

func NewExtractor(tax *skill.Taxonomy) *Extractor {
	return &Extractor{forms: tax.SurfaceForms()}
}

// Extract returns every skill with at least one surface form present in text.
// Empty or whitespace-only text yields an empty set.
func (e *Extractor) Extract(text string) skill.Set {
	out := skill.NewSet()
	for _, h := range e.Hits(text) {
		out.Add(h.SkillID)
	}
	return out
}

// Hits is Extract with evidence: one entry per skill, naming the longest
// surface form that matched. Results are ordered by skill id.
func (e *Extractor) Hits(text string) []Hit {
	out := make([]Hit, 0)
	if e == nil {
		return out
	}
	normalized := skill.NormalizeText(text)
	if normalized == "" {
		return out
	}
	padded := skill.PadText(normalized)

	seen := make(map[string]struct{})
	for _, f := range e.forms {
		if _, ok := seen[f.SkillID]; ok {
			continue
		}
		if !skill.ContainsWord(padded, f.Form) {
			continue
		}
		seen[f.SkillID] = struct{}{}
		out = append(out, Hit{SkillID: f.SkillID, Form: f.Form})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out
}
