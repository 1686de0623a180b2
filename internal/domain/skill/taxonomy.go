package skill

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// SurfaceForm is one normalized synonym and the skill it resolves to.
type SurfaceForm struct {
	Form    string
	SkillID string
}

// Taxonomy is the controlled skill vocabulary. It is built once and never
// mutated afterwards, so it is safe for concurrent use without locking.
type Taxonomy struct {
	skills map[string]Skill
	ids    []string
	byForm map[string]string
	forms  []SurfaceForm
}

// NewTaxonomy validates skills and indexes their surface forms. The id and
// display name of every skill are treated as synonyms of it.
func NewTaxonomy(skills []Skill) (*Taxonomy, error) {
	t := &Taxonomy{
		skills: make(map[string]Skill, len(skills)),
		byForm: make(map[string]string),
	}

	for _, s := range skills {
		id := NormalizeID(s.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: empty skill id (name=%q)", ErrInvalidTaxonomy, s.Name)
		}
		if _, dup := t.skills[id]; dup {
			return nil, fmt.Errorf("%w: duplicate skill id %q", ErrInvalidTaxonomy, id)
		}

		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = s.ID
		}

		candidates := make([]string, 0, len(s.Synonyms)+2)
		candidates = append(candidates, id, name)
		candidates = append(candidates, s.Synonyms...)

		synonyms := make([]string, 0, len(candidates))
		for _, c := range candidates {
			form := NormalizeText(c)
			if form == "" {
				continue
			}
			if owner, taken := t.byForm[form]; taken {
				if owner == id {
					continue
				}
				return nil, fmt.Errorf("%w: synonym %q claimed by %q and %q", ErrInvalidTaxonomy, form, owner, id)
			}
			t.byForm[form] = id
			t.forms = append(t.forms, SurfaceForm{Form: form, SkillID: id})
			synonyms = append(synonyms, form)
		}

		t.skills[id] = Skill{ID: id, Name: name, Category: strings.TrimSpace(s.Category), Synonyms: synonyms}
		t.ids = append(t.ids, id)
	}

	sort.Strings(t.ids)

	// Longest forms first so "data engineering" wins over "data".
	sort.Slice(t.forms, func(i, j int) bool {
		li, lj := len(t.forms[i].Form), len(t.forms[j].Form)
		if li != lj {
			return li > lj
		}
		return t.forms[i].Form < t.forms[j].Form
	})

	return t, nil
}

// Resolve maps a free-form skill mention to a skill id. An exact synonym
// match wins; otherwise the longest synonym contained in the mention on word
// boundaries is used.
func (t *Taxonomy) Resolve(surface string) (string, bool) {
	if t == nil {
		return "", false
	}
	n := NormalizeText(surface)
	if n == "" {
		return "", false
	}
	if id, ok := t.byForm[n]; ok {
		return id, true
	}

	padded := PadText(n)
	for _, f := range t.forms {
		if ContainsWord(padded, f.Form) {
			return f.SkillID, true
		}
	}
	return "", false
}

func (t *Taxonomy) Get(id string) (Skill, bool) {
	if t == nil {
		return Skill{}, false
	}
	s, ok := t.skills[NormalizeID(id)]
	return s, ok
}

func (t *Taxonomy) Contains(id string) bool {
	_, ok := t.Get(id)
	return ok
}

// Unknown returns the ids in s that the taxonomy does not define, sorted.
func (t *Taxonomy) Unknown(s Set) []string {
	out := make([]string, 0)
	for _, id := range s.Sorted() {
		if !t.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Skills returns every skill ordered by id.
func (t *Taxonomy) Skills() []Skill {
	if t == nil {
		return []Skill{}
	}
	out := make([]Skill, 0, len(t.ids))
	for _, id := range t.ids {
		s := t.skills[id]
		s.Synonyms = append([]string(nil), s.Synonyms...)
		out = append(out, s)
	}
	return out
}

// SurfaceForms returns a copy of the indexed synonyms, longest first.
func (t *Taxonomy) SurfaceForms() []SurfaceForm {
	if t == nil {
		return nil
	}
	return append([]SurfaceForm(nil), t.forms...)
}

func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// DisplayNames maps each id of s to its display name, in id order.
func (t *Taxonomy) DisplayNames(s Set) []string {
	out := make([]string, 0, len(s))
	for _, id := range s.Sorted() {
		if sk, ok := t.Get(id); ok {
			out = append(out, sk.Name)
			continue
		}
		out = append(out, id)
	}
	return out
}
