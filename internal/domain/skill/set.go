package skill

import (
	"encoding/json"
	"sort"
	"strings"
)

// Set is an unordered collection of normalized skill identifiers.
// The zero value is an empty set that is safe to read; use NewSet before Add.
type Set map[string]struct{}

func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s Set) Add(id string) {
	id = NormalizeID(id)
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

func (s Set) Has(id string) bool {
	_, ok := s[NormalizeID(id)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Union returns a new set holding every element of s and o.
// Union is idempotent: a.Union(b).Union(b) equals a.Union(b).
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

func (s Set) Intersect(o Set) Set {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Difference returns the elements of s that are not in o.
func (s Set) Difference(o Set) Set {
	out := make(Set, len(s))
	for id := range s {
		if _, ok := o[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if _, ok := o[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the identifiers in ascending order. It never returns nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}
