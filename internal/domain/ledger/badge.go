package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidBadgeTable = errors.New("invalid badge table")

type Tier struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
}

// BadgeTable is an ascending list of tiers. The first tier starts at 0.
type BadgeTable struct {
	tiers []Tier
}

const DefaultBadgeTable = "Beginner:0,Contributor:100,ChampionCandidate:300,ClimateChampion:600"

func DefaultBadges() BadgeTable {
	t, err := ParseBadgeTable(DefaultBadgeTable)
	if err != nil {
		panic(err)
	}
	return t
}

func NewBadgeTable(tiers []Tier) (BadgeTable, error) {
	if len(tiers) == 0 {
		return BadgeTable{}, fmt.Errorf("%w: no tiers", ErrInvalidBadgeTable)
	}
	sorted := append([]Tier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })

	if sorted[0].Threshold != 0 {
		return BadgeTable{}, fmt.Errorf("%w: lowest tier must start at 0", ErrInvalidBadgeTable)
	}
	seen := make(map[string]struct{}, len(sorted))
	for i, t := range sorted {
		if strings.TrimSpace(t.Name) == "" {
			return BadgeTable{}, fmt.Errorf("%w: empty tier name", ErrInvalidBadgeTable)
		}
		if _, dup := seen[t.Name]; dup {
			return BadgeTable{}, fmt.Errorf("%w: duplicate tier %q", ErrInvalidBadgeTable, t.Name)
		}
		seen[t.Name] = struct{}{}
		if i > 0 && t.Threshold == sorted[i-1].Threshold {
			return BadgeTable{}, fmt.Errorf("%w: duplicate threshold %d", ErrInvalidBadgeTable, t.Threshold)
		}
	}
	return BadgeTable{tiers: sorted}, nil
}

// ParseBadgeTable reads "Name:threshold,Name:threshold,...".
func ParseBadgeTable(s string) (BadgeTable, error) {
	parts := strings.Split(s, ",")
	tiers := make([]Tier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, raw, ok := strings.Cut(p, ":")
		if !ok {
			return BadgeTable{}, fmt.Errorf("%w: %q", ErrInvalidBadgeTable, p)
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return BadgeTable{}, fmt.Errorf("%w: bad threshold in %q", ErrInvalidBadgeTable, p)
		}
		tiers = append(tiers, Tier{Name: strings.TrimSpace(name), Threshold: n})
	}
	return NewBadgeTable(tiers)
}

func (b BadgeTable) Tiers() []Tier {
	return append([]Tier(nil), b.tiers...)
}

// Level is the highest tier whose threshold is <= points.
func (b BadgeTable) Level(points int) string {
	if len(b.tiers) == 0 {
		return ""
	}
	return b.tiers[b.index(points)].Name
}

func (b BadgeTable) index(points int) int {
	i := sort.Search(len(b.tiers), func(i int) bool { return b.tiers[i].Threshold > points })
	if i == 0 {
		return 0
	}
	return i - 1
}

// Progress describes where a point total sits between two tiers.
type Progress struct {
	Level     string `json:"level"`
	Next      string `json:"next,omitempty"`
	Remaining int    `json:"remaining"`
	Percent   int    `json:"percent"`
}

func (b BadgeTable) Progress(points int) Progress {
	if len(b.tiers) == 0 {
		return Progress{}
	}
	i := b.index(points)
	cur := b.tiers[i]
	if i == len(b.tiers)-1 {
		return Progress{Level: cur.Name, Percent: 100}
	}
	next := b.tiers[i+1]
	span := next.Threshold - cur.Threshold
	done := points - cur.Threshold
	if done < 0 {
		done = 0
	}
	return Progress{
		Level:     cur.Name,
		Next:      next.Name,
		Remaining: next.Threshold - points,
		Percent:   100 * done / span,
	}
}
