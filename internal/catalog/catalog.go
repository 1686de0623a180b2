// Package catalog holds the read-only reference data: the skill taxonomy,
// jobs, courses and life actions. It is loaded once at startup and never
// mutated, so a *Catalog may be shared freely between goroutines.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/skill"
)

//go:embed default_catalog.json
var defaultCatalog []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Data is the raw catalog as stored or shipped.
type Data struct {
	Skills      []skill.Skill   `json:"skills"`
	Jobs        []job.Job       `json:"jobs"`
	Courses     []course.Course `json:"courses"`
	LifeActions []ledger.Action `json:"life_actions"`
}

// Source loads catalog data from wherever it lives.
type Source interface {
	Load(ctx context.Context) (Data, error)
}

type embeddedSource struct{}

// Embedded is the Source for the catalog compiled into the binary.
func Embedded() Source { return embeddedSource{} }

func (embeddedSource) Load(context.Context) (Data, error) {
	return Parse(defaultCatalog)
}

// DefaultData returns a fresh copy of the embedded catalog.
func DefaultData() (Data, error) {
	return Parse(defaultCatalog)
}

func Parse(b []byte) (Data, error) {
	var d Data
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return d, nil
}

type Catalog struct {
	taxonomy *skill.Taxonomy

	jobs    []job.Job
	jobByID map[string]int

	courses    []course.Course
	courseByID map[string]int

	actions    []ledger.Action
	actionByID map[string]int
}

// Load fetches data from src and validates it.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	d, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(d)
}

// New validates d and builds the lookup indexes. Jobs and courses that
// reference skills missing from the taxonomy are rejected.
func New(d Data) (*Catalog, error) {
	tax, err := skill.NewTaxonomy(d.Skills)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		taxonomy:   tax,
		jobByID:    make(map[string]int, len(d.Jobs)),
		courseByID: make(map[string]int, len(d.Courses)),
		actionByID: make(map[string]int, len(d.LifeActions)),
	}

	c.jobs = make([]job.Job, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		j.ID = skill.NormalizeID(j.ID)
		if j.ID == "" {
			return nil, fmt.Errorf("%w: job with empty id (title=%q)", ErrInvalidCatalog, j.Title)
		}
		if unknown := tax.Unknown(j.RequiredSkills); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: job %q requires unknown skills %v", ErrInvalidCatalog, j.ID, unknown)
		}
		if j.LifePointsRequired < 0 {
			return nil, fmt.Errorf("%w: job %q has negative life points requirement", ErrInvalidCatalog, j.ID)
		}
		if j.RequiredSkills == nil {
			j.RequiredSkills = skill.NewSet()
		}
		c.jobs = append(c.jobs, j)
	}
	sort.Slice(c.jobs, func(i, k int) bool { return c.jobs[i].ID < c.jobs[k].ID })
	for i, j := range c.jobs {
		if _, dup := c.jobByID[j.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate job id %q", ErrInvalidCatalog, j.ID)
		}
		c.jobByID[j.ID] = i
	}

	c.courses = make([]course.Course, 0, len(d.Courses))
	for _, co := range d.Courses {
		co.ID = skill.NormalizeID(co.ID)
		if co.ID == "" {
			return nil, fmt.Errorf("%w: course with empty id (title=%q)", ErrInvalidCatalog, co.Title)
		}
		if unknown := tax.Unknown(co.SkillsTaught); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: course %q teaches unknown skills %v", ErrInvalidCatalog, co.ID, unknown)
		}
		if co.PointsReward < 0 {
			return nil, fmt.Errorf("%w: course %q has negative reward", ErrInvalidCatalog, co.ID)
		}
		if co.SkillsTaught == nil {
			co.SkillsTaught = skill.NewSet()
		}
		c.courses = append(c.courses, co)
	}
	sort.Slice(c.courses, func(i, k int) bool { return c.courses[i].ID < c.courses[k].ID })
	for i, co := range c.courses {
		if _, dup := c.courseByID[co.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate course id %q", ErrInvalidCatalog, co.ID)
		}
		c.courseByID[co.ID] = i
	}

	c.actions = make([]ledger.Action, 0, len(d.LifeActions))
	for _, a := range d.LifeActions {
		a.ID = skill.NormalizeID(a.ID)
		if a.ID == "" || a.Category == "" {
			return nil, fmt.Errorf("%w: life action needs id and category (action=%q)", ErrInvalidCatalog, a.Name)
		}
		if a.Points < 0 {
			return nil, fmt.Errorf("%w: life action %q has negative points", ErrInvalidCatalog, a.ID)
		}
		c.actions = append(c.actions, a)
	}
	sort.Slice(c.actions, func(i, k int) bool { return c.actions[i].ID < c.actions[k].ID })
	for i, a := range c.actions {
		if _, dup := c.actionByID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate life action id %q", ErrInvalidCatalog, a.ID)
		}
		c.actionByID[a.ID] = i
	}

	return c, nil
}

// Default builds the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(context.Background(), Embedded())
}

func (c *Catalog) Taxonomy() *skill.Taxonomy { return c.taxonomy }

// Jobs returns the jobs ordered by id. Callers must not mutate the sets of
// the returned jobs.
func (c *Catalog) Jobs() []job.Job {
	return append(make([]job.Job, 0, len(c.jobs)), c.jobs...)
}

func (c *Catalog) Job(id string) (job.Job, bool) {
	i, ok := c.jobByID[skill.NormalizeID(id)]
	if !ok {
		return job.Job{}, false
	}
	return c.jobs[i], true
}

func (c *Catalog) Courses() []course.Course {
	return append(make([]course.Course, 0, len(c.courses)), c.courses...)
}

func (c *Catalog) Course(id string) (course.Course, bool) {
	i, ok := c.courseByID[skill.NormalizeID(id)]
	if !ok {
		return course.Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) LifeActions() []ledger.Action {
	return append(make([]ledger.Action, 0, len(c.actions)), c.actions...)
}

func (c *Catalog) LifeAction(id string) (ledger.Action, bool) {
	i, ok := c.actionByID[skill.NormalizeID(id)]
	if !ok {
		return ledger.Action{}, false
	}
	return c.actions[i], true
}

// ActionsByCategory groups life actions by category, each group ordered by id.
func (c *Catalog) ActionsByCategory() map[string][]ledger.Action {
	out := make(map[string][]ledger.Action)
	for _, a := range c.actions {
		out[a.Category] = append(out[a.Category], a)
	}
	return out
}

// Data returns the catalog in its raw, serializable form.
func (c *Catalog) Data() Data {
	return Data{
		Skills:      c.taxonomy.Skills(),
		Jobs:        c.Jobs(),
		Courses:     c.Courses(),
		LifeActions: c.LifeActions(),
	}
}
