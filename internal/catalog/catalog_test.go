package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"skill-match/internal/domain/course"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Jobs(), 5)
	assert.Len(t, c.Courses(), 3)
	assert.Len(t, c.LifeActions(), 8)
	assert.Equal(t, 20, c.Taxonomy().Len())

	j, ok := c.Job("J2")
	require.True(t, ok)
	assert.True(t, j.IsPrivileged)
	assert.Equal(t, 300, j.LifePointsRequired)

	co, ok := c.Course("c3")
	require.True(t, ok)
	assert.Equal(t, []string{"climate-modeling", "data-analysis", "python"}, co.SkillsTaught.Sorted())

	a, ok := c.LifeAction("t3")
	require.True(t, ok)
	assert.Equal(t, 200, a.Points)

	_, ok = c.LifeAction("nope")
	assert.False(t, ok)
}

func TestDefault_ActionsByCategory(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	groups := c.ActionsByCategory()
	require.Len(t, groups, 3)
	ids := func(as []ledger.Action) []string {
		out := make([]string, 0, len(as))
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(groups["energy"]))
	assert.Equal(t, []string{"w1", "w2"}, ids(groups["waste"]))
}

func TestNew_RejectsUnknownSkillReferences(t *testing.T) {
	_, err := New(Data{
		Skills: []skill.Skill{{ID: "a"}},
		Jobs:   []job.Job{{ID: "j", RequiredSkills: skill.NewSet("a", "b")}},
	})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = New(Data{
		Skills:  []skill.Skill{{ID: "a"}},
		Courses: []course.Course{{ID: "c", SkillsTaught: skill.NewSet("zzz")}},
	})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(Data{Jobs: []job.Job{{ID: "j"}, {ID: "J"}}})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = New(Data{LifeActions: []ledger.Action{
		{ID: "e1", Category: "energy"},
		{ID: "e1", Category: "waste"},
	}})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = New(Data{Skills: []skill.Skill{{ID: "x"}, {ID: "X"}}})
	assert.ErrorIs(t, err, skill.ErrInvalidTaxonomy)
}

func TestParse_UnknownFieldsRejected(t *testing.T) {
	_, err := Parse([]byte(`{"skills":[],"extra":1}`))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

type staticSource struct{ d Data }

func (s staticSource) Load(context.Context) (Data, error) { return s.d, nil }

func TestLoad_RoundTripsThroughData(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	raw, err := json.Marshal(c.Data())
	require.NoError(t, err)
	d, err := Parse(raw)
	require.NoError(t, err)

	again, err := Load(context.Background(), staticSource{d})
	require.NoError(t, err)
	assert.Equal(t, len(c.Jobs()), len(again.Jobs()))
	assert.Equal(t, c.Taxonomy().Len(), again.Taxonomy().Len())
}
