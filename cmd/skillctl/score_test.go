package main

import (
	"testing"

	"skill-match/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSkills(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	got, err := resolveSkills(cat.Taxonomy(), []string{"Python", " photovoltaic ", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "solar-pv"}, got.Sorted())

	_, err = resolveSkills(cat.Taxonomy(), []string{"python", "juggling"})
	assert.ErrorContains(t, err, "juggling")
}
