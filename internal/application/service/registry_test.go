package service

import (
	"context"
	"testing"

	"playground-e2e/internal/usecase/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) scenario.Scenario {
	return scenario.Scenario{Name: name, Run: func(context.Context, *scenario.Env) error { return nil }}
}

func TestScenarioRegistry_KeepsRegistrationOrder(t *testing.T) {
	r := NewScenarioRegistry(named("b"), named("a"), named("c"))
	assert.Equal(t, []string{"b", "a", "c"}, r.Names())

	r.Register(scenario.Scenario{Name: "a", Description: "replaced"})
	assert.Equal(t, []string{"b", "a", "c"}, r.Names())

	s, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", s.Description)
}

func TestScenarioRegistry_Select(t *testing.T) {
	r := NewScenarioRegistry(scenario.All()...)

	all, err := r.Select()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := r.Select("input-form", "simple-form")
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "input-form", some[0].Name)

	_, err = r.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}
