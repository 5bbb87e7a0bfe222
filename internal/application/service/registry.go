package service

import (
	"errors"
	"fmt"

	"playground-e2e/internal/usecase/scenario"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// ScenarioRegistry keeps scenarios in registration order, which is the order
// the suite runs them in.
type ScenarioRegistry struct {
	order     []string
	scenarios map[string]scenario.Scenario
}

func NewScenarioRegistry(scenarios ...scenario.Scenario) *ScenarioRegistry {
	r := &ScenarioRegistry{
		scenarios: make(map[string]scenario.Scenario),
	}
	for _, s := range scenarios {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing a scenario of the same name in place.
func (r *ScenarioRegistry) Register(s scenario.Scenario) {
	if _, ok := r.scenarios[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.scenarios[s.Name] = s
}

func (r *ScenarioRegistry) Get(name string) (scenario.Scenario, bool) {
	s, ok := r.scenarios[name]
	return s, ok
}

func (r *ScenarioRegistry) All() []scenario.Scenario {
	result := make([]scenario.Scenario, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.scenarios[name])
	}
	return result
}

func (r *ScenarioRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Select resolves names in the given order; no names selects everything.
func (r *ScenarioRegistry) Select(names ...string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return r.All(), nil
	}
	result := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := r.scenarios[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownScenario, name, r.order)
		}
		result = append(result, s)
	}
	return result, nil
}
