// Package scenario defines the end-to-end checks run against the playground.
// A scenario drives the page helpers and turns their observations into
// pass/fail.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/usecase/pages"
)

var (
	ErrAssertion = errors.New("assertion failed")
	ErrNoValue   = errors.New("could not get slider value")
)

// Data is the input and expected output of every scenario.
type Data struct {
	SimpleForm     entity.SimpleFormData
	Slider         entity.SliderData
	Form           entity.FormRecord
	SuccessMessage string
}

func DefaultData() Data {
	return Data{
		SimpleForm:     entity.DefaultSimpleForm,
		Slider:         entity.DefaultSlider,
		Form:           entity.DefaultFormRecord,
		SuccessMessage: entity.DefaultSuccessMessage,
	}
}

// Env is everything one scenario attempt needs. It is built fresh for each
// attempt around a new browser session.
type Env struct {
	Browser   output.BrowserPort
	Pages     *pages.Playground
	Artifacts output.ArtifactPort
	Logger    output.LoggerPort
	Data      Data
	// Expect bounds URL assertions.
	Expect time.Duration
}

type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// All returns the scenarios in execution order.
func All() []Scenario {
	return []Scenario{SimpleForm(), Sliders(), InputForm()}
}

// expectURL waits until the current URL matches pattern, failing the scenario
// when Expect runs out.
func expectURL(ctx context.Context, env *Env, pattern *regexp.Regexp) error {
	if env.Expect > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.Expect)
		defer cancel()
	}
	if err := env.Browser.WaitForURL(ctx, pattern); err != nil {
		current, _ := env.Browser.CurrentURL(context.WithoutCancel(ctx))
		return fmt.Errorf("%w: url %q does not match %s: %v", ErrAssertion, current, pattern, err)
	}
	return nil
}
