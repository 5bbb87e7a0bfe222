package scenario

import (
	"context"
	"fmt"
	"regexp"
)

var simpleFormURL = regexp.MustCompile(`.*simple-form-demo`)

func SimpleForm() Scenario {
	return Scenario{
		Name:        "simple-form",
		Description: "Validate simple form functionality",
		Run:         runSimpleForm,
	}
}

func runSimpleForm(ctx context.Context, env *Env) error {
	page := env.Pages.SimpleForm
	if err := page.Goto(ctx); err != nil {
		return err
	}
	if err := expectURL(ctx, env, simpleFormURL); err != nil {
		return err
	}

	want := env.Data.SimpleForm
	got, ok, err := page.Submit(ctx, want.Message)
	if err != nil {
		return err
	}
	if !ok || got != want.ExpectedOutput {
		return fmt.Errorf("%w: displayed message %q, want %q", ErrAssertion, got, want.ExpectedOutput)
	}
	env.Logger.Info("simple form echoed message", "message", got)
	return nil
}
