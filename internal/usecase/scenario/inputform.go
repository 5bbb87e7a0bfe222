package scenario

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var inputFormURL = regexp.MustCompile(`.*input-form-demo`)

func InputForm() Scenario {
	return Scenario{
		Name:        "input-form",
		Description: "Validate form submission",
		Run:         runInputForm,
	}
}

func runInputForm(ctx context.Context, env *Env) error {
	page := env.Pages.InputForm
	if err := page.Goto(ctx); err != nil {
		return err
	}

	// Client-side validation keeps an empty submission on the page.
	page.SubmitEmpty(ctx)
	if err := expectURL(ctx, env, inputFormURL); err != nil {
		return err
	}

	report, err := page.FillAndSubmit(ctx, env.Data.Form)
	if err != nil {
		return err
	}
	if err := report.Submit.Err(); err != nil {
		env.Logger.Warn("form submit not confirmed", "error", err)
	}

	msg, ok := page.SuccessMessage(ctx)
	if !ok || !strings.Contains(msg, env.Data.SuccessMessage) {
		env.Logger.Warn("could not find success message, taking screenshot")
		if _, shotErr := env.Artifacts.Screenshot(context.WithoutCancel(ctx), env.Browser, "form-test-error"); shotErr != nil {
			env.Logger.Error("form failure screenshot", "error", shotErr)
		}
		return fmt.Errorf("%w: success message %q does not contain %q", ErrAssertion, msg, env.Data.SuccessMessage)
	}
	env.Logger.Info("form submitted", "message", msg)
	return nil
}
