package pages

import (
	"context"
	"fmt"

	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/usecase/resolver"
	"playground-e2e/internal/usecase/slider"
)

const inputFormLink = "Input Form Submit"

var (
	nameCandidates     = []string{"input#name", `input[name="name"]`}
	emailCandidates    = []string{"input#inputEmail4", `input[name="email"]`}
	passwordCandidates = []string{"input#inputPassword4", `input[name="password"]`}
	companyCandidates  = []string{"input#company", `input[name="company"]`}
	websiteCandidates  = []string{"input#websitename", `input[name="website"]`}
	cityCandidates     = []string{"input#inputCity", `input[name="city"]`}
	address1Candidates = []string{"input#inputAddress1", `input[name="address_line1"]`}
	address2Candidates = []string{"input#inputAddress2", `input[name="address_line2"]`}
	stateCandidates    = []string{"input#inputState", `input[name="state"]`}
	zipCandidates      = []string{"input#inputZip", `input[name="zip"]`}

	countryCandidates = []string{"select.form-control", `select[name="country"]`, "select"}

	submitCandidates = []string{
		`button[type="submit"]:not(#contbtn)`,
		`form button[type="submit"]`,
		"button.btn-primary",
		`input[type="submit"]`,
	}

	successCandidates = []string{
		".success-msg",
		".alert-success",
		"text=/Thanks|Success|successfully/i",
	}
)

// FormReport carries the resolver result for every field and the submit.
type FormReport struct {
	Fields map[string]resolver.Result
	Submit resolver.Result
}

// Unfilled lists fields no candidate selector accepted.
func (r FormReport) Unfilled() []string {
	var out []string
	for _, name := range fieldOrder {
		if res, ok := r.Fields[name]; ok && !res.Applied() {
			out = append(out, name)
		}
	}
	return out
}

var fieldOrder = []string{
	"name", "email", "password", "company", "website",
	"country", "city", "address1", "address2", "state", "zip",
}

type formField struct {
	name       string
	candidates []string
	value      string
}

type InputFormPage struct {
	base
}

func (p *InputFormPage) Goto(ctx context.Context) error {
	if err := p.openDemo(ctx, inputFormLink, p.cfg.URLs.InputForm); err != nil {
		return err
	}
	return slider.Sleep(ctx, p.cfg.PageLoadDelay)
}

// FillAndSubmit fills every field best-effort and submits. The returned error
// is only set when the context ends; field misses are in the report.
func (p *InputFormPage) FillAndSubmit(ctx context.Context, rec entity.FormRecord) (FormReport, error) {
	report := FormReport{Fields: make(map[string]resolver.Result, len(fieldOrder))}

	fills := func(fields []formField) {
		for _, f := range fields {
			report.Fields[f.name] = p.resolver.Fill(ctx, f.candidates, f.value)
		}
	}
	fills([]formField{
		{"name", nameCandidates, rec.Name},
		{"email", emailCandidates, rec.Email},
		{"password", passwordCandidates, rec.Password},
		{"company", companyCandidates, rec.Company},
		{"website", websiteCandidates, rec.Website},
	})
	report.Fields["country"] = p.resolver.Select(ctx, countryCandidates, rec.Country)
	fills([]formField{
		{"city", cityCandidates, rec.City},
		{"address1", address1Candidates, rec.Address1},
		{"address2", address2Candidates, rec.Address2},
		{"state", stateCandidates, rec.State},
		{"zip", zipCandidates, rec.Zip},
	})

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("fill form: %w", err)
	}
	if missing := report.Unfilled(); len(missing) > 0 {
		p.logger.Warn("form fields left unfilled", "fields", missing)
	}

	report.Submit = p.SubmitForm(ctx)
	return report, nil
}

// SubmitEmpty presses submit without touching any field.
func (p *InputFormPage) SubmitEmpty(ctx context.Context) resolver.Result {
	return p.SubmitForm(ctx)
}

func (p *InputFormPage) SubmitForm(ctx context.Context) resolver.Result {
	return p.resolver.Click(ctx, submitCandidates)
}

// SuccessMessage waits up to the message-check timeout per candidate and
// returns the first success text found.
func (p *InputFormPage) SuccessMessage(ctx context.Context) (string, bool) {
	res := p.resolver.ReadText(ctx, successCandidates, p.cfg.MessageCheck)
	return res.Text, res.Applied()
}

func (p *InputFormPage) CurrentURL(ctx context.Context) (string, error) {
	return p.browser.CurrentURL(ctx)
}
