package pages

import (
	"context"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/usecase/resolver"
	"playground-e2e/internal/usecase/slider"
)

// Playground bundles the demo page helpers over one browser session.
type Playground struct {
	SimpleForm *SimpleFormPage
	Sliders    *SlidersPage
	InputForm  *InputFormPage

	base base
}

func NewPlayground(browser output.BrowserPort, artifacts output.ArtifactPort, logger output.LoggerPort, cfg Config) *Playground {
	log := logger.Named("pages")
	b := base{
		browser:  browser,
		resolver: resolver.New(browser, logger, resolver.Config{ActionTimeout: cfg.ActionTimeout}),
		logger:   log,
		cfg:      cfg,
	}
	return &Playground{
		SimpleForm: &SimpleFormPage{base: b},
		Sliders:    &SlidersPage{base: b, sim: slider.New(browser, artifacts, logger, cfg.Slider)},
		InputForm:  &InputFormPage{base: b},
		base:       b,
	}
}

func (p *Playground) GotoPlayground(ctx context.Context) error {
	return p.base.GotoPlayground(ctx)
}
