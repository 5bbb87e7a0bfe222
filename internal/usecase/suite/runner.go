// Package suite runs scenarios one after another, each attempt in a fresh
// browser session, retrying failures and collecting diagnostics.
package suite

import (
	"context"
	"fmt"
	"time"

	"playground-e2e/internal/application/port/input"
	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/application/service"
	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/usecase/pages"
	"playground-e2e/internal/usecase/scenario"
)

var _ input.SuiteRunner = (*Runner)(nil)

const artifactTimeout = 10 * time.Second

type Config struct {
	RunID string
	// Retries is the number of extra attempts after a failure.
	Retries     int
	TestTimeout time.Duration
	Expect      time.Duration
	Pages       pages.Config
	Data        scenario.Data
}

type Runner struct {
	registry   *service.ScenarioRegistry
	newBrowser output.BrowserFactory
	artifacts  output.ArtifactPort
	logger     output.LoggerPort
	cfg        Config
	now        func() time.Time
}

func NewRunner(
	registry *service.ScenarioRegistry,
	newBrowser output.BrowserFactory,
	artifacts output.ArtifactPort,
	logger output.LoggerPort,
	cfg Config,
) *Runner {
	return &Runner{
		registry:   registry,
		newBrowser: newBrowser,
		artifacts:  artifacts,
		logger:     logger.Named("suite"),
		cfg:        cfg,
		now:        time.Now,
	}
}

// Run executes the named scenarios. Scenario failures are reported in the
// returned report; the error is reserved for unknown names and cancellation.
func (r *Runner) Run(ctx context.Context, names ...string) (*entity.SuiteReport, error) {
	scenarios, err := r.registry.Select(names...)
	if err != nil {
		return nil, err
	}

	report := &entity.SuiteReport{RunID: r.cfg.RunID}
	start := r.now()
	defer func() { report.Duration = r.now().Sub(start) }()

	r.logger.Info("suite started", "scenarios", len(scenarios), "retries", r.cfg.Retries)
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("suite interrupted: %w", err)
		}
		report.Results = append(report.Results, r.runScenario(ctx, sc))
	}
	r.logger.Info("suite finished",
		"passed", report.Count(entity.ScenarioStatusPassed),
		"flaky", report.Count(entity.ScenarioStatusFlaky),
		"failed", report.Count(entity.ScenarioStatusFailed),
	)
	return report, nil
}

func (r *Runner) runScenario(ctx context.Context, sc scenario.Scenario) entity.ScenarioResult {
	log := r.logger.WithField("scenario", sc.Name)
	res := entity.ScenarioResult{Name: sc.Name, Status: entity.ScenarioStatusRunning}
	start := r.now()

	log.Info("scenario started", "description", sc.Description)
	for n := 1; n <= r.cfg.Retries+1; n++ {
		a := r.attempt(ctx, sc, n, log.WithField("attempt", n))
		res.Attempts = append(res.Attempts, a)
		if a.Err == nil {
			res.Status = entity.ScenarioStatusPassed
			if n > 1 {
				res.Status = entity.ScenarioStatusFlaky
			}
			break
		}
		log.Warn("scenario attempt failed", "attempt", n, "error", a.Err, "artifacts", a.Artifacts)
		if ctx.Err() != nil {
			break
		}
	}
	if res.Status == entity.ScenarioStatusRunning {
		res.Status = entity.ScenarioStatusFailed
	}
	res.Duration = r.now().Sub(start)

	log.Info("scenario finished", "status", string(res.Status), "attempts", len(res.Attempts), "duration", res.Duration)
	return res
}

func (r *Runner) attempt(ctx context.Context, sc scenario.Scenario, n int, log output.LoggerPort) (a entity.AttemptResult) {
	a.Number = n
	start := r.now()
	defer func() { a.Duration = r.now().Sub(start) }()

	// The session outlives the test deadline so failure artifacts can
	// still be captured from it.
	browser, err := r.newBrowser(ctx)
	if err != nil {
		a.Err = fmt.Errorf("start browser: %w", err)
		return a
	}
	defer browser.Close()

	if r.cfg.TestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.TestTimeout)
		defer cancel()
	}

	env := &scenario.Env{
		Browser:   browser,
		Pages:     pages.NewPlayground(browser, r.artifacts, log, r.cfg.Pages),
		Artifacts: r.artifacts,
		Logger:    log,
		Data:      r.cfg.Data,
		Expect:    r.cfg.Expect,
	}

	a.Err = runSafely(ctx, sc, env)
	if a.Err != nil {
		a.Artifacts = r.captureFailure(ctx, browser, fmt.Sprintf("%s-attempt%d", sc.Name, n), log)
	}
	return a
}

func runSafely(ctx context.Context, sc scenario.Scenario, env *scenario.Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario %s panicked: %v", sc.Name, p)
		}
	}()
	return sc.Run(ctx, env)
}

// captureFailure writes a screenshot and a DOM snapshot. It runs on a fresh
// deadline so an expired test timeout still leaves diagnostics behind.
func (r *Runner) captureFailure(ctx context.Context, browser output.BrowserPort, label string, log output.LoggerPort) []string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), artifactTimeout)
	defer cancel()

	var paths []string
	if p, err := r.artifacts.Screenshot(ctx, browser, label); err != nil {
		log.Error("failure screenshot", "error", err)
	} else {
		paths = append(paths, p)
	}
	if p, err := r.artifacts.DOMSnapshot(ctx, browser, label); err != nil {
		log.Error("failure DOM snapshot", "error", err)
	} else {
		paths = append(paths, p)
	}
	return paths
}
