package di

import (
	"fmt"

	"playground-e2e/internal/application/port/input"
	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/application/service"
	"playground-e2e/internal/config"
	"playground-e2e/internal/infrastructure/artifacts"
	"playground-e2e/internal/infrastructure/browser/rod"
	"playground-e2e/internal/infrastructure/logger"
	"playground-e2e/internal/usecase/pages"
	"playground-e2e/internal/usecase/scenario"
	"playground-e2e/internal/usecase/slider"
	"playground-e2e/internal/usecase/suite"

	"github.com/google/uuid"
)

type Container struct {
	RunID     string
	Config    config.Config
	Logger    output.LoggerPort
	Artifacts output.ArtifactPort
	Browsers  output.BrowserFactory
	Scenarios *service.ScenarioRegistry
	Runner    input.SuiteRunner

	root output.LoggerPort
}

func NewContainer(cfg config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()

	logCfg := logger.DefaultConfig("playground-e2e")
	logCfg.Dir = cfg.Log.Dir
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	root, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log := root.WithField("run_id", runID)

	recorder := artifacts.NewRecorder(cfg.ArtifactsDir, cfg.ScreenshotMaxWidth)
	browsers := rod.NewFactory(BrowserConfig(cfg))
	registry := service.NewScenarioRegistry(scenario.All()...)

	runner := suite.NewRunner(registry, browsers, recorder, log, SuiteConfig(cfg, runID))

	log.Info("container ready",
		"base_url", cfg.BaseURL,
		"headless", cfg.Headless,
		"retries", cfg.Retries,
		"ci", cfg.CI,
	)

	return &Container{
		RunID:     runID,
		Config:    cfg,
		Logger:    log,
		Artifacts: recorder,
		Browsers:  browsers,
		Scenarios: registry,
		Runner:    runner,
		root:      root,
	}, nil
}

func (c *Container) Close() {
	if c.root != nil {
		c.root.Close()
	}
}

func BrowserConfig(cfg config.Config) rod.BrowserConfig {
	bc := rod.DefaultConfig()
	bc.Headless = cfg.Headless
	bc.SlowMotion = cfg.SlowMotion
	bc.Trace = cfg.Trace
	bc.NoSandbox = cfg.NoSandbox
	bc.BaseURL = cfg.BaseURL
	bc.Timeout = cfg.Timeouts.Action
	bc.NavigationTimeout = cfg.Timeouts.Navigation
	bc.ViewportWidth = cfg.Viewport.Width
	bc.ViewportHeight = cfg.Viewport.Height
	return bc
}

func PagesConfig(cfg config.Config) pages.Config {
	pc := pages.DefaultConfig()
	pc.PageLoadDelay = cfg.Timeouts.PageLoad
	pc.MessageCheck = cfg.Timeouts.MessageCheck
	pc.ActionTimeout = cfg.Timeouts.Action

	sc := slider.DefaultConfig()
	sc.DiscoveryTimeout = cfg.Timeouts.SliderDiscovery
	sc.SettleDelay = cfg.Timeouts.SliderSettle
	pc.Slider = sc
	return pc
}

func SuiteConfig(cfg config.Config, runID string) suite.Config {
	return suite.Config{
		RunID:       runID,
		Retries:     cfg.Retries,
		TestTimeout: cfg.Timeouts.Test,
		Expect:      cfg.Timeouts.Expect,
		Pages:       PagesConfig(cfg),
		Data:        scenario.DefaultData(),
	}
}
