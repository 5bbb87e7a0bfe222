package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"playground-e2e/internal/application/service"
	"playground-e2e/internal/config"
	"playground-e2e/internal/di"
	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/infrastructure/artifacts"
	"playground-e2e/internal/infrastructure/browser/rod"
	"playground-e2e/internal/infrastructure/fixture"
	"playground-e2e/internal/infrastructure/logger"
	"playground-e2e/internal/usecase/pages"
	"playground-e2e/internal/usecase/scenario"
	"playground-e2e/internal/usecase/slider"
	"playground-e2e/internal/usecase/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveEnv switches the suite from the local replica to the configured site.
const liveEnv = "PLAYGROUND_E2E_LIVE"

func suiteConfig(t *testing.T) config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("launches Chrome")
	}

	cfg := config.Default(true)
	cfg.ArtifactsDir = t.TempDir()
	cfg.Log.Dir = ""
	cfg.Retries = 0
	if os.Getenv(liveEnv) != "" {
		return cfg
	}

	srv, err := fixture.Start(fixture.Config{Addr: "127.0.0.1:0", Quiet: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Close(ctx)
	})

	cfg = cfg.WithBaseURL(srv.URL)
	cfg.Timeouts.PageLoad = 200 * time.Millisecond
	cfg.Timeouts.SliderSettle = 200 * time.Millisecond
	cfg.Timeouts.MessageCheck = 5 * time.Second
	return cfg
}

func newPlayground(t *testing.T, cfg config.Config) (*pages.Playground, *rod.BrowserAdapter) {
	t.Helper()
	b, err := rod.NewBrowserAdapter(context.Background(), di.BrowserConfig(cfg))
	require.NoError(t, err)
	t.Cleanup(b.Close)

	rec := artifacts.NewRecorder(cfg.ArtifactsDir, cfg.ScreenshotMaxWidth)
	return pages.NewPlayground(b, rec, logger.NewNop(), di.PagesConfig(cfg)), b
}

func TestSimpleForm_EchoesMessage(t *testing.T) {
	cfg := suiteConfig(t)
	p, _ := newPlayground(t, cfg)
	ctx := context.Background()

	require.NoError(t, p.SimpleForm.Goto(ctx))
	got, ok, err := p.SimpleForm.Submit(ctx, entity.DefaultSimpleForm.Message)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.DefaultSimpleForm.ExpectedOutput, got)
}

func TestSliders_DragWithinTolerance(t *testing.T) {
	cfg := suiteConfig(t)
	p, _ := newPlayground(t, cfg)
	ctx := context.Background()
	data := entity.DefaultSlider

	require.NoError(t, p.Sliders.Goto(ctx))
	res, err := p.Sliders.Drag(ctx, data.SliderIndex, float64(data.TargetValue))
	require.NoError(t, err)
	require.Equal(t, slider.StatusDragged, res.Status)
	assert.Len(t, res.Path, slider.DefaultSteps)

	reading, ok := p.Sliders.Value(ctx, data.SliderIndex)
	require.True(t, ok)
	v, err := scenario.WithinTolerance(reading.Value, data.TargetValue, data.Tolerance)
	assert.NoError(t, err, "slider read %d from %s", v, reading.Source)
}

func TestSliders_OutOfRangeIndexIsSoft(t *testing.T) {
	cfg := suiteConfig(t)
	p, _ := newPlayground(t, cfg)
	ctx := context.Background()

	require.NoError(t, p.Sliders.Goto(ctx))
	res, err := p.Sliders.Drag(ctx, 99, 50)
	require.NoError(t, err)
	assert.Equal(t, slider.StatusIndexOutOfRange, res.Status)

	shots, err := filepath.Glob(filepath.Join(cfg.ArtifactsDir, "sliders-not-found-*.png"))
	require.NoError(t, err)
	assert.Len(t, shots, 1)
}

func TestInputForm_EmptySubmitStaysThenSucceeds(t *testing.T) {
	cfg := suiteConfig(t)
	p, b := newPlayground(t, cfg)
	ctx := context.Background()

	require.NoError(t, p.InputForm.Goto(ctx))

	res := p.InputForm.SubmitEmpty(ctx)
	require.True(t, res.Applied())
	url, err := b.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Contains(t, url, "input-form-demo")

	report, err := p.InputForm.FillAndSubmit(ctx, entity.DefaultFormRecord)
	require.NoError(t, err)
	assert.Empty(t, report.Unfilled())

	msg, ok := p.InputForm.SuccessMessage(ctx)
	require.True(t, ok)
	assert.Contains(t, msg, entity.DefaultSuccessMessage)
}

func TestSuite_AllScenariosPass(t *testing.T) {
	cfg := suiteConfig(t)
	rec := artifacts.NewRecorder(cfg.ArtifactsDir, cfg.ScreenshotMaxWidth)
	runner := suite.NewRunner(
		service.NewScenarioRegistry(scenario.All()...),
		rod.NewFactory(di.BrowserConfig(cfg)),
		rec,
		logger.NewNop(),
		di.SuiteConfig(cfg, "e2e"),
	)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	for _, res := range report.Results {
		assert.Equal(t, entity.ScenarioStatusPassed, res.Status, "%s: %v", res.Name, res.Err())
	}
	assert.True(t, report.OK())
}
