package di

import (
	"testing"
	"time"

	"playground-e2e/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default(true)
	cfg.Log.Dir = t.TempDir()
	cfg.ArtifactsDir = t.TempDir()
	return cfg
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)
	defer c.Close()

	_, err = uuid.Parse(c.RunID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"simple-form", "sliders", "input-form"}, c.Scenarios.Names())
	assert.NotNil(t, c.Runner)
	assert.NotNil(t, c.Browsers)
}

func TestNewContainer_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.BaseURL = "ftp://nope"

	_, err := NewContainer(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigMapping(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timeouts.SliderSettle = 3 * time.Second

	bc := BrowserConfig(cfg)
	assert.True(t, bc.Headless)
	assert.Equal(t, cfg.BaseURL, bc.BaseURL)
	assert.Equal(t, 1280, bc.ViewportWidth)
	assert.Equal(t, 15*time.Second, bc.Timeout)

	sc := SuiteConfig(cfg, "id")
	assert.Equal(t, 2, sc.Retries)
	assert.Equal(t, 90*time.Second, sc.TestTimeout)
	assert.Equal(t, 3*time.Second, sc.Pages.Slider.SettleDelay)
	assert.Equal(t, 5*time.Second, sc.Pages.PageLoadDelay)
	assert.Equal(t, "Thanks for contacting us", sc.Data.SuccessMessage)
}
