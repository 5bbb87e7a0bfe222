// Package config builds the immutable suite configuration. Values come from
// defaults, an optional playground.yaml, and PLAYGROUND_* environment variables,
// in increasing priority. The result is passed by value to every component.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"playground-e2e/internal/application/port/output"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Viewport struct {
	Width  int
	Height int
}

type Timeouts struct {
	// Action bounds a single element interaction.
	Action     time.Duration
	Navigation time.Duration
	// Expect bounds assertion polling such as URL checks.
	Expect time.Duration
	// Test bounds one scenario attempt end to end.
	Test time.Duration

	PageLoad        time.Duration
	SliderSettle    time.Duration
	SliderDiscovery time.Duration
	MessageCheck    time.Duration
}

type LogConfig struct {
	Dir    string
	Level  string
	Format string
}

type Config struct {
	BaseURL    string
	Headless   bool
	SlowMotion time.Duration
	Trace      bool
	NoSandbox  bool
	Viewport   Viewport
	Timeouts   Timeouts
	Retries    int

	ArtifactsDir       string
	ScreenshotMaxWidth int

	Log LogConfig
	CI  bool
}

const (
	keyBaseURL            = "base_url"
	keyHeadless           = "headless"
	keySlowMotion         = "slow_motion"
	keyTrace              = "trace"
	keyNoSandbox          = "no_sandbox"
	keyViewportWidth      = "viewport.width"
	keyViewportHeight     = "viewport.height"
	keyRetries            = "retries"
	keyArtifactsDir       = "artifacts.dir"
	keyScreenshotMaxWidth = "artifacts.screenshot_max_width"
	keyLogDir             = "log.dir"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"

	keyTimeoutAction          = "timeouts.action"
	keyTimeoutNavigation      = "timeouts.navigation"
	keyTimeoutExpect          = "timeouts.expect"
	keyTimeoutTest            = "timeouts.test"
	keyTimeoutPageLoad        = "timeouts.page_load"
	keyTimeoutSliderSettle    = "timeouts.slider_settle"
	keyTimeoutSliderDiscovery = "timeouts.slider_discovery"
	keyTimeoutMessageCheck    = "timeouts.message_check"
)

// Default returns the built-in values. CI runs headless with two
// retries, local runs are headed with one.
func Default(ci bool) Config {
	retries := 1
	if ci {
		retries = 2
	}
	return Config{
		BaseURL:   "https://www.lambdatest.com",
		Headless:  ci,
		NoSandbox: ci,
		Viewport:  Viewport{Width: 1280, Height: 720},
		Timeouts: Timeouts{
			Action:          15 * time.Second,
			Navigation:      30 * time.Second,
			Expect:          15 * time.Second,
			Test:            90 * time.Second,
			PageLoad:        5 * time.Second,
			SliderSettle:    2 * time.Second,
			SliderDiscovery: 30 * time.Second,
			MessageCheck:    15 * time.Second,
		},
		Retries:      retries,
		ArtifactsDir: "test-results",
		Log: LogConfig{
			Dir:    "log",
			Level:  "info",
			Format: "console",
		},
		CI: ci,
	}
}

// Load resolves the configuration. configFile may be empty, in which case
// playground.yaml is looked up in the working directory and skipped if absent.
func Load(env output.ConfigPort, configFile string) (Config, error) {
	ci := isCI(env.Get("CI"))
	def := Default(ci)

	v := viper.New()
	setDefaults(v, def)

	v.SetEnvPrefix("PLAYGROUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("playground")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		BaseURL:    strings.TrimRight(v.GetString(keyBaseURL), "/"),
		Headless:   v.GetBool(keyHeadless),
		SlowMotion: v.GetDuration(keySlowMotion),
		Trace:      v.GetBool(keyTrace),
		NoSandbox:  v.GetBool(keyNoSandbox),
		Viewport: Viewport{
			Width:  v.GetInt(keyViewportWidth),
			Height: v.GetInt(keyViewportHeight),
		},
		Timeouts: Timeouts{
			Action:          v.GetDuration(keyTimeoutAction),
			Navigation:      v.GetDuration(keyTimeoutNavigation),
			Expect:          v.GetDuration(keyTimeoutExpect),
			Test:            v.GetDuration(keyTimeoutTest),
			PageLoad:        v.GetDuration(keyTimeoutPageLoad),
			SliderSettle:    v.GetDuration(keyTimeoutSliderSettle),
			SliderDiscovery: v.GetDuration(keyTimeoutSliderDiscovery),
			MessageCheck:    v.GetDuration(keyTimeoutMessageCheck),
		},
		Retries:            v.GetInt(keyRetries),
		ArtifactsDir:       v.GetString(keyArtifactsDir),
		ScreenshotMaxWidth: v.GetInt(keyScreenshotMaxWidth),
		Log: LogConfig{
			Dir:    v.GetString(keyLogDir),
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
		CI: ci,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// isCI treats CI=false and CI=0 as local runs. Runners often export the vendor
// name instead of a boolean, so any other non-empty value counts.
func isCI(val string) bool {
	val = strings.TrimSpace(val)
	if val == "" {
		return false
	}
	if parsed, err := strconv.ParseBool(val); err == nil {
		return parsed
	}
	return true
}

func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault(keyBaseURL, def.BaseURL)
	v.SetDefault(keyHeadless, def.Headless)
	v.SetDefault(keySlowMotion, def.SlowMotion)
	v.SetDefault(keyTrace, def.Trace)
	v.SetDefault(keyNoSandbox, def.NoSandbox)
	v.SetDefault(keyViewportWidth, def.Viewport.Width)
	v.SetDefault(keyViewportHeight, def.Viewport.Height)
	v.SetDefault(keyRetries, def.Retries)
	v.SetDefault(keyArtifactsDir, def.ArtifactsDir)
	v.SetDefault(keyScreenshotMaxWidth, def.ScreenshotMaxWidth)
	v.SetDefault(keyLogDir, def.Log.Dir)
	v.SetDefault(keyLogLevel, def.Log.Level)
	v.SetDefault(keyLogFormat, def.Log.Format)

	v.SetDefault(keyTimeoutAction, def.Timeouts.Action)
	v.SetDefault(keyTimeoutNavigation, def.Timeouts.Navigation)
	v.SetDefault(keyTimeoutExpect, def.Timeouts.Expect)
	v.SetDefault(keyTimeoutTest, def.Timeouts.Test)
	v.SetDefault(keyTimeoutPageLoad, def.Timeouts.PageLoad)
	v.SetDefault(keyTimeoutSliderSettle, def.Timeouts.SliderSettle)
	v.SetDefault(keyTimeoutSliderDiscovery, def.Timeouts.SliderDiscovery)
	v.SetDefault(keyTimeoutMessageCheck, def.Timeouts.MessageCheck)
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must be >= 0, got %d", ErrInvalidConfig, c.Retries)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	for name, d := range map[string]time.Duration{
		"action":     c.Timeouts.Action,
		"navigation": c.Timeouts.Navigation,
		"expect":     c.Timeouts.Expect,
		"test":       c.Timeouts.Test,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s timeout must be positive", ErrInvalidConfig, name)
		}
	}
	return nil
}

// WithBaseURL returns a copy pointing at another origin.
func (c Config) WithBaseURL(base string) Config {
	c.BaseURL = strings.TrimRight(base, "/")
	return c
}
