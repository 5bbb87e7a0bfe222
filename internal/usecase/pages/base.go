// Package pages holds one helper per playground demo page. Helpers navigate,
// interact through the resolver or the slider simulator, and hand raw
// observations back; they do not assert.
package pages

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"
	"playground-e2e/internal/usecase/resolver"
	"playground-e2e/internal/usecase/slider"
)

type Config struct {
	URLs entity.URLs
	// PageLoadDelay is an extra pause after landing on a demo page, for
	// widgets that initialise after the load event.
	PageLoadDelay time.Duration
	MessageCheck  time.Duration
	ActionTimeout time.Duration
	Slider        slider.Config
}

func DefaultConfig() Config {
	return Config{
		URLs:          entity.DefaultURLs,
		PageLoadDelay: 5 * time.Second,
		MessageCheck:  15 * time.Second,
		ActionTimeout: 15 * time.Second,
		Slider:        slider.DefaultConfig(),
	}
}

type base struct {
	browser  output.BrowserPort
	resolver *resolver.Resolver
	logger   output.LoggerPort
	cfg      Config
}

// GotoPlayground opens the playground index.
func (b *base) GotoPlayground(ctx context.Context) error {
	if err := b.browser.Navigate(ctx, b.cfg.URLs.Playground); err != nil {
		return fmt.Errorf("open playground: %w", err)
	}
	if err := b.browser.WaitForLoadState(ctx); err != nil {
		return fmt.Errorf("playground load: %w", err)
	}
	return nil
}

// openDemo goes through the playground index and follows the demo link, the
// way a user would, then waits for the demo URL.
func (b *base) openDemo(ctx context.Context, linkText, path string) error {
	if err := b.GotoPlayground(ctx); err != nil {
		return err
	}
	link := entity.First(fmt.Sprintf("a:text(%s)", strconv.Quote(linkText)))
	if err := b.browser.Click(ctx, link); err != nil {
		return fmt.Errorf("open %s: %w", linkText, err)
	}
	if err := b.browser.WaitForURL(ctx, regexp.MustCompile(regexp.QuoteMeta(path))); err != nil {
		return fmt.Errorf("open %s: %w", linkText, err)
	}
	b.logger.Info("demo page opened", "page", linkText)
	return nil
}
