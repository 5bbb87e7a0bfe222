package output

import (
	"context"
	"regexp"
	"time"

	"playground-e2e/internal/domain/entity"
)

// BrowserPort is the automation driver the suite talks to. One instance owns
// one page; calls are never issued concurrently.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	WaitForLoadState(ctx context.Context) error
	WaitForURL(ctx context.Context, pattern *regexp.Regexp) error
	CurrentURL(ctx context.Context) (string, error)

	// Count returns the number of elements currently matching selector. It
	// does not wait.
	Count(ctx context.Context, selector string) (int, error)
	Fill(ctx context.Context, target entity.Target, text string) error
	Click(ctx context.Context, target entity.Target) error
	SelectOption(ctx context.Context, target entity.Target, label string) error
	WaitVisible(ctx context.Context, target entity.Target) error
	// BoundingBox returns nil when the element has no rendered geometry.
	BoundingBox(ctx context.Context, target entity.Target) (*entity.BoundingBox, error)
	// TextContent and Attribute report ok=false for a DOM null.
	TextContent(ctx context.Context, target entity.Target) (text string, ok bool, err error)
	Attribute(ctx context.Context, target entity.Target, name string) (value string, ok bool, err error)
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error

	MouseMove(ctx context.Context, to entity.Point) error
	MouseDown(ctx context.Context) error
	MouseUp(ctx context.Context) error
	MouseWheel(ctx context.Context, dx, dy float64) error

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	HTML(ctx context.Context) (string, error)

	Close()
}

// BrowserFactory opens a fresh browser session.
type BrowserFactory func(ctx context.Context) (BrowserPort, error)
