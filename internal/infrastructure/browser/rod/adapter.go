package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrElementNotFound = errors.New("element not found")
	ErrClosed          = errors.New("browser closed")
)

const (
	defaultTimeout           = 15 * time.Second
	defaultNavigationTimeout = 30 * time.Second
	defaultSlowMotion        = 0
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	baseURL    *url.URL
	timeout    time.Duration
	navTimeout time.Duration
	closed     bool
}

type BrowserConfig struct {
	Headless          bool
	SlowMotion        time.Duration
	Timeout           time.Duration
	NavigationTimeout time.Duration
	NoSandbox         bool
	DevTools          bool
	Trace             bool
	// BaseURL resolves relative navigation targets.
	BaseURL        string
	ViewportWidth  int
	ViewportHeight int
	// DisableSecurityFeatures turns off web security for cross-origin fixtures.
	DisableSecurityFeatures bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:          false,
		SlowMotion:        defaultSlowMotion,
		Timeout:           defaultTimeout,
		NavigationTimeout: defaultNavigationTimeout,
		ViewportWidth:     1280,
		ViewportHeight:    720,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavigationTimeout
	}

	var base *url.URL
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, fmt.Errorf("%w: base url %q", ErrInvalidURL, cfg.BaseURL)
		}
		base = u
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.DisableSecurityFeatures {
		l = l.Set("disable-web-security").
			Set("allow-running-insecure-content")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.ViewportWidth,
			Height:            cfg.ViewportHeight,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			_ = browser.Close()
			l.Kill()
			return nil, fmt.Errorf("failed to set viewport: %w", err)
		}
	}

	return &BrowserAdapter{
		browser:    browser,
		launcher:   l,
		page:       page,
		baseURL:    base,
		timeout:    cfg.Timeout,
		navTimeout: cfg.NavigationTimeout,
	}, nil
}

// NewFactory adapts the constructor to output.BrowserFactory.
func NewFactory(cfg BrowserConfig) output.BrowserFactory {
	return func(ctx context.Context) (output.BrowserPort, error) {
		return NewBrowserAdapter(ctx, cfg)
	}
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) pageCtx(ctx context.Context, timeout time.Duration) *rod.Page {
	return b.page.Context(ctx).Timeout(timeout)
}

func (b *BrowserAdapter) resolveURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		if b.baseURL == nil {
			return "", fmt.Errorf("%w: relative url %q without base url", ErrInvalidURL, raw)
		}
		u = b.baseURL.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" && u.String() != "about:blank" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return u.String(), nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if b.closed {
		return ErrClosed
	}
	target, err := b.resolveURL(rawURL)
	if err != nil {
		return err
	}
	p := b.pageCtx(ctx, b.navTimeout)
	if err := p.Navigate(target); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) WaitForLoadState(ctx context.Context) error {
	if err := b.pageCtx(ctx, b.navTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) WaitForURL(ctx context.Context, pattern *regexp.Regexp) error {
	err := b.pageCtx(ctx, b.navTimeout).Wait(rod.Eval(`(source) => new RegExp(source).test(location.href)`, pattern.String()))
	if err != nil {
		current, _ := b.CurrentURL(ctx)
		return fmt.Errorf("wait for url %s (current %s): %w", pattern, current, err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	info, err := b.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (b *BrowserAdapter) elements(p *rod.Page, sel selector) (rod.Elements, error) {
	switch sel.kind {
	case kindXPath:
		return p.ElementsX(sel.xpath)
	case kindText:
		return p.ElementsByJS(rod.Eval(textMatchJS, sel.css, sel.pattern, sel.flags, false))
	default:
		return p.Elements(sel.css)
	}
}

// waitFirst blocks until the selector matches at least one element or p's
// context ends.
func (b *BrowserAdapter) waitFirst(p *rod.Page, sel selector) (*rod.Element, error) {
	switch sel.kind {
	case kindXPath:
		return p.ElementX(sel.xpath)
	case kindText:
		return p.ElementByJS(rod.Eval(textMatchJS, sel.css, sel.pattern, sel.flags, true))
	default:
		return p.Element(sel.css)
	}
}

func (b *BrowserAdapter) Count(ctx context.Context, raw string) (int, error) {
	sel, err := parseSelector(raw)
	if err != nil {
		return 0, err
	}
	els, err := b.elements(b.pageCtx(ctx, b.timeout), sel)
	if err != nil {
		return 0, fmt.Errorf("locate %s: %w", raw, err)
	}
	return len(els), nil
}

func (b *BrowserAdapter) element(ctx context.Context, target entity.Target) (*rod.Element, error) {
	if b.closed {
		return nil, ErrClosed
	}
	sel, err := parseSelector(target.Selector)
	if err != nil {
		return nil, err
	}
	p := b.pageCtx(ctx, b.timeout)
	first, err := b.waitFirst(p, sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrElementNotFound, target.Selector, err)
	}
	if target.Index == 0 {
		return first, nil
	}
	els, err := b.elements(p, sel)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", target.Selector, err)
	}
	if target.Index < 0 || target.Index >= len(els) {
		return nil, fmt.Errorf("%w: %s[%d] of %d", ErrElementNotFound, target.Selector, target.Index, len(els))
	}
	return els[target.Index], nil
}

func (b *BrowserAdapter) Fill(ctx context.Context, target entity.Target, text string) error {
	el, err := b.element(ctx, target)
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("field not visible: %w", err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select field text: %w", err)
	}
	if text == "" {
		_, err = el.Eval(`() => { this.value = ""; this.dispatchEvent(new Event("input", { bubbles: true })) }`)
		if err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		return nil
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Click(ctx context.Context, target entity.Target) error {
	el, err := b.element(ctx, target)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) SelectOption(ctx context.Context, target entity.Target, label string) error {
	el, err := b.element(ctx, target)
	if err != nil {
		return err
	}
	pattern := `^\s*` + regexp.QuoteMeta(label) + `\s*$`
	if err := el.Select([]string{pattern}, true, rod.SelectorTypeRegex); err != nil {
		return fmt.Errorf("select %q failed: %w", label, err)
	}
	return nil
}

func (b *BrowserAdapter) WaitVisible(ctx context.Context, target entity.Target) error {
	el, err := b.element(ctx, target)
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("wait visible %s: %w", target.Selector, err)
	}
	return nil
}

func (b *BrowserAdapter) BoundingBox(ctx context.Context, target entity.Target) (*entity.BoundingBox, error) {
	el, err := b.element(ctx, target)
	if err != nil {
		return nil, err
	}
	shape, err := el.Shape()
	if err != nil || shape == nil || len(shape.Quads) == 0 {
		// Not rendered: no content quads.
		return nil, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, quad := range shape.Quads {
		for i := 0; i+1 < len(quad); i += 2 {
			minX = math.Min(minX, quad[i])
			maxX = math.Max(maxX, quad[i])
			minY = math.Min(minY, quad[i+1])
			maxY = math.Max(maxY, quad[i+1])
		}
	}
	return &entity.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, nil
}

func (b *BrowserAdapter) TextContent(ctx context.Context, target entity.Target) (string, bool, error) {
	el, err := b.element(ctx, target)
	if err != nil {
		return "", false, err
	}
	res, err := el.Eval(`() => this.textContent`)
	if err != nil {
		return "", false, fmt.Errorf("read text: %w", err)
	}
	var v gson.JSON = res.Value
	if v.Nil() {
		return "", false, nil
	}
	return v.Str(), true, nil
}

func (b *BrowserAdapter) Attribute(ctx context.Context, target entity.Target, name string) (string, bool, error) {
	el, err := b.element(ctx, target)
	if err != nil {
		return "", false, err
	}
	v, err := el.Attribute(name)
	if err != nil {
		return "", false, fmt.Errorf("read attribute %s: %w", name, err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (b *BrowserAdapter) WaitForSelector(ctx context.Context, raw string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = b.timeout
	}
	sel, err := parseSelector(raw)
	if err != nil {
		return err
	}
	el, err := b.waitFirst(b.pageCtx(ctx, timeout), sel)
	if err != nil {
		return fmt.Errorf("wait for %s: %w", raw, err)
	}
	// Present is not enough: pages pre-render hidden result banners.
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("wait for %s visible: %w", raw, err)
	}
	return nil
}

func (b *BrowserAdapter) mouse(ctx context.Context) (*rod.Mouse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.closed {
		return nil, ErrClosed
	}
	return b.page.Mouse, nil
}

func (b *BrowserAdapter) MouseMove(ctx context.Context, to entity.Point) error {
	m, err := b.mouse(ctx)
	if err != nil {
		return err
	}
	if err := m.MoveTo(proto.Point{X: to.X, Y: to.Y}); err != nil {
		return fmt.Errorf("mouse move: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) MouseDown(ctx context.Context) error {
	m, err := b.mouse(ctx)
	if err != nil {
		return err
	}
	if err := m.Down(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("mouse down: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) MouseUp(ctx context.Context) error {
	m, err := b.mouse(ctx)
	if err != nil {
		return err
	}
	if err := m.Up(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("mouse up: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) MouseWheel(ctx context.Context, dx, dy float64) error {
	m, err := b.mouse(ctx)
	if err != nil {
		return err
	}
	if err := m.Scroll(dx, dy, 1); err != nil {
		return fmt.Errorf("mouse wheel: %w", err)
	}
	// Wheel scrolling may animate; later geometry reads need the final offset.
	if _, err := b.pageCtx(ctx, b.timeout).Eval(scrollSettleJS); err != nil {
		return fmt.Errorf("scroll settle: %w", err)
	}
	return nil
}

// scrollSettleJS resolves once scrollY has held still for three frames, or
// after 60 frames.
const scrollSettleJS = `() => new Promise((resolve) => {
	let last = -1, stable = 0, frames = 0;
	const tick = () => {
		const y = window.scrollY;
		if (y === last) { stable++; } else { stable = 0; last = y; }
		if (stable >= 3 || ++frames >= 60) { resolve(y); return; }
		requestAnimationFrame(tick);
	};
	requestAnimationFrame(tick);
})`

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	data, err := b.pageCtx(ctx, b.timeout).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	shot := &entity.Screenshot{Data: data, Format: "png"}
	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		shot.Width = cfg.Width
		shot.Height = cfg.Height
	}
	return shot, nil
}

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	html, err := b.pageCtx(ctx, b.timeout).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
