// Package mocks holds an in-memory BrowserPort for unit tests. It models a
// page as selector -> matched elements and records every call in order.
package mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"sync"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"
)

var _ output.BrowserPort = (*Browser)(nil)

var ErrTimeout = errors.New("mock: wait timed out")

type Element struct {
	Text *string
	// Value is what Fill wrote or what SelectOption picked.
	Value string
	Attrs map[string]string
	Box   *entity.BoundingBox
	// ActionErr is returned by Fill, Click and SelectOption on this element.
	ActionErr error
}

type Call struct {
	Method   string
	Selector string
	Index    int
	Arg      string
	Point    entity.Point
}

type Browser struct {
	mu sync.Mutex

	Elements map[string][]*Element
	// CountErr makes Count fail for the given selector.
	CountErr map[string]error
	// OnClick runs after a successful click, e.g. to reveal new elements.
	OnClick map[string]func(b *Browser)

	URL              string
	ScreenshotWidth  int
	ScreenshotHeight int
	PageHTML         string

	Calls  []Call
	Closed bool
}

func NewBrowser() *Browser {
	return &Browser{
		Elements:         map[string][]*Element{},
		CountErr:         map[string]error{},
		OnClick:          map[string]func(b *Browser){},
		URL:              "about:blank",
		ScreenshotWidth:  64,
		ScreenshotHeight: 32,
		PageHTML:         "<html><body></body></html>",
	}
}

func Text(s string) *string {
	return &s
}

// Add appends elements matched by selector.
func (b *Browser) Add(selector string, els ...*Element) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Elements[selector] = append(b.Elements[selector], els...)
	return b
}

// Get returns the element or nil; it does not record a call.
func (b *Browser) Get(selector string, index int) *Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	els := b.Elements[selector]
	if index < 0 || index >= len(els) {
		return nil
	}
	return els[index]
}

// Methods returns the recorded method names in call order.
func (b *Browser) Methods() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Calls))
	for i, c := range b.Calls {
		out[i] = c.Method
	}
	return out
}

// CallsTo returns recorded calls of one method.
func (b *Browser) CallsTo(method string) []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Call
	for _, c := range b.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (b *Browser) record(c Call) {
	b.Calls = append(b.Calls, c)
}

func (b *Browser) element(t entity.Target) (*Element, error) {
	els := b.Elements[t.Selector]
	if t.Index < 0 || t.Index >= len(els) {
		return nil, fmt.Errorf("mock: no element %s[%d]", t.Selector, t.Index)
	}
	return els[t.Index], nil
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Navigate", Arg: url})
	b.URL = url
	return ctx.Err()
}

func (b *Browser) WaitForLoadState(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "WaitForLoadState"})
	return ctx.Err()
}

func (b *Browser) WaitForURL(ctx context.Context, pattern *regexp.Regexp) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "WaitForURL", Arg: pattern.String()})
	if !pattern.MatchString(b.URL) {
		return fmt.Errorf("%w: url %s !~ %s", ErrTimeout, b.URL, pattern)
	}
	return nil
}

func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.URL, nil
}

func (b *Browser) Count(ctx context.Context, selector string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Count", Selector: selector})
	if err := b.CountErr[selector]; err != nil {
		return 0, err
	}
	return len(b.Elements[selector]), nil
}

func (b *Browser) Fill(ctx context.Context, t entity.Target, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Fill", Selector: t.Selector, Index: t.Index, Arg: text})
	el, err := b.element(t)
	if err != nil {
		return err
	}
	if el.ActionErr != nil {
		return el.ActionErr
	}
	el.Value = text
	return nil
}

func (b *Browser) Click(ctx context.Context, t entity.Target) error {
	b.mu.Lock()
	b.record(Call{Method: "Click", Selector: t.Selector, Index: t.Index})
	el, err := b.element(t)
	if err == nil && el.ActionErr != nil {
		err = el.ActionErr
	}
	hook := b.OnClick[t.Selector]
	b.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook(b)
	}
	return nil
}

func (b *Browser) SelectOption(ctx context.Context, t entity.Target, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "SelectOption", Selector: t.Selector, Index: t.Index, Arg: label})
	el, err := b.element(t)
	if err != nil {
		return err
	}
	if el.ActionErr != nil {
		return el.ActionErr
	}
	el.Value = label
	return nil
}

func (b *Browser) WaitVisible(ctx context.Context, t entity.Target) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "WaitVisible", Selector: t.Selector, Index: t.Index})
	_, err := b.element(t)
	return err
}

func (b *Browser) BoundingBox(ctx context.Context, t entity.Target) (*entity.BoundingBox, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "BoundingBox", Selector: t.Selector, Index: t.Index})
	el, err := b.element(t)
	if err != nil {
		return nil, err
	}
	return el.Box, nil
}

func (b *Browser) TextContent(ctx context.Context, t entity.Target) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "TextContent", Selector: t.Selector, Index: t.Index})
	el, err := b.element(t)
	if err != nil {
		return "", false, err
	}
	if el.Text == nil {
		return "", false, nil
	}
	return *el.Text, true, nil
}

func (b *Browser) Attribute(ctx context.Context, t entity.Target, name string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Attribute", Selector: t.Selector, Index: t.Index, Arg: name})
	el, err := b.element(t)
	if err != nil {
		return "", false, err
	}
	v, ok := el.Attrs[name]
	return v, ok, nil
}

func (b *Browser) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "WaitForSelector", Selector: selector, Arg: timeout.String()})
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(b.Elements[selector]) == 0 {
		return fmt.Errorf("%w: %s", ErrTimeout, selector)
	}
	return nil
}

func (b *Browser) MouseMove(ctx context.Context, to entity.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "MouseMove", Point: to})
	return nil
}

func (b *Browser) MouseDown(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "MouseDown"})
	return nil
}

func (b *Browser) MouseUp(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "MouseUp"})
	return nil
}

func (b *Browser) MouseWheel(ctx context.Context, dx, dy float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "MouseWheel", Point: entity.Point{X: dx, Y: dy}})
	return nil
}

func (b *Browser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Screenshot"})

	img := image.NewRGBA(image.Rect(0, 0, b.ScreenshotWidth, b.ScreenshotHeight))
	for x := 0; x < b.ScreenshotWidth; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "png",
		Width:  b.ScreenshotWidth,
		Height: b.ScreenshotHeight,
	}, nil
}

func (b *Browser) HTML(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "HTML"})
	return b.PageHTML, nil
}

func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed = true
}
