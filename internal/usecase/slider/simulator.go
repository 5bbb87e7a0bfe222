// Package slider drags range inputs with synthetic pointer events and reads
// back the displayed value. It does not judge the value; callers compare it to
// their target with whatever tolerance applies.
package slider

import (
	"context"
	"fmt"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"
)

const (
	DefaultSelector = `input[type="range"]`
	DefaultOutput   = "output"
	DefaultBubble   = ".range-slider__tooltip, .rangeslider__value-bubble, .rangeslider__tooltip, .slider-value"
	DefaultSteps    = 20
	// DefaultStartFraction lands the pointer on the thumb's resting position
	// rather than the track edge, which may not take pointer input.
	DefaultStartFraction = 0.15
	DefaultScrollY       = 300
)

type Config struct {
	Selector         string
	OutputSelector   string
	BubbleSelector   string
	Steps            int
	StartFraction    float64
	ScrollY          float64
	DiscoveryTimeout time.Duration
	SettleDelay      time.Duration
}

func DefaultConfig() Config {
	return Config{
		Selector:         DefaultSelector,
		OutputSelector:   DefaultOutput,
		BubbleSelector:   DefaultBubble,
		Steps:            DefaultSteps,
		StartFraction:    DefaultStartFraction,
		ScrollY:          DefaultScrollY,
		DiscoveryTimeout: 30 * time.Second,
		SettleDelay:      2 * time.Second,
	}
}

// Instruction asks for slider Index (zero-based among matches) to be dragged
// to TargetPercent of its width. Callers clamp the percentage.
type Instruction struct {
	Index         int
	TargetPercent float64
}

type Status int

const (
	StatusDragged Status = iota
	StatusIndexOutOfRange
	StatusNoBoundingBox
)

func (s Status) String() string {
	switch s {
	case StatusDragged:
		return "dragged"
	case StatusIndexOutOfRange:
		return "index_out_of_range"
	case StatusNoBoundingBox:
		return "no_bounding_box"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type DragResult struct {
	Status Status
	// Count is the number of sliders found on the page.
	Count int
	Box   entity.BoundingBox
	Start entity.Point
	Path  []entity.Point
	// Artifact is the screenshot taken when the index was out of range.
	Artifact string
}

type Simulator struct {
	browser   output.BrowserPort
	artifacts output.ArtifactPort
	logger    output.LoggerPort
	cfg       Config
}

func New(browser output.BrowserPort, artifacts output.ArtifactPort, logger output.LoggerPort, cfg Config) *Simulator {
	if cfg.Steps < 1 {
		cfg.Steps = DefaultSteps
	}
	return &Simulator{
		browser:   browser,
		artifacts: artifacts,
		logger:    logger.Named("slider"),
		cfg:       cfg,
	}
}

// Drag moves slider in.Index toward in.TargetPercent. An index past the
// discovered sliders and a slider without geometry are soft failures reported
// through Status. Errors are driver failures, including the discovery
// timeout, and should fail the caller.
func (s *Simulator) Drag(ctx context.Context, in Instruction) (DragResult, error) {
	var res DragResult

	// Some layouts only attach geometry to elements near the viewport.
	if err := s.browser.MouseWheel(ctx, 0, s.cfg.ScrollY); err != nil {
		return res, fmt.Errorf("scroll to sliders: %w", err)
	}
	if err := s.browser.WaitForSelector(ctx, s.cfg.Selector, s.cfg.DiscoveryTimeout); err != nil {
		return res, fmt.Errorf("wait for sliders: %w", err)
	}

	count, err := s.browser.Count(ctx, s.cfg.Selector)
	if err != nil {
		return res, fmt.Errorf("count sliders: %w", err)
	}
	res.Count = count
	s.logger.Info("sliders discovered", "count", count)

	if in.Index < 0 || in.Index >= count {
		res.Status = StatusIndexOutOfRange
		s.logger.Warn("slider index out of range", "index", in.Index, "count", count)
		path, err := s.artifacts.Screenshot(ctx, s.browser, "sliders-not-found")
		if err != nil {
			s.logger.Error("screenshot failed", "error", err)
		}
		res.Artifact = path
		return res, nil
	}

	target := entity.Nth(s.cfg.Selector, in.Index)
	if err := s.browser.WaitVisible(ctx, target); err != nil {
		return res, fmt.Errorf("wait for slider %d: %w", in.Index, err)
	}
	box, err := s.browser.BoundingBox(ctx, target)
	if err != nil {
		return res, fmt.Errorf("slider %d bounding box: %w", in.Index, err)
	}
	if box == nil || box.Empty() {
		res.Status = StatusNoBoundingBox
		s.logger.Warn("slider has no bounding box, drag skipped", "index", in.Index)
		return res, nil
	}

	res.Box = *box
	res.Start, res.Path = DragPath(*box, in.TargetPercent, s.cfg.StartFraction, s.cfg.Steps)

	if err := s.pointerDrag(ctx, res.Start, res.Path); err != nil {
		return res, err
	}
	res.Status = StatusDragged

	if err := Sleep(ctx, s.cfg.SettleDelay); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Simulator) pointerDrag(ctx context.Context, start entity.Point, path []entity.Point) error {
	if err := s.browser.MouseMove(ctx, start); err != nil {
		return fmt.Errorf("move to slider thumb: %w", err)
	}
	if err := s.browser.MouseDown(ctx); err != nil {
		return fmt.Errorf("pointer down: %w", err)
	}
	for _, p := range path {
		if err := s.browser.MouseMove(ctx, p); err != nil {
			// Leave the button released so later interactions are not a drag.
			_ = s.browser.MouseUp(context.WithoutCancel(ctx))
			return fmt.Errorf("drag move: %w", err)
		}
	}
	if err := s.browser.MouseUp(ctx); err != nil {
		return fmt.Errorf("pointer up: %w", err)
	}
	return nil
}

// Sleep waits for d or until ctx ends, whichever is first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
