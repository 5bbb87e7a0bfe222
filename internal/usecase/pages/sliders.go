package pages

import (
	"context"

	"playground-e2e/internal/usecase/slider"
)

const slidersLink = "Drag & Drop Sliders"

type SlidersPage struct {
	base
	sim *slider.Simulator
}

func (p *SlidersPage) Goto(ctx context.Context) error {
	if err := p.openDemo(ctx, slidersLink, p.cfg.URLs.DragDropSliders); err != nil {
		return err
	}
	return slider.Sleep(ctx, p.cfg.PageLoadDelay)
}

// Drag moves slider index toward percent; see slider.Simulator.Drag for the
// soft-fail statuses.
func (p *SlidersPage) Drag(ctx context.Context, index int, percent float64) (slider.DragResult, error) {
	return p.sim.Drag(ctx, slider.Instruction{Index: index, TargetPercent: percent})
}

func (p *SlidersPage) Value(ctx context.Context, index int) (slider.Reading, bool) {
	return p.sim.ReadValue(ctx, index)
}
