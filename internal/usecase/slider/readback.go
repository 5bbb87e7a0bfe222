package slider

import (
	"context"

	"playground-e2e/internal/domain/entity"
)

// Source names the strategy that produced a Reading.
type Source string

const (
	SourceOutput    Source = "output"
	SourceBubble    Source = "bubble"
	SourceAttribute Source = "value_attribute"
)

type Reading struct {
	Value  string
	Source Source
}

type strategy struct {
	source Source
	read   func(ctx context.Context, index int) (string, bool, error)
}

func (s *Simulator) strategies() []strategy {
	return []strategy{
		{SourceOutput, s.positional(s.cfg.OutputSelector)},
		{SourceBubble, s.positional(s.cfg.BubbleSelector)},
		{SourceAttribute, s.valueAttribute},
	}
}

// positional reads the text of the index-th element matching selector, on the
// assumption that value displays are laid out in slider order.
func (s *Simulator) positional(selector string) func(ctx context.Context, index int) (string, bool, error) {
	return func(ctx context.Context, index int) (string, bool, error) {
		n, err := s.browser.Count(ctx, selector)
		if err != nil || n <= index {
			return "", false, err
		}
		return s.browser.TextContent(ctx, entity.Nth(selector, index))
	}
}

func (s *Simulator) valueAttribute(ctx context.Context, index int) (string, bool, error) {
	return s.browser.Attribute(ctx, entity.Nth(s.cfg.Selector, index), "value")
}

// ReadValue returns the first non-null value among the output element, the
// value bubble and the slider's value attribute, in that order. Strategy errors
// fall through to the next one.
func (s *Simulator) ReadValue(ctx context.Context, index int) (Reading, bool) {
	for _, st := range s.strategies() {
		v, ok, err := st.read(ctx, index)
		if err != nil {
			s.logger.Debug("slider value strategy failed", "source", string(st.source), "error", err)
			continue
		}
		if ok {
			return Reading{Value: v, Source: st.source}, true
		}
	}
	return Reading{}, false
}
