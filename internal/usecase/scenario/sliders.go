package scenario

import (
	"context"
	"fmt"
	"strings"

	"playground-e2e/internal/usecase/slider"
)

func Sliders() Scenario {
	return Scenario{
		Name:        "sliders",
		Description: "Validate drag and drop sliders functionality",
		Run:         runSliders,
	}
}

func runSliders(ctx context.Context, env *Env) error {
	page := env.Pages.Sliders
	data := env.Data.Slider

	if err := page.Goto(ctx); err != nil {
		return err
	}

	res, err := page.Drag(ctx, data.SliderIndex, ClampPercent(data.TargetValue))
	if err != nil {
		return err
	}
	if res.Status != slider.StatusDragged {
		env.Logger.Warn("slider was not dragged", "status", res.Status.String(), "count", res.Count)
	}

	reading, ok := page.Value(ctx, data.SliderIndex)
	if !ok || strings.TrimSpace(reading.Value) == "" {
		return ErrNoValue
	}
	value, err := WithinTolerance(reading.Value, data.TargetValue, data.Tolerance)
	if err != nil {
		return err
	}
	env.Logger.Info("slider value within target range",
		"value", value,
		"target", data.TargetValue,
		"tolerance", data.Tolerance,
		"source", string(reading.Source),
	)
	return nil
}

// ClampPercent bounds a target value to the slider's 0..100 range.
func ClampPercent(v int) float64 {
	return float64(min(max(v, 0), 100))
}

// WithinTolerance parses the leading integer of raw and checks it lies in
// [target-tolerance, target+tolerance].
func WithinTolerance(raw string, target, tolerance int) (int, error) {
	v, ok := LeadingInt(raw)
	if !ok {
		return 0, fmt.Errorf("%w: slider value %q is not a number", ErrAssertion, raw)
	}
	if v < target-tolerance || v > target+tolerance {
		return v, fmt.Errorf("%w: slider value %d outside %d±%d", ErrAssertion, v, target, tolerance)
	}
	return v, nil
}

// LeadingInt reads an optionally signed base-10 integer at the start of s
// after surrounding whitespace, ignoring whatever follows ("96%" is 96).
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		n = n*10 + int(s[digits]-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
