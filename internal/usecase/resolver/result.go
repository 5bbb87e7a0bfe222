package resolver

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrExhausted    = errors.New("no candidate selector accepted the action")
	ErrNoCandidates = errors.New("empty candidate list")
)

type Outcome int

const (
	// NotApplicable: the selector matched nothing or could not be evaluated.
	NotApplicable Outcome = iota
	Applied
	// ActionFailed: the selector matched but the action itself returned an error.
	ActionFailed
)

func (o Outcome) String() string {
	switch o {
	case NotApplicable:
		return "not_applicable"
	case Applied:
		return "applied"
	case ActionFailed:
		return "action_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Attempt struct {
	Selector string
	Outcome  Outcome
	Matches  int
	Err      error
}

// Result is returned by every resolution. It never panics on zero value.
type Result struct {
	Intent   Intent
	Attempts []Attempt
	// Selector is the candidate that was applied, empty otherwise.
	Selector string
	// Text holds the read value for ReadText.
	Text string

	err error
}

func (r Result) Applied() bool {
	return r.Selector != ""
}

// Found is the WaitFor view of Applied.
func (r Result) Found() bool {
	return r.Applied()
}

// Err is nil when an attempt applied. Otherwise it wraps ErrExhausted,
// ErrNoCandidates, or the context error that stopped iteration.
func (r Result) Err() error {
	if r.Applied() {
		return nil
	}
	return r.err
}

// ActionErrors returns errors from candidates that matched but failed to act.
// These usually point at a disabled or covered element rather than markup drift.
func (r Result) ActionErrors() []error {
	var errs []error
	for _, a := range r.Attempts {
		if a.Outcome == ActionFailed {
			errs = append(errs, fmt.Errorf("%s: %w", a.Selector, a.Err))
		}
	}
	return errs
}

func (r Result) selectors() []string {
	out := make([]string, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		out = append(out, a.Selector)
	}
	return out
}

func exhausted(r Result) error {
	err := fmt.Errorf("%w: %s [%s]", ErrExhausted, r.Intent.Kind, strings.Join(r.selectors(), ", "))
	if actionErrs := r.ActionErrors(); len(actionErrs) > 0 {
		return multierr.Combine(append([]error{err}, actionErrs...)...)
	}
	return err
}
