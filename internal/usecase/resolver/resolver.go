// Package resolver applies an action to the first of several candidate
// selectors that resolves on the live page. Target pages are external markup,
// so candidate lists exist to absorb markup drift; failure is reported through
// Result, never raised.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playground-e2e/internal/application/port/output"
	"playground-e2e/internal/domain/entity"
)

var errNullText = errors.New("element text is null")

type Config struct {
	// ActionTimeout bounds the action on a matched element. Zero leaves it to
	// the browser adapter.
	ActionTimeout time.Duration
}

type Resolver struct {
	browser output.BrowserPort
	logger  output.LoggerPort
	cfg     Config
}

func New(browser output.BrowserPort, logger output.LoggerPort, cfg Config) *Resolver {
	return &Resolver{
		browser: browser,
		logger:  logger.Named("resolver"),
		cfg:     cfg,
	}
}

// Resolve walks candidates in order and stops at the first one the intent is
// applied to. A candidate that matches but fails to act is recorded as
// ActionFailed and the walk continues. Exhaustion is logged once.
func (r *Resolver) Resolve(ctx context.Context, candidates []string, intent Intent) Result {
	res := Result{Intent: intent}
	if len(candidates) == 0 {
		res.err = ErrNoCandidates
		return res
	}

	for _, selector := range candidates {
		if err := ctx.Err(); err != nil {
			res.err = fmt.Errorf("resolve %s: %w", intent.Kind, err)
			return res
		}

		attempt, text := r.attempt(ctx, selector, intent)
		res.Attempts = append(res.Attempts, attempt)
		if attempt.Outcome == Applied {
			res.Selector = selector
			res.Text = text
			return res
		}
	}

	if err := ctx.Err(); err != nil {
		res.err = fmt.Errorf("resolve %s: %w", intent.Kind, err)
		return res
	}

	res.err = exhausted(res)
	r.logger.Warn("no candidate selector accepted action",
		"action", string(intent.Kind),
		"selectors", res.selectors(),
		"action_failures", len(res.ActionErrors()),
	)
	return res
}

func (r *Resolver) attempt(ctx context.Context, selector string, intent Intent) (Attempt, string) {
	a := Attempt{Selector: selector}

	if intent.Kind == KindWaitFor || intent.Timeout > 0 {
		if err := r.browser.WaitForSelector(ctx, selector, intent.Timeout); err != nil {
			a.Err = err
			return a, ""
		}
		a.Matches = 1
		if intent.Kind == KindWaitFor {
			a.Outcome = Applied
			return a, ""
		}
	} else {
		n, err := r.browser.Count(ctx, selector)
		if err != nil {
			a.Err = err
			return a, ""
		}
		a.Matches = n
		if n == 0 {
			return a, ""
		}
	}

	actCtx := ctx
	if r.cfg.ActionTimeout > 0 {
		var cancel context.CancelFunc
		actCtx, cancel = context.WithTimeout(ctx, r.cfg.ActionTimeout)
		defer cancel()
	}

	text, err := r.act(actCtx, entity.First(selector), intent)
	if err != nil {
		a.Outcome = ActionFailed
		a.Err = err
		return a, ""
	}
	a.Outcome = Applied
	return a, text
}

func (r *Resolver) act(ctx context.Context, target entity.Target, intent Intent) (string, error) {
	switch intent.Kind {
	case KindFill:
		return "", r.browser.Fill(ctx, target, intent.Value)
	case KindClick:
		return "", r.browser.Click(ctx, target)
	case KindSelect:
		return "", r.browser.SelectOption(ctx, target, intent.Value)
	case KindReadText:
		text, ok, err := r.browser.TextContent(ctx, target)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errNullText
		}
		return text, nil
	default:
		return "", fmt.Errorf("unknown intent %q", intent.Kind)
	}
}

func (r *Resolver) Fill(ctx context.Context, candidates []string, value string) Result {
	return r.Resolve(ctx, candidates, Fill(value))
}

func (r *Resolver) Click(ctx context.Context, candidates []string) Result {
	return r.Resolve(ctx, candidates, Click())
}

func (r *Resolver) Select(ctx context.Context, candidates []string, label string) Result {
	return r.Resolve(ctx, candidates, Select(label))
}

func (r *Resolver) WaitFor(ctx context.Context, candidates []string, timeout time.Duration) Result {
	return r.Resolve(ctx, candidates, WaitFor(timeout))
}

func (r *Resolver) ReadText(ctx context.Context, candidates []string, timeout time.Duration) Result {
	return r.Resolve(ctx, candidates, ReadText(timeout))
}

// WaitForSelectorSafely reports whether selector appeared within timeout. It
// neither logs nor returns the timeout.
func (r *Resolver) WaitForSelectorSafely(ctx context.Context, selector string, timeout time.Duration) bool {
	return r.browser.WaitForSelector(ctx, selector, timeout) == nil
}
