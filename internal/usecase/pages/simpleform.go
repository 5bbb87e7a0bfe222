package pages

import (
	"context"
	"fmt"

	"playground-e2e/internal/domain/entity"
)

const (
	simpleFormLink = "Simple Form Demo"

	messageInputSelector     = "#user-message"
	showInputSelector        = "#showInput"
	displayedMessageSelector = "#message"
)

type SimpleFormPage struct {
	base
}

func (p *SimpleFormPage) Goto(ctx context.Context) error {
	return p.openDemo(ctx, simpleFormLink, p.cfg.URLs.SimpleForm)
}

func (p *SimpleFormPage) EnterMessage(ctx context.Context, message string) error {
	if err := p.browser.Fill(ctx, entity.First(messageInputSelector), message); err != nil {
		return fmt.Errorf("enter message: %w", err)
	}
	return nil
}

// ClickGetCheckedValue presses the button that echoes the message.
func (p *SimpleFormPage) ClickGetCheckedValue(ctx context.Context) error {
	if err := p.browser.Click(ctx, entity.First(showInputSelector)); err != nil {
		return fmt.Errorf("show message: %w", err)
	}
	return nil
}

// DisplayedMessage returns ok=false when the element's text is null.
func (p *SimpleFormPage) DisplayedMessage(ctx context.Context) (string, bool, error) {
	text, ok, err := p.browser.TextContent(ctx, entity.First(displayedMessageSelector))
	if err != nil {
		return "", false, fmt.Errorf("read displayed message: %w", err)
	}
	return text, ok, nil
}

// Submit types message, echoes it and returns what the page displays.
func (p *SimpleFormPage) Submit(ctx context.Context, message string) (string, bool, error) {
	if err := p.browser.WaitForSelector(ctx, messageInputSelector, 0); err != nil {
		return "", false, fmt.Errorf("message input: %w", err)
	}
	if err := p.EnterMessage(ctx, message); err != nil {
		return "", false, err
	}
	if err := p.ClickGetCheckedValue(ctx); err != nil {
		return "", false, err
	}
	if err := p.browser.WaitForSelector(ctx, displayedMessageSelector, 0); err != nil {
		return "", false, fmt.Errorf("displayed message: %w", err)
	}
	return p.DisplayedMessage(ctx)
}
