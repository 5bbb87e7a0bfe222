package resolver

import "time"

type Kind string

const (
	KindFill     Kind = "fill"
	KindClick    Kind = "click"
	KindSelect   Kind = "select"
	KindWaitFor  Kind = "wait_for"
	KindReadText Kind = "read_text"
)

// Intent is the action the resolver performs on the first matching candidate.
type Intent struct {
	Kind  Kind
	Value string
	// Timeout, when set, makes existence a bounded wait instead of an
	// instantaneous count. WaitFor always waits.
	Timeout time.Duration
}

func Fill(value string) Intent {
	return Intent{Kind: KindFill, Value: value}
}

func Click() Intent {
	return Intent{Kind: KindClick}
}

// Select picks the option whose visible label equals label.
func Select(label string) Intent {
	return Intent{Kind: KindSelect, Value: label}
}

func WaitFor(timeout time.Duration) Intent {
	return Intent{Kind: KindWaitFor, Timeout: timeout}
}

func ReadText(timeout time.Duration) Intent {
	return Intent{Kind: KindReadText, Timeout: timeout}
}
