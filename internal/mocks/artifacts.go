package mocks

import (
	"context"
	"sync"

	"playground-e2e/internal/application/port/output"
)

var _ output.ArtifactPort = (*Artifacts)(nil)

// Artifacts records requested labels instead of writing files.
type Artifacts struct {
	mu sync.Mutex

	Screenshots []string
	Snapshots   []string
	Err         error
}

func (a *Artifacts) Screenshot(ctx context.Context, browser output.BrowserPort, label string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Screenshots = append(a.Screenshots, label)
	if a.Err != nil {
		return "", a.Err
	}
	return label + ".png", nil
}

func (a *Artifacts) DOMSnapshot(ctx context.Context, browser output.BrowserPort, label string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Snapshots = append(a.Snapshots, label)
	if a.Err != nil {
		return "", a.Err
	}
	return label + ".html", nil
}
