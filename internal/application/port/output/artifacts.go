package output

import "context"

// ArtifactPort writes diagnostic files for postmortem. Returned paths are
// where the files landed.
type ArtifactPort interface {
	Screenshot(ctx context.Context, browser BrowserPort, label string) (string, error)
	DOMSnapshot(ctx context.Context, browser BrowserPort, label string) (string, error)
}
