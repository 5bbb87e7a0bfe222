package input

import (
	"context"

	"playground-e2e/internal/domain/entity"
)

// SuiteRunner executes named scenarios sequentially. An empty name list runs
// every registered scenario.
type SuiteRunner interface {
	Run(ctx context.Context, names ...string) (*entity.SuiteReport, error)
}
