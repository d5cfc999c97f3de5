package port

import (
	"context"

	"github.com/bnema/navstack/internal/domain/entity"
)

// TraceRecorder persists host-facing navigation events for later inspection.
type TraceRecorder interface {
	Record(ctx context.Context, event entity.TraceEvent) error
	Close() error
}

// TraceReader lists recorded events of one run.
type TraceReader interface {
	List(ctx context.Context, runID string) ([]entity.TraceEvent, error)
}
