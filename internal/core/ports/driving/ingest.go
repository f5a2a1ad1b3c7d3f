package driving

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// IngestService drives URL classification and content processing.
type IngestService interface {
	// Classify splits the pages reachable from seed into description and
	// product lists. seed must be an absolute http(s) URL.
	Classify(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error)

	// ProcessList submits one list. The result's status is always set;
	// the error is non-nil when the status is an error.
	ProcessList(ctx context.Context, kind domain.ListKind, urls []string) (domain.ProcessResult, error)

	// ProcessAll submits both lists concurrently and reports both outcomes.
	// One list failing never changes the other's status.
	ProcessAll(ctx context.Context, set *domain.ClassifiedURLSet) domain.BatchResult

	// ProcessText validates and submits a text blob for kind.
	ProcessText(ctx context.Context, kind domain.ListKind, text string) (domain.ProcessResult, error)
}
