package driving

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ActivityService exposes the local audit trail.
type ActivityService interface {
	// Recent returns up to limit activities, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)

	// Clear removes the trail.
	Clear(ctx context.Context) error
}
