package driven

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ActivityStore persists the local audit trail of backend submissions.
type ActivityStore interface {
	// Record saves one activity.
	Record(ctx context.Context, a *domain.Activity) error

	// List returns the most recent activities, newest first.
	// limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.Activity, error)

	// Clear removes every activity.
	Clear(ctx context.Context) error
}
