package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// Ensure ActivityService implements the interface.
var _ driving.ActivityService = (*ActivityService)(nil)

// ActivityService exposes the local audit trail.
type ActivityService struct {
	store driven.ActivityStore
}

// NewActivityService creates a new activity service.
// store may be nil, in which case the trail is always empty.
func NewActivityService(store driven.ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

// Recent returns up to limit activities, newest first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if s.store == nil {
		return []domain.Activity{}, nil
	}
	return s.store.List(ctx, limit)
}

// Clear removes the trail.
func (s *ActivityService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}

// recorder appends to the activity log. Failing to record never fails
// the operation being recorded.
type recorder struct {
	store driven.ActivityStore
	now   func() time.Time
}

func newRecorder(store driven.ActivityStore) recorder {
	return recorder{store: store, now: time.Now}
}

func (r recorder) record(ctx context.Context, op domain.Operation, target, message string, err error) {
	if r.store == nil {
		return
	}
	a := &domain.Activity{
		ID:        uuid.NewString(),
		Operation: op,
		Target:    target,
		Outcome:   domain.OutcomeSuccess,
		Message:   message,
		At:        r.now(),
	}
	if err != nil {
		a.Outcome = domain.OutcomeError
		a.Message = domain.UserMessage(err, "")
	}
	// The request already happened; a cancelled caller should not lose the entry.
	if rerr := r.store.Record(context.WithoutCancel(ctx), a); rerr != nil {
		logger.Warn("recording %s activity: %v", op, rerr)
	}
}
