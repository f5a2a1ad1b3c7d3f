package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
)

// Ensure ActivityStore implements the interface.
var _ driven.ActivityStore = (*ActivityStore)(nil)

// ActivityStore is an in-memory implementation of driven.ActivityStore.
type ActivityStore struct {
	mu      sync.RWMutex
	entries []domain.Activity
}

// NewActivityStore creates a new in-memory activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Record saves one activity.
func (s *ActivityStore) Record(_ context.Context, a *domain.Activity) error {
	if a.ID == "" {
		return domain.MissingField("id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == a.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.entries = append(s.entries, *a)
	return nil
}

// List returns the most recent activities, newest first.
func (s *ActivityStore) List(_ context.Context, limit int) ([]domain.Activity, error) {
	s.mu.RLock()
	out := make([]domain.Activity, len(s.entries))
	copy(out, s.entries)
	s.mu.RUnlock()

	// Reverse insertion order breaks timestamp ties.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear removes every activity.
func (s *ActivityStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
