package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "activity.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, &domain.Activity{
		ID: "a1", Operation: domain.OpClassify, Outcome: domain.OutcomeSuccess, At: time.Now(),
	}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var versions int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	list, err := second.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_RecordAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []domain.Activity{
		{ID: "a1", Operation: domain.OpClassify, Target: "https://acme.test", Outcome: domain.OutcomeSuccess, At: base},
		{ID: "a2", Operation: domain.OpProcessURLs, Target: "desc", Outcome: domain.OutcomeError, Message: "Error: timeout", At: base.Add(time.Minute)},
		{ID: "a3", Operation: domain.OpAddProduct, Target: "Widget", Outcome: domain.OutcomeSuccess, At: base.Add(2 * time.Minute)},
	}
	for i := range entries {
		require.NoError(t, store.Record(ctx, &entries[i]))
	}

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "a3", list[0].ID)
	assert.Equal(t, "a2", list[1].ID)
	assert.Equal(t, domain.OpProcessURLs, list[1].Operation)
	assert.Equal(t, domain.OutcomeError, list[1].Outcome)
	assert.Equal(t, "Error: timeout", list[1].Message)
	assert.Equal(t, "desc", list[1].Target)
	assert.True(t, base.Add(time.Minute).Equal(list[1].At))
}

func TestStore_ListLimit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.Record(ctx, &domain.Activity{
			ID: id, Operation: domain.OpProcessText, Outcome: domain.OutcomeSuccess,
			At: base.Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
}

func TestStore_RecordRequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Record(context.Background(), &domain.Activity{Operation: domain.OpClassify})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestStore_RecordDuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := &domain.Activity{ID: "dup", Operation: domain.OpClassify, Outcome: domain.OutcomeSuccess}

	require.NoError(t, store.Record(ctx, a))
	assert.Error(t, store.Record(ctx, a))
}

func TestStore_Clear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &domain.Activity{ID: "a1", Operation: domain.OpClassify, Outcome: domain.OutcomeSuccess}))
	require.NoError(t, store.Clear(ctx))

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
