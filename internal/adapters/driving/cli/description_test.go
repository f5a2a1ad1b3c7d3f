package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

func TestDescriptionListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "description", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No descriptions found.")
}

func TestDescriptionListCmd_Prints(t *testing.T) {
	ts := setupTestServices(t)
	ts.Description.Docs = []domain.KnowledgeDocument{
		{
			ID:        "d1",
			Title:     "About us",
			Source:    "https://shop.example/about",
			Content:   "We make oak furniture.",
			UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{ID: "d2", Content: "No title here"},
	}

	out, err := executeCommand(t, "", "desc", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "About us")
	assert.Contains(t, out, "Source:  https://shop.example/about")
	assert.Contains(t, out, "Total: 2 descriptions")
}

func TestDescriptionListCmd_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.Description.Docs = []domain.KnowledgeDocument{{ID: "d1", Title: "About us", Content: "x"}}

	out, err := executeCommand(t, "", "description", "list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"doc_id": "d1"`)
	assert.NotContains(t, out, "created_at")
}

func TestDescriptionAddCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "", "description", "add", "--title", "About", longText)

	require.NoError(t, err)
	require.Len(t, ts.Description.Added, 1)
	assert.Equal(t, "About", ts.Description.Added[0].Title)
	assert.Contains(t, out, "Document added successfully")
	assert.Contains(t, out, "ID: generated-id")
}

func TestDescriptionAddCmd_TooShort(t *testing.T) {
	ts := setupTestServices(t)

	_, err := executeCommand(t, "", "description", "add", "short")

	require.ErrorIs(t, err, domain.ErrTextTooShort)
	assert.Empty(t, ts.Description.Added)
}

func TestDescriptionUpdateCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "", "description", "update", "d1", "--title", "New", longText)

	require.NoError(t, err)
	require.Len(t, ts.Description.Updated, 1)
	assert.Equal(t, "d1", ts.Description.Updated[0].ID)
	assert.Equal(t, "New", ts.Description.Updated[0].Title)
	assert.Contains(t, out, "Description updated.")
}

func TestDescriptionRemoveCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := executeCommand(t, "", "description", "remove", "d1")

	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ts.Description.Removed)
	assert.Contains(t, out, "Description removed.")
}

func TestDescriptionRemoveCmd_BackendError(t *testing.T) {
	ts := setupTestServices(t)
	ts.Description.Err = &domain.BackendError{Status: 404, Message: "Document not found"}

	_, err := executeCommand(t, "", "description", "remove", "zzz")

	require.Error(t, err)
	var be *domain.BackendError
	require.True(t, errors.As(err, &be))
	assert.True(t, be.IsNotFound())
}
