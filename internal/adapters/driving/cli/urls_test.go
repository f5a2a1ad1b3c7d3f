package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

func classifiedShop(_ context.Context, _ string) (*domain.ClassifiedURLSet, error) {
	return domain.NewClassifiedURLSet(
		[]string{"https://shop.example/about", "https://shop.example/pricing"},
		[]string{"https://shop.example/p/1"},
	), nil
}

func TestURLsClassifyCmd_PrintsBothLists(t *testing.T) {
	ts := setupTestServices(t)
	ts.Ingest.ClassifyFunc = classifiedShop

	out, err := executeCommand(t, "", "urls", "classify", "https://shop.example")

	require.NoError(t, err)
	assert.Contains(t, out, "Description URLs (2):")
	assert.Contains(t, out, "Product/Service URLs (1):")
	assert.Contains(t, out, "https://shop.example/p/1")
}

func TestURLsClassifyCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "urls", "classify", "https://shop.example", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"desc_urls": []`)
	assert.Contains(t, out, `"product_service_urls": []`)
}

func TestURLsClassifyCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.Ingest.ClassifyFunc = func(_ context.Context, _ string) (*domain.ClassifiedURLSet, error) {
		return nil, domain.ErrInvalidURL
	}

	_, err := executeCommand(t, "", "urls", "classify", "not a url")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestURLsProcessCmd_ReportsEachList(t *testing.T) {
	ts := setupTestServices(t)
	ts.Ingest.ProcessAllFunc = func(_ context.Context, _ *domain.ClassifiedURLSet) domain.BatchResult {
		return domain.BatchResult{
			Description: domain.ProcessResult{
				Kind: domain.KindDescription, Status: domain.ErrorStatus(errors.New("timeout")),
			},
			Product: domain.ProcessResult{
				Kind: domain.KindProduct, Status: domain.SuccessStatus(""),
			},
		}
	}

	out, err := executeCommand(t, "", "urls", "process",
		"--desc", "https://shop.example/about",
		"--product", "https://shop.example/p/1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 lists failed")
	assert.Contains(t, out, "Error: timeout")
	assert.Contains(t, out, "Processing completed successfully")
	require.NotNil(t, ts.Ingest.Processed)
	assert.Equal(t, []string{"https://shop.example/about"}, ts.Ingest.Processed.Description)
}

func TestURLsProcessCmd_NoURLs(t *testing.T) {
	ts := setupTestServices(t)

	_, err := executeCommand(t, "", "urls", "process")

	require.ErrorIs(t, err, domain.ErrEmptyList)
	assert.Nil(t, ts.Ingest.Processed)
}

func TestURLsProcessCmd_InvalidURL(t *testing.T) {
	ts := setupTestServices(t)

	_, err := executeCommand(t, "", "urls", "process", "--desc", "ftp//broken")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, ts.Ingest.Processed)
}

func TestURLsRunCmd_AppliesCorrections(t *testing.T) {
	ts := setupTestServices(t)
	ts.Ingest.ClassifyFunc = classifiedShop

	out, err := executeCommand(t, "", "urls", "run", "https://shop.example",
		"--move-to-product", "https://shop.example/pricing",
		"--drop", "https://shop.example/about",
		"--add-desc", "https://shop.example/history",
		"--drop", "https://shop.example/missing")

	require.NoError(t, err)
	require.NotNil(t, ts.Ingest.Processed)
	assert.Equal(t, []string{"https://shop.example/history"}, ts.Ingest.Processed.Description)
	assert.ElementsMatch(t,
		[]string{"https://shop.example/p/1", "https://shop.example/pricing"},
		ts.Ingest.Processed.Product)
	assert.Contains(t, out, "https://shop.example/missing is in neither list")
}

func TestURLsRunCmd_MoveMissingURL(t *testing.T) {
	ts := setupTestServices(t)
	ts.Ingest.ClassifyFunc = classifiedShop

	_, err := executeCommand(t, "", "urls", "run", "https://shop.example",
		"--move-to-desc", "https://shop.example/nowhere")

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, ts.Ingest.Processed)
}
