package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingChatService,
		ErrMissingIngestService,
		ErrMissingDescriptionService,
		ErrMissingProductService,
		ErrMissingSettingsService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingChatService.Error(), "chat service")
	assert.Contains(t, ErrMissingIngestService.Error(), "ingest service")
	assert.Contains(t, ErrMissingDescriptionService.Error(), "description service")
	assert.Contains(t, ErrMissingProductService.Error(), "product service")
	assert.Contains(t, ErrMissingSettingsService.Error(), "settings service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
