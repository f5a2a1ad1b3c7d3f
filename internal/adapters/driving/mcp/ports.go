package mcp

import (
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers customer questions.
	Chat driving.ChatService

	// Ingest classifies and processes site content.
	Ingest driving.IngestService

	// Description lists stored descriptions.
	Description driving.DescriptionService

	// Product lists the product catalogue.
	Product driving.ProductService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	// Description and Product are optional; their tools return empty lists.
	return nil
}
