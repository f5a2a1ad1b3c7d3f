// Package tui provides an interactive terminal user interface for siteassist.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat talks to the assistant.
	Chat driving.ChatService

	// Ingest classifies and processes URLs and text.
	Ingest driving.IngestService

	// Description manages stored descriptions.
	Description driving.DescriptionService

	// Product manages the product catalogue.
	Product driving.ProductService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	ingest driving.IngestService,
	description driving.DescriptionService,
	product driving.ProductService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Chat:        chat,
		Ingest:      ingest,
		Description: description,
		Product:     product,
		Settings:    settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Description == nil {
		return ErrMissingDescriptionService
	}
	if p.Product == nil {
		return ErrMissingProductService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
