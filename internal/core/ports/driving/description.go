package driving

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// DescriptionService manages the backend's description documents.
type DescriptionService interface {
	// List returns all description documents.
	List(ctx context.Context) ([]domain.KnowledgeDocument, error)

	// Add stores a new description and returns its id and the backend message.
	Add(ctx context.Context, in domain.DescriptionInput) (id, message string, err error)

	// Update replaces an existing description's title and text.
	Update(ctx context.Context, in domain.DescriptionInput) (string, error)

	// Remove deletes a description by id.
	Remove(ctx context.Context, id string) (string, error)

	// Manage performs an action-tagged change.
	Manage(ctx context.Context, action domain.ManageAction, in domain.DescriptionInput) (string, error)
}
