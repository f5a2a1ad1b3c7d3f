package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// Ensure DescriptionService implements the interface.
var _ driving.DescriptionService = (*DescriptionService)(nil)

// DescriptionService manages the backend's description documents.
type DescriptionService struct {
	backend driven.Backend
	log     recorder
	newID   func() string
}

// NewDescriptionService creates a new description service.
func NewDescriptionService(backend driven.Backend, activity driven.ActivityStore) *DescriptionService {
	return &DescriptionService{
		backend: backend,
		log:     newRecorder(activity),
		newID:   uuid.NewString,
	}
}

// List returns all description documents.
func (s *DescriptionService) List(ctx context.Context) ([]domain.KnowledgeDocument, error) {
	return s.backend.ListDescriptions(ctx)
}

// Add stores a new description under a client-generated id.
func (s *DescriptionService) Add(ctx context.Context, in domain.DescriptionInput) (string, string, error) {
	in = s.prepareAdd(in)
	if err := in.Validate(false); err != nil {
		return "", "", err
	}

	msg, err := s.backend.AddDescription(ctx, in)
	s.log.record(ctx, domain.OpAddDescription, in.ID, msg, err)
	if err != nil {
		return "", "", err
	}
	return in.ID, msg, nil
}

// Update replaces an existing description's title and text.
func (s *DescriptionService) Update(ctx context.Context, in domain.DescriptionInput) (string, error) {
	return s.Manage(ctx, domain.ManageUpdate, in)
}

// Remove deletes a description by id.
func (s *DescriptionService) Remove(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", domain.MissingField("doc_id")
	}
	msg, err := s.backend.RemoveDescription(ctx, id)
	s.log.record(ctx, domain.OpRemoveDescription, id, msg, err)
	return msg, err
}

// Manage performs an action-tagged change through the manage endpoint.
func (s *DescriptionService) Manage(
	ctx context.Context, action domain.ManageAction, in domain.DescriptionInput,
) (string, error) {
	if action == domain.ManageAdd {
		in = s.prepareAdd(in)
	}
	if err := action.Validate(in); err != nil {
		return "", err
	}

	msg, err := s.backend.ManageDescription(ctx, action, in)
	s.log.record(ctx, manageOperation(action), in.ID, msg, err)
	return msg, err
}

func (s *DescriptionService) prepareAdd(in domain.DescriptionInput) domain.DescriptionInput {
	in = in.WithDefaults()
	if in.ID == "" {
		in.ID = s.newID()
	}
	return in
}

func manageOperation(action domain.ManageAction) domain.Operation {
	switch action {
	case domain.ManageAdd:
		return domain.OpAddDescription
	case domain.ManageRemove:
		return domain.OpRemoveDescription
	default:
		return domain.OpUpdateDescription
	}
}
