package services

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService drives URL classification and content processing.
type IngestService struct {
	backend driven.Backend
	log     recorder
}

// NewIngestService creates a new ingest service.
// activity is optional.
func NewIngestService(backend driven.Backend, activity driven.ActivityStore) *IngestService {
	return &IngestService{
		backend: backend,
		log:     newRecorder(activity),
	}
}

// Classify splits the pages reachable from seed into the two lists.
func (s *IngestService) Classify(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error) {
	logger.Section("Classify")

	u, err := domain.ValidateURL(seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("Seed: %s", u)

	set, err := s.backend.ExtractURLs(ctx, u)
	if err != nil {
		s.log.record(ctx, domain.OpClassify, u, "", err)
		return nil, fmt.Errorf("classify %s: %w", u, err)
	}

	logger.Debug("Classified %d description and %d product URLs", len(set.Description), len(set.Product))
	s.log.record(ctx, domain.OpClassify, u,
		fmt.Sprintf("%d description, %d product", len(set.Description), len(set.Product)), nil)
	return set, nil
}

// ProcessList submits one list to its kind's endpoint.
// An empty list is rejected without a request.
func (s *IngestService) ProcessList(
	ctx context.Context, kind domain.ListKind, urls []string,
) (domain.ProcessResult, error) {
	result := domain.ProcessResult{Kind: kind}

	if !kind.IsValid() {
		result.Status = domain.ErrorStatus(domain.ErrUnknownKind)
		return result, domain.ErrUnknownKind
	}
	if len(urls) == 0 {
		result.Status = domain.ErrorStatus(domain.ErrEmptyList)
		return result, domain.ErrEmptyList
	}

	logger.Debug("Processing %d %s URLs", len(urls), kind)
	reply, err := s.backend.ProcessURLs(ctx, kind, slices.Clone(urls))
	if err != nil {
		result.Status = domain.ErrorStatus(err)
		s.log.record(ctx, domain.OpProcessURLs, kind.String(), "", err)
		return result, err
	}

	result.Status = domain.SuccessStatus(reply.Message)
	result.Products = reply.Products
	s.log.record(ctx, domain.OpProcessURLs, kind.String(), result.Status.Message, nil)
	return result, nil
}

// ProcessAll submits both lists concurrently. Each outcome is independent:
// a failure on one list neither cancels nor alters the other. An empty
// list is skipped and keeps an idle status.
func (s *IngestService) ProcessAll(ctx context.Context, set *domain.ClassifiedURLSet) domain.BatchResult {
	logger.Section("Process URLs")

	batch := domain.BatchResult{
		Description: domain.ProcessResult{Kind: domain.KindDescription, Status: domain.ProcessStatus{State: domain.ProcessIdle}},
		Product:     domain.ProcessResult{Kind: domain.KindProduct, Status: domain.ProcessStatus{State: domain.ProcessIdle}},
	}
	if set == nil {
		return batch
	}

	// A plain group: no shared context, so one failure cancels nothing.
	var g errgroup.Group
	if len(set.Description) > 0 {
		urls := slices.Clone(set.Description)
		g.Go(func() error {
			batch.Description, _ = s.ProcessList(ctx, domain.KindDescription, urls)
			return nil
		})
	}
	if len(set.Product) > 0 {
		urls := slices.Clone(set.Product)
		g.Go(func() error {
			batch.Product, _ = s.ProcessList(ctx, domain.KindProduct, urls)
			return nil
		})
	}
	_ = g.Wait()

	return batch
}

// ProcessText validates and submits a text blob.
func (s *IngestService) ProcessText(
	ctx context.Context, kind domain.ListKind, text string,
) (domain.ProcessResult, error) {
	logger.Section("Process Text")
	result := domain.ProcessResult{Kind: kind}

	if !kind.IsValid() {
		result.Status = domain.ErrorStatus(domain.ErrUnknownKind)
		return result, domain.ErrUnknownKind
	}
	if err := domain.ValidateText(text); err != nil {
		result.Status = domain.ErrorStatus(err)
		return result, err
	}

	reply, err := s.backend.ProcessText(ctx, kind, text)
	if err != nil {
		result.Status = domain.ErrorStatus(err)
		s.log.record(ctx, domain.OpProcessText, kind.String(), "", err)
		return result, err
	}

	result.Status = domain.SuccessStatus(reply.Message)
	result.Products = reply.Products
	logger.Debug("%s text processed, %d products extracted", kind.Label(), len(result.Products))
	s.log.record(ctx, domain.OpProcessText, kind.String(), result.Status.Message, nil)
	return result, nil
}
