package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// Ensure ProductService implements the interface.
var _ driving.ProductService = (*ProductService)(nil)

// ProductService manages the backend's product catalogue.
type ProductService struct {
	backend driven.Backend
	log     recorder
	newID   func() string
}

// NewProductService creates a new product service.
func NewProductService(backend driven.Backend, activity driven.ActivityStore) *ProductService {
	return &ProductService{
		backend: backend,
		log:     newRecorder(activity),
		newID:   uuid.NewString,
	}
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.backend.ListProducts(ctx)
}

// Add validates and stores a new product under a client-generated id.
func (s *ProductService) Add(ctx context.Context, p domain.Product) (*domain.Product, string, error) {
	p = trimProduct(p)
	if err := p.Validate(); err != nil {
		return nil, "", err
	}
	if p.ID == "" {
		p.ID = s.newID()
	}

	reply, err := s.backend.AddProduct(ctx, p)
	if err != nil {
		s.log.record(ctx, domain.OpAddProduct, p.Name, "", err)
		return nil, "", err
	}
	s.log.record(ctx, domain.OpAddProduct, p.Name, reply.Message, nil)
	return &reply.Product, reply.Message, nil
}

// Update validates and replaces an existing product.
func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, string, error) {
	p = trimProduct(p)
	if err := p.Validate(); err != nil {
		return nil, "", err
	}

	reply, err := s.backend.UpdateProduct(ctx, p)
	if err != nil {
		s.log.record(ctx, domain.OpUpdateProduct, p.Name, "", err)
		return nil, "", err
	}
	s.log.record(ctx, domain.OpUpdateProduct, p.Name, reply.Message, nil)
	return &reply.Product, reply.Message, nil
}

// Remove deletes products by id or name.
func (s *ProductService) Remove(ctx context.Context, ref domain.ProductRef) ([]string, string, error) {
	if err := ref.Validate(); err != nil {
		return nil, "", err
	}
	target := ref.ID
	if target == "" {
		target = ref.Name
	}

	reply, err := s.backend.RemoveProduct(ctx, ref)
	if err != nil {
		s.log.record(ctx, domain.OpRemoveProduct, target, "", err)
		return nil, "", err
	}
	s.log.record(ctx, domain.OpRemoveProduct, target, reply.Message, nil)
	return reply.RemovedIDs, reply.Message, nil
}

// catalogueEntry is one product in an import file.
type catalogueEntry struct {
	ID             string  `json:"product_id" yaml:"product_id"`
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	Price          float64 `json:"price" yaml:"price"`
	Specifications string  `json:"specifications" yaml:"specifications"`
	Features       string  `json:"features" yaml:"features"`
	ImageURL       string  `json:"image_url" yaml:"image_url"`
}

func (e catalogueEntry) toDomain() domain.Product {
	return domain.Product{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Price:          e.Price,
		Specifications: e.Specifications,
		Features:       e.Features,
		ImageURL:       e.ImageURL,
	}
}

// catalogueFile accepts either a bare list or {products: [...]}.
type catalogueFile struct {
	Products []catalogueEntry `json:"products" yaml:"products"`
}

// Import adds every product in a catalogue. Entries are added one at a
// time; a failing entry is reported and the rest continue.
func (s *ProductService) Import(
	ctx context.Context, r io.Reader, format driving.CatalogueFormat,
) ([]domain.ImportOutcome, error) {
	logger.Section("Import Catalogue")

	entries, err := decodeCatalogue(r, format)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalogue holds %d entries", len(entries))

	outcomes := make([]domain.ImportOutcome, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out := domain.ImportOutcome{Index: i, Name: e.Name}
		added, msg, err := s.Add(ctx, e.toDomain())
		if err != nil {
			out.Err = err
		} else {
			out.ID = added.ID
			out.Message = msg
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func decodeCatalogue(r io.Reader, format driving.CatalogueFormat) ([]catalogueEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &domain.ValidationError{Reason: "Catalogue is empty"}
	}

	switch format {
	case driving.CatalogueJSON:
		if trimmed[0] == '[' {
			var list []catalogueEntry
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("parsing JSON catalogue: %w", err)
			}
			return list, nil
		}
		var file catalogueFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, fmt.Errorf("parsing JSON catalogue: %w", err)
		}
		return file.Products, nil
	case driving.CatalogueYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("parsing YAML catalogue: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var list []catalogueEntry
			if err := node.Decode(&list); err != nil {
				return nil, fmt.Errorf("parsing YAML catalogue: %w", err)
			}
			return list, nil
		}
		var file catalogueFile
		if err := node.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing YAML catalogue: %w", err)
		}
		return file.Products, nil
	default:
		return nil, &domain.ValidationError{Reason: fmt.Sprintf("Unsupported catalogue format %q", format)}
	}
}

func trimProduct(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	return p
}
