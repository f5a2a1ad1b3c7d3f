package driven

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// Backend is the knowledge-base service. Every "hard" operation (crawling,
// embedding, retrieval, inference) happens behind it; the client only sends
// requests and reports responses.
//
// Non-2xx replies return *domain.BackendError. Transport failures wrap
// domain.ErrBackendUnavailable. No method retries.
type Backend interface {
	// ExtractURLs classifies the pages reachable from seed.
	ExtractURLs(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error)

	// ProcessURLs submits one list to its kind's processing endpoint.
	ProcessURLs(ctx context.Context, kind domain.ListKind, urls []string) (*ProcessReply, error)

	// ProcessText submits a text blob to its kind's processing endpoint.
	ProcessText(ctx context.Context, kind domain.ListKind, text string) (*ProcessReply, error)

	// Chat sends one query and returns the assistant's reply.
	Chat(ctx context.Context, query string) (string, error)

	// ListDescriptions returns every stored description document.
	ListDescriptions(ctx context.Context) ([]domain.KnowledgeDocument, error)

	// AddDescription stores a new description document.
	AddDescription(ctx context.Context, in domain.DescriptionInput) (string, error)

	// RemoveDescription deletes a description document by id.
	RemoveDescription(ctx context.Context, id string) (string, error)

	// ManageDescription performs an action-tagged description change.
	ManageDescription(ctx context.Context, action domain.ManageAction, in domain.DescriptionInput) (string, error)

	// ListProducts returns every stored product.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// AddProduct stores a new product.
	AddProduct(ctx context.Context, p domain.Product) (*ProductReply, error)

	// UpdateProduct replaces an existing product.
	UpdateProduct(ctx context.Context, p domain.Product) (*ProductReply, error)

	// RemoveProduct deletes products matching the reference.
	RemoveProduct(ctx context.Context, ref domain.ProductRef) (*RemoveReply, error)
}

// ProcessReply is the backend's answer to a processing submission.
type ProcessReply struct {
	// Message is the backend's status text. May be empty.
	Message string

	// Products holds any products the backend extracted.
	Products []domain.Product
}

// ProductReply is the backend's answer to a product write.
type ProductReply struct {
	Message string
	Product domain.Product
}

// RemoveReply is the backend's answer to a product removal.
type RemoveReply struct {
	Message    string
	RemovedIDs []string
}
