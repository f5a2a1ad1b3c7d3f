package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
)

// mockBackend is a scripted driven.Backend. It is safe for concurrent use
// so ProcessAll can hit it from both goroutines.
type mockBackend struct {
	mu sync.Mutex

	urlSet     *domain.ClassifiedURLSet
	extractErr error

	processReply map[domain.ListKind]*driven.ProcessReply
	processErr   map[domain.ListKind]error
	processed    map[domain.ListKind][]string
	textSent     map[domain.ListKind]string

	chatReply string
	chatErr   error
	queries   []string

	docs         []domain.KnowledgeDocument
	descMsg      string
	descErr      error
	descAdded    []domain.DescriptionInput
	descRemoved  []string
	manageCalls  []domain.ManageAction
	manageInputs []domain.DescriptionInput

	products      []domain.Product
	productReply  *driven.ProductReply
	productErr    error
	productsAdded []domain.Product
	removeReply   *driven.RemoveReply
	removeRef     domain.ProductRef

	listErr error
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		processReply: make(map[domain.ListKind]*driven.ProcessReply),
		processErr:   make(map[domain.ListKind]error),
		processed:    make(map[domain.ListKind][]string),
		textSent:     make(map[domain.ListKind]string),
	}
}

func (m *mockBackend) ExtractURLs(_ context.Context, _ string) (*domain.ClassifiedURLSet, error) {
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	if m.urlSet == nil {
		return domain.NewClassifiedURLSet(nil, nil), nil
	}
	return m.urlSet.Clone(), nil
}

func (m *mockBackend) ProcessURLs(_ context.Context, kind domain.ListKind, urls []string) (*driven.ProcessReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed[kind] = urls
	if err := m.processErr[kind]; err != nil {
		return nil, err
	}
	if reply := m.processReply[kind]; reply != nil {
		return reply, nil
	}
	return &driven.ProcessReply{}, nil
}

func (m *mockBackend) ProcessText(_ context.Context, kind domain.ListKind, text string) (*driven.ProcessReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textSent[kind] = text
	if err := m.processErr[kind]; err != nil {
		return nil, err
	}
	if reply := m.processReply[kind]; reply != nil {
		return reply, nil
	}
	return &driven.ProcessReply{}, nil
}

func (m *mockBackend) Chat(_ context.Context, query string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return m.chatReply, m.chatErr
}

func (m *mockBackend) ListDescriptions(_ context.Context) ([]domain.KnowledgeDocument, error) {
	return m.docs, m.listErr
}

func (m *mockBackend) AddDescription(_ context.Context, in domain.DescriptionInput) (string, error) {
	m.descAdded = append(m.descAdded, in)
	if m.descErr != nil {
		return "", m.descErr
	}
	return m.descMsg, nil
}

func (m *mockBackend) RemoveDescription(_ context.Context, id string) (string, error) {
	m.descRemoved = append(m.descRemoved, id)
	if m.descErr != nil {
		return "", m.descErr
	}
	return m.descMsg, nil
}

func (m *mockBackend) ManageDescription(
	_ context.Context, action domain.ManageAction, in domain.DescriptionInput,
) (string, error) {
	m.manageCalls = append(m.manageCalls, action)
	m.manageInputs = append(m.manageInputs, in)
	if m.descErr != nil {
		return "", m.descErr
	}
	return m.descMsg, nil
}

func (m *mockBackend) ListProducts(_ context.Context) ([]domain.Product, error) {
	return m.products, m.listErr
}

func (m *mockBackend) AddProduct(_ context.Context, p domain.Product) (*driven.ProductReply, error) {
	m.productsAdded = append(m.productsAdded, p)
	if m.productErr != nil {
		return nil, m.productErr
	}
	if m.productReply != nil {
		return m.productReply, nil
	}
	return &driven.ProductReply{Message: "Product added successfully", Product: p}, nil
}

func (m *mockBackend) UpdateProduct(_ context.Context, p domain.Product) (*driven.ProductReply, error) {
	if m.productErr != nil {
		return nil, m.productErr
	}
	return &driven.ProductReply{Message: "Product updated successfully", Product: p}, nil
}

func (m *mockBackend) RemoveProduct(_ context.Context, ref domain.ProductRef) (*driven.RemoveReply, error) {
	m.removeRef = ref
	if m.productErr != nil {
		return nil, m.productErr
	}
	if m.removeReply != nil {
		return m.removeReply, nil
	}
	return &driven.RemoveReply{}, nil
}
