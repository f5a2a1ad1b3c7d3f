package mcp

import (
	"context"
	"io"
	"testing"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply string
	err   error
	query string
}

func (m *mockChatService) Ask(_ context.Context, query string) (string, error) {
	m.query = query
	return m.reply, m.err
}

func (m *mockChatService) Send(ctx context.Context, conv *domain.Conversation, query string) error {
	q, err := conv.Begin(query)
	if err != nil {
		return err
	}
	reply, err := m.Ask(ctx, q)
	conv.Resolve(reply, err)
	return err
}

func (m *mockChatService) NewConversation() *domain.Conversation {
	return domain.NewConversation("")
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	set    *domain.ClassifiedURLSet
	batch  domain.BatchResult
	result domain.ProcessResult
	err    error

	processed *domain.ClassifiedURLSet
	textKind  domain.ListKind
}

func (m *mockIngestService) Classify(_ context.Context, _ string) (*domain.ClassifiedURLSet, error) {
	return m.set, m.err
}

func (m *mockIngestService) ProcessList(
	_ context.Context, kind domain.ListKind, _ []string,
) (domain.ProcessResult, error) {
	return domain.ProcessResult{Kind: kind, Status: domain.SuccessStatus("")}, m.err
}

func (m *mockIngestService) ProcessAll(_ context.Context, set *domain.ClassifiedURLSet) domain.BatchResult {
	m.processed = set
	return m.batch
}

func (m *mockIngestService) ProcessText(
	_ context.Context, kind domain.ListKind, _ string,
) (domain.ProcessResult, error) {
	m.textKind = kind
	return m.result, m.err
}

// mockDescriptionService is a mock implementation of driving.DescriptionService.
type mockDescriptionService struct {
	docs []domain.KnowledgeDocument
	err  error
}

func (m *mockDescriptionService) List(_ context.Context) ([]domain.KnowledgeDocument, error) {
	return m.docs, m.err
}

func (m *mockDescriptionService) Add(_ context.Context, _ domain.DescriptionInput) (string, string, error) {
	return "", "", m.err
}

func (m *mockDescriptionService) Update(_ context.Context, _ domain.DescriptionInput) (string, error) {
	return "", m.err
}

func (m *mockDescriptionService) Remove(_ context.Context, _ string) (string, error) {
	return "", m.err
}

func (m *mockDescriptionService) Manage(
	_ context.Context, _ domain.ManageAction, _ domain.DescriptionInput,
) (string, error) {
	return "", m.err
}

// mockProductService is a mock implementation of driving.ProductService.
type mockProductService struct {
	products []domain.Product
	err      error
}

func (m *mockProductService) List(_ context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockProductService) Add(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	return &p, "", m.err
}

func (m *mockProductService) Update(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	return &p, "", m.err
}

func (m *mockProductService) Remove(_ context.Context, _ domain.ProductRef) ([]string, string, error) {
	return nil, "", m.err
}

func (m *mockProductService) Import(
	_ context.Context, _ io.Reader, _ driving.CatalogueFormat,
) ([]domain.ImportOutcome, error) {
	return nil, m.err
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	s, err := NewServer(ports)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}
