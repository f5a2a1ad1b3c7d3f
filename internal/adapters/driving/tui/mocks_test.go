package tui

import (
	"context"
	"io"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	AskFunc func(ctx context.Context, query string) (string, error)
}

func (m *MockChatService) Ask(ctx context.Context, query string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query)
	}
	return "", nil
}

func (m *MockChatService) Send(ctx context.Context, conv *domain.Conversation, query string) error {
	q, err := conv.Begin(query)
	if err != nil {
		return err
	}
	reply, err := m.Ask(ctx, q)
	conv.Resolve(reply, err)
	return err
}

func (m *MockChatService) NewConversation() *domain.Conversation {
	return domain.NewConversation("")
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	ClassifyFunc func(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error)
}

func (m *MockIngestService) Classify(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error) {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, seed)
	}
	return domain.NewClassifiedURLSet(nil, nil), nil
}

func (m *MockIngestService) ProcessList(
	_ context.Context, kind domain.ListKind, _ []string,
) (domain.ProcessResult, error) {
	return domain.ProcessResult{Kind: kind, Status: domain.SuccessStatus("")}, nil
}

func (m *MockIngestService) ProcessAll(_ context.Context, _ *domain.ClassifiedURLSet) domain.BatchResult {
	return domain.BatchResult{
		Description: domain.ProcessResult{Kind: domain.KindDescription, Status: domain.SuccessStatus("")},
		Product:     domain.ProcessResult{Kind: domain.KindProduct, Status: domain.SuccessStatus("")},
	}
}

func (m *MockIngestService) ProcessText(
	_ context.Context, kind domain.ListKind, _ string,
) (domain.ProcessResult, error) {
	return domain.ProcessResult{Kind: kind, Status: domain.SuccessStatus("")}, nil
}

// MockDescriptionService implements driving.DescriptionService for testing.
type MockDescriptionService struct {
	ListFunc func(ctx context.Context) ([]domain.KnowledgeDocument, error)
}

func (m *MockDescriptionService) List(ctx context.Context) ([]domain.KnowledgeDocument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDescriptionService) Add(_ context.Context, _ domain.DescriptionInput) (string, string, error) {
	return "doc-1", "", nil
}

func (m *MockDescriptionService) Update(_ context.Context, _ domain.DescriptionInput) (string, error) {
	return "", nil
}

func (m *MockDescriptionService) Remove(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *MockDescriptionService) Manage(
	_ context.Context, _ domain.ManageAction, _ domain.DescriptionInput,
) (string, error) {
	return "", nil
}

// MockProductService implements driving.ProductService for testing.
type MockProductService struct {
	ListFunc func(ctx context.Context) ([]domain.Product, error)
}

func (m *MockProductService) List(ctx context.Context) ([]domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductService) Add(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	return &p, "", nil
}

func (m *MockProductService) Update(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	return &p, "", nil
}

func (m *MockProductService) Remove(_ context.Context, ref domain.ProductRef) ([]string, string, error) {
	return []string{ref.ID}, "", nil
}

func (m *MockProductService) Import(
	_ context.Context, _ io.Reader, _ driving.CatalogueFormat,
) ([]domain.ImportOutcome, error) {
	return nil, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	GetFunc func() (*domain.AppSettings, error)
	SetFunc func(key, value string) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(_ *domain.AppSettings) error {
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"backend.url", "backend.timeout", "backend.rate_limit", "chat.fallback_message"}
}

func (m *MockSettingsService) Backend() domain.BackendSettings {
	return domain.DefaultAppSettings().Backend
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// newTestPorts returns ports backed by zero-value mocks.
func newTestPorts() *Ports {
	return NewPorts(
		&MockChatService{},
		&MockIngestService{},
		&MockDescriptionService{},
		&MockProductService{},
		&MockSettingsService{},
	)
}
