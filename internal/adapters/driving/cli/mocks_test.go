package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	AskFunc func(ctx context.Context, query string) (string, error)
	Queries []string
}

func (m *MockChatService) Ask(ctx context.Context, query string) (string, error) {
	m.Queries = append(m.Queries, query)
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
	ClassifyFunc    func(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error)
	ProcessAllFunc  func(ctx context.Context, set *domain.ClassifiedURLSet) domain.BatchResult
	ProcessTextFunc func(ctx context.Context, kind domain.ListKind, text string) (domain.ProcessResult, error)

	Processed *domain.ClassifiedURLSet
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

func (m *MockIngestService) ProcessAll(ctx context.Context, set *domain.ClassifiedURLSet) domain.BatchResult {
	m.Processed = set.Clone()
	if m.ProcessAllFunc != nil {
		return m.ProcessAllFunc(ctx, set)
	}
	return domain.BatchResult{
		Description: domain.ProcessResult{Kind: domain.KindDescription, Status: domain.SuccessStatus("")},
		Product:     domain.ProcessResult{Kind: domain.KindProduct, Status: domain.SuccessStatus("")},
	}
}

func (m *MockIngestService) ProcessText(
	ctx context.Context, kind domain.ListKind, text string,
) (domain.ProcessResult, error) {
	if err := domain.ValidateText(text); err != nil {
		return domain.ProcessResult{Kind: kind, Status: domain.ErrorStatus(err)}, err
	}
	if m.ProcessTextFunc != nil {
		return m.ProcessTextFunc(ctx, kind, text)
	}
	return domain.ProcessResult{Kind: kind, Status: domain.SuccessStatus("")}, nil
}

// MockDescriptionService implements driving.DescriptionService for testing.
type MockDescriptionService struct {
	Docs    []domain.KnowledgeDocument
	Err     error
	Added   []domain.DescriptionInput
	Updated []domain.DescriptionInput
	Removed []string
}

func (m *MockDescriptionService) List(_ context.Context) ([]domain.KnowledgeDocument, error) {
	return m.Docs, m.Err
}

func (m *MockDescriptionService) Add(_ context.Context, in domain.DescriptionInput) (string, string, error) {
	if m.Err != nil {
		return "", "", m.Err
	}
	if err := in.Validate(false); err != nil {
		return "", "", err
	}
	m.Added = append(m.Added, in)
	id := in.ID
	if id == "" {
		id = "generated-id"
	}
	return id, "Document added successfully", nil
}

func (m *MockDescriptionService) Update(_ context.Context, in domain.DescriptionInput) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Updated = append(m.Updated, in)
	return "", nil
}

func (m *MockDescriptionService) Remove(_ context.Context, id string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Removed = append(m.Removed, id)
	return "", nil
}

func (m *MockDescriptionService) Manage(
	ctx context.Context, action domain.ManageAction, in domain.DescriptionInput,
) (string, error) {
	switch action {
	case domain.ManageAdd:
		_, msg, err := m.Add(ctx, in)
		return msg, err
	case domain.ManageUpdate:
		return m.Update(ctx, in)
	case domain.ManageRemove:
		return m.Remove(ctx, in.ID)
	}
	return "", domain.ErrUnknownAction
}

// MockProductService implements driving.ProductService for testing.
type MockProductService struct {
	Products   []domain.Product
	Err        error
	Added      []domain.Product
	Updated    []domain.Product
	RemovedRef *domain.ProductRef
	ImportFunc func(ctx context.Context, r io.Reader, format driving.CatalogueFormat) ([]domain.ImportOutcome, error)
}

func (m *MockProductService) List(_ context.Context) ([]domain.Product, error) {
	return m.Products, m.Err
}

func (m *MockProductService) Add(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	if err := p.Validate(); err != nil {
		return nil, "", err
	}
	if p.ID == "" {
		p.ID = "generated-id"
	}
	m.Added = append(m.Added, p)
	return &p, "", nil
}

func (m *MockProductService) Update(_ context.Context, p domain.Product) (*domain.Product, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	m.Updated = append(m.Updated, p)
	return &p, "", nil
}

func (m *MockProductService) Remove(_ context.Context, ref domain.ProductRef) ([]string, string, error) {
	if err := ref.Validate(); err != nil {
		return nil, "", err
	}
	if m.Err != nil {
		return nil, "", m.Err
	}
	m.RemovedRef = &ref
	return []string{"p1"}, "", nil
}

func (m *MockProductService) Import(
	ctx context.Context, r io.Reader, format driving.CatalogueFormat,
) ([]domain.ImportOutcome, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, r, format)
	}
	return nil, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	Values   map[string]string
	SetErr   error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(s *domain.AppSettings) error {
	m.Settings = *s
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	m.Values[key] = value
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"backend.url", "backend.timeout", "backend.rate_limit", "chat.fallback_message"}
}

func (m *MockSettingsService) Backend() domain.BackendSettings {
	return m.Settings.Backend
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// MockActivityService implements driving.ActivityService for testing.
type MockActivityService struct {
	Entries []domain.Activity
	Cleared bool
	Limit   int
}

func (m *MockActivityService) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	m.Limit = limit
	return m.Entries, nil
}

func (m *MockActivityService) Clear(_ context.Context) error {
	m.Cleared = true
	m.Entries = nil
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	Chat        *MockChatService
	Ingest      *MockIngestService
	Description *MockDescriptionService
	Product     *MockProductService
	Settings    *MockSettingsService
	Activity    *MockActivityService
}

// setupTestServices installs fresh mocks and restores the globals afterwards.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		Chat:        &MockChatService{},
		Ingest:      &MockIngestService{},
		Description: &MockDescriptionService{},
		Product:     &MockProductService{},
		Settings:    &MockSettingsService{Settings: domain.DefaultAppSettings()},
		Activity:    &MockActivityService{},
	}
	SetServices(&Services{
		Chat:        ts.Chat,
		Ingest:      ts.Ingest,
		Description: ts.Description,
		Product:     ts.Product,
		Settings:    ts.Settings,
		Activity:    ts.Activity,
	})

	t.Cleanup(func() {
		chatService = nil
		ingestService = nil
		descriptionService = nil
		productService = nil
		settingsService = nil
		activityService = nil
		textExtractor = nil
		watcher = nil
		closer = nil
	})
	return ts
}

// resetFlags restores every command flag variable to its default.
func resetFlags() {
	urlsJSON = false
	processDescURLs, processProductURLs = nil, nil
	runMoveToProduct, runMoveToDesc, runDrop, runAddDesc, runAddProduct = nil, nil, nil, nil, nil
	textFile = ""
	descTitle, descSource, descID, descFile, descJSON = "", "", "", "", false
	productID, productName, productDescription = "", "", ""
	productPrice = 0
	productSpecs, productFeatures, productImage = "", "", ""
	productJSON = false
	historyLimit, historyClear = 20, false
	verboseFlag, backendFlag, configDirFlag, ephemeralFlag = false, "", "", false
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
