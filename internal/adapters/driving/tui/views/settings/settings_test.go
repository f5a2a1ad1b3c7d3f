package settings

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	return []string{"backend.url", "backend.timeout", "backend.rate_limit", "chat.fallback_message"}
}

func (m *MockSettingsService) Backend() domain.BackendSettings {
	args := m.Called()
	return args.Get(0).(domain.BackendSettings)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

// Helper function to create test settings.
func createTestSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Backend.RateLimit = 2.5
	return &s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	svc.On("Get").Return(createTestSettings(), nil).Once()
	view := NewView(styles.DefaultStyles(), svc)
	view.SetDimensions(100, 30)
	view.Update(view.Init()())
	require.NotNil(t, view.Settings())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &MockSettingsService{})

	require.NotNil(t, view)
	assert.Len(t, view.keys, 4)
	assert.False(t, view.Editing())
	assert.Nil(t, view.Settings())
}

func TestView_Init_LoadsSettings(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(t, svc)

	out := view.View()
	assert.Contains(t, out, "backend.url")
	assert.Contains(t, out, "http://localhost:5000")
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, "none")
	svc.AssertExpectations(t)
}

func TestView_Init_Error(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Get").Return(nil, errors.New("config unreadable"))
	view := NewView(nil, svc)
	view.SetDimensions(80, 24)

	view.Update(view.Init()())

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "config unreadable")
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.Init()().(messages.SettingsLoaded)

	assert.ErrorIs(t, msg.Err, ErrNoSettingsService)
}

func TestView_EditTimeout(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(t, svc)
	svc.On("Set", "backend.timeout", "30s").Return(nil)

	view.Update(key("down"))
	view.Update(key("enter"))
	require.True(t, view.Editing())
	assert.Contains(t, view.View(), "[enter] Save")

	view.Update(key("30s"))
	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)

	saved := createTestSettings()
	saved.Backend.Timeout = 30 * time.Second
	svc.On("Get").Return(saved, nil).Once()

	_, reload := view.Update(cmd())
	assert.False(t, view.Editing())
	require.NotNil(t, reload)
	view.Update(reload())

	assert.Equal(t, 30*time.Second, view.Settings().Backend.Timeout)
	assert.Contains(t, view.View(), "Saved")
	svc.AssertExpectations(t)
}

func TestView_Edit_PrefillsCurrentValue(t *testing.T) {
	view := loadedView(t, &MockSettingsService{})

	view.Update(key("enter"))

	assert.Equal(t, "http://localhost:5000", view.input.Value())
}

func TestView_Edit_InvalidValueKeepsEditing(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(t, svc)
	svc.On("Set", "backend.url", "http://localhost:5000nope").
		Return(&domain.ValidationError{Reason: "Backend URL must be an absolute http(s) URL"})

	view.Update(key("enter"))
	view.Update(key("nope"))
	_, cmd := view.Update(key("enter"))
	view.Update(cmd())

	assert.True(t, view.Editing())
	assert.Contains(t, view.View(), "Backend URL must be an absolute http(s) URL")
}

func TestView_Edit_EscCancels(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(t, svc)

	view.Update(key("enter"))
	_, cmd := view.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_Navigation_Bounds(t *testing.T) {
	view := loadedView(t, &MockSettingsService{})

	for i := 0; i < 10; i++ {
		view.Update(key("j"))
	}
	assert.Equal(t, 3, view.Selected())

	for i := 0; i < 10; i++ {
		view.Update(key("k"))
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	view := NewView(nil, &MockSettingsService{})

	_, cmd := view.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reload(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(t, svc)

	_, cmd := view.Update(key("r"))

	assert.NotNil(t, cmd)
}

func TestView_Reset(t *testing.T) {
	view := loadedView(t, &MockSettingsService{})
	view.Update(key("down"))
	view.Update(key("enter"))

	view.Reset()

	assert.Equal(t, 0, view.Selected())
	assert.False(t, view.Editing())
	assert.NoError(t, view.Err())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, &MockSettingsService{})

	assert.Equal(t, "Initialising...", view.View())
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "none", displayValue("backend.timeout", ""))
	assert.Equal(t, "(not set)", displayValue("chat.fallback_message", ""))
	assert.Equal(t, "5s", displayValue("backend.timeout", "5s"))
}
