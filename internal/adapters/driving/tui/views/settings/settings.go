// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoSettingsService is returned when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	keys     []string
	err      error
	saved    bool

	// Navigation state
	selected int
	editing  bool
	input    *input.Field

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := input.NewField(s, "", "")
	field.Blur()

	v := &View{
		styles:          s,
		settingsService: settingsService,
		input:           field,
	}
	if settingsService != nil {
		v.keys = settingsService.Keys()
	}
	return v
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		v.editing = false
		v.input.Blur()
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter, "e":
		if v.selected < len(v.keys) {
			v.editing = true
			v.saved = false
			v.input.SetLabel(v.keys[v.selected])
			v.input.Reset()
			v.input.SetValue(v.valueFor(v.keys[v.selected]))
			return v, v.input.Focus()
		}
	case "r":
		return v, v.loadSettings()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case keyEnter:
		return v, v.setValue(v.keys[v.selected], v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) setValue(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Set(key, strings.TrimSpace(value))}
	}
}

func (v *View) valueFor(key string) string {
	if v.settings == nil {
		return ""
	}
	b := v.settings.Backend
	switch key {
	case "backend.url":
		return b.URL
	case "backend.timeout":
		if b.Timeout <= 0 {
			return ""
		}
		return b.Timeout.String()
	case "backend.rate_limit":
		return strconv.FormatFloat(b.RateLimit, 'f', -1, 64)
	case "chat.fallback_message":
		return v.settings.Chat.FallbackMessage
	default:
		return ""
	}
}

func displayValue(key, value string) string {
	if value != "" {
		return value
	}
	switch key {
	case "backend.timeout":
		return "none"
	default:
		return "(not set)"
	}
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + domain.UserMessage(v.err, "")))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, key := range v.keys {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(padRight(key, 24)))
		b.WriteString(v.styles.Muted.Render(displayValue(key, v.valueFor(key))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] Save  [esc] Cancel"))
	} else {
		if v.saved {
			b.WriteString(v.styles.Success.Render("Saved"))
			b.WriteString("\n")
		}
		if err := v.settings.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render("Warning: " + err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Edit  [r] Reload  [esc] Back"))
	}

	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Reset resets the view state.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.saved = false
	v.err = nil
	v.input.Blur()
}

// Settings returns the current settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the current error.
func (v *View) Err() error {
	return v.err
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the selected key index.
func (v *View) Selected() int {
	return v.selected
}
