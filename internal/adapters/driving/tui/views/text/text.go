// Package text provides the free-text processing panel for the TUI.
package text

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoIngestService is returned when the view has no ingest service.
var ErrNoIngestService = errors.New("ingest service not available")

// View submits a block of text as description or product content.
// The same panel serves both kinds; tab switches between them.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	textarea  textarea.Model
	statusbar *status.Bar

	ingestService driving.IngestService
	ctx           context.Context

	kind     domain.ListKind
	result   domain.ProcessStatus
	products []domain.Product

	width  int
	height int
	ready  bool
}

// NewView creates a new text view.
func NewView(s *styles.Styles, ingestService driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Paste description or product text here..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Focus()

	v := &View{
		styles:        s,
		keymap:        km,
		textarea:      ta,
		statusbar:     status.NewBar(s, km),
		ingestService: ingestService,
		ctx:           context.Background(),
		kind:          domain.KindDescription,
		result:        domain.ProcessStatus{State: domain.ProcessIdle},
		width:         80,
		height:        24,
	}
	v.statusbar.SetHints(v.hints())
	return v
}

func (v *View) hints() []key.Binding {
	return []key.Binding{v.keymap.SwitchList, v.keymap.Save, v.keymap.Back}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.textarea.Focus()
}

// Update handles messages for the text view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TextProcessed:
		v.result = msg.Result.Status
		v.products = msg.Result.Products
		if v.result.State == domain.ProcessError {
			v.statusbar.Set(status.StateError, strings.TrimPrefix(v.result.Message, "Error: "))
		} else {
			v.statusbar.Set(status.StateSuccess, v.result.Message)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "tab":
			if !v.result.IsPending() {
				v.kind = v.kind.Other()
			}
			return v, nil
		case "ctrl+s":
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	return v, cmd
}

// submit validates locally so short or empty text never reaches the backend.
func (v *View) submit() tea.Cmd {
	if v.result.IsPending() {
		return nil
	}
	text := v.textarea.Value()
	if err := domain.ValidateText(text); err != nil {
		v.result = domain.ErrorStatus(err)
		v.statusbar.Set(status.StateError, domain.UserMessage(err, ""))
		return nil
	}

	v.result = domain.PendingStatus()
	v.products = nil
	v.statusbar.Set(status.StatePending, "Processing "+strings.ToLower(v.kind.Label())+" text...")

	kind := v.kind
	svc := v.ingestService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.TextProcessed{
				Result: domain.ProcessResult{Kind: kind, Status: domain.ErrorStatus(ErrNoIngestService)},
				Err:    ErrNoIngestService,
			}
		}
		result, err := svc.ProcessText(ctx, kind, text)
		return messages.TextProcessed{Result: result, Err: err}
	}
}

// View renders the text view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	tabs := make([]string, 0, 2)
	for _, kind := range domain.AllListKinds() {
		if kind == v.kind {
			tabs = append(tabs, v.styles.ActiveTab.Render(kind.Label()))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(kind.Label()))
		}
	}

	sections := []string{
		v.styles.Title.Render("Process Text"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		v.textarea.View(),
		v.styles.Muted.Render(fmt.Sprintf("%d characters (minimum %d)",
			len([]rune(strings.TrimSpace(v.textarea.Value()))), domain.MinTextLength)),
	}

	if v.result.State != domain.ProcessIdle {
		sections = append(sections, "", v.styles.ForState(v.result.State).Render(v.result.Message))
	}
	if len(v.products) > 0 {
		sections = append(sections, "", v.styles.Subtitle.Render(fmt.Sprintf("Extracted products (%d)", len(v.products))))
		for _, p := range v.products {
			sections = append(sections, "  "+v.styles.Normal.Render(p.Name)+v.styles.Muted.Render(fmt.Sprintf("  %.2f", p.Price)))
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.textarea.SetWidth(max(width-4, 20))
	v.textarea.SetHeight(max(height-14, 3))
	v.statusbar.SetWidth(width)
}

// SetBackend sets the backend host shown in the status bar.
func (v *View) SetBackend(host string) {
	v.statusbar.SetBackend(host)
}

// SetKind selects description or product text.
func (v *View) SetKind(kind domain.ListKind) {
	if kind.IsValid() {
		v.kind = kind
	}
}

// Kind returns the selected content kind.
func (v *View) Kind() domain.ListKind {
	return v.kind
}

// Result returns the last submission status.
func (v *View) Result() domain.ProcessStatus {
	return v.result
}

// Products returns products extracted by the last submission.
func (v *View) Products() []domain.Product {
	return v.products
}

// Value returns the current text.
func (v *View) Value() string {
	return v.textarea.Value()
}

// SetValue replaces the current text.
func (v *View) SetValue(s string) {
	v.textarea.SetValue(s)
}
