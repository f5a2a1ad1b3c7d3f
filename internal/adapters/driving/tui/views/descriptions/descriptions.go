// Package descriptions provides the stored descriptions view for the TUI.
package descriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/form"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoDescriptionService is returned when the view has no description service.
var ErrNoDescriptionService = errors.New("description service not available")

// Mode is what the view is currently doing.
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeConfirmDelete
)

const (
	fieldTitle = iota
	fieldText
	fieldSource
)

// View lists descriptions and edits them in place.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *form.Form
	statusbar *status.Bar

	descriptionService driving.DescriptionService
	ctx                context.Context

	docs      []domain.KnowledgeDocument
	selected  int
	mode      Mode
	editingID string
	loading   bool
	saving    bool

	width  int
	height int
	ready  bool
}

// NewView creates a new descriptions view.
func NewView(s *styles.Styles, descriptionService driving.DescriptionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles: s,
		keymap: km,
		form: form.New(s, "Add description",
			form.Spec{Label: "Title", Placeholder: domain.DefaultDocumentTitle},
			form.Spec{Label: "Text", Placeholder: fmt.Sprintf("At least %d characters", domain.MinTextLength)},
			form.Spec{Label: "Source", Placeholder: domain.DefaultDocumentSource},
		),
		statusbar:          status.NewBar(s, km),
		descriptionService: descriptionService,
		ctx:                context.Background(),
		width:              80,
		height:             24,
	}
	v.statusbar.SetHints(km.RecordListHelp())
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the descriptions.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.statusbar.Set(status.StatePending, "Loading descriptions...")
	svc := v.descriptionService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DescriptionsLoaded{Err: ErrNoDescriptionService}
		}
		docs, err := svc.List(ctx)
		return messages.DescriptionsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the descriptions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DescriptionsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		v.docs = msg.Documents
		if v.selected >= len(v.docs) {
			v.selected = max(len(v.docs)-1, 0)
		}
		v.statusbar.Set(status.StateReady, fmt.Sprintf("%d descriptions", len(v.docs)))
		return v, nil

	case messages.DescriptionSaved:
		v.saving = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		v.closeForm()
		cmd := v.load()
		v.statusbar.Set(status.StateSuccess, orDefault(msg.Message, "Description saved"))
		return v, cmd

	case messages.DescriptionRemoved:
		v.saving = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		cmd := v.load()
		v.statusbar.Set(status.StateSuccess, orDefault(msg.Message, "Description removed"))
		return v, cmd

	case tea.KeyMsg:
		switch v.mode {
		case ModeForm:
			return v.handleFormKeys(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKeys(msg)
		case ModeList:
			return v.handleListKeys(msg)
		}
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()

	switch {
	case key == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, km.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, km.Down):
		if v.selected < len(v.docs)-1 {
			v.selected++
		}
	case keymap.Matches(key, km.Refresh):
		if !v.loading {
			return v, v.load()
		}
	case keymap.Matches(key, km.Add):
		v.editingID = ""
		v.form.SetTitle("Add description")
		v.mode = ModeForm
		return v, v.form.Reset()
	case keymap.Matches(key, km.Edit):
		doc := v.Selected()
		if doc == nil {
			return v, nil
		}
		cmd := v.form.Reset()
		v.editingID = doc.ID
		v.form.SetTitle("Edit " + doc.DisplayTitle())
		v.form.SetValue(fieldTitle, doc.Title)
		v.form.SetValue(fieldText, doc.Content)
		v.form.SetValue(fieldSource, doc.Source)
		v.mode = ModeForm
		return v, cmd
	case keymap.Matches(key, km.Delete):
		if v.Selected() != nil {
			v.mode = ModeConfirmDelete
		}
	}
	return v, nil
}

func (v *View) handleFormKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil
	case "tab":
		return v, v.form.Next()
	case "shift+tab":
		return v, v.form.Prev()
	case "ctrl+s":
		return v, v.save()
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeList
	if msg.String() != "y" {
		return v, nil
	}
	doc := v.Selected()
	if doc == nil || v.saving {
		return v, nil
	}

	v.saving = true
	v.statusbar.Set(status.StatePending, "Removing "+doc.DisplayTitle()+"...")
	id := doc.ID
	svc := v.descriptionService
	ctx := v.ctx
	return v, func() tea.Msg {
		if svc == nil {
			return messages.DescriptionRemoved{ID: id, Err: ErrNoDescriptionService}
		}
		message, err := svc.Remove(ctx, id)
		return messages.DescriptionRemoved{ID: id, Message: message, Err: err}
	}
}

// save validates locally and submits an add or update.
func (v *View) save() tea.Cmd {
	if v.saving {
		return nil
	}
	in := domain.DescriptionInput{
		ID:     v.editingID,
		Title:  strings.TrimSpace(v.form.Value(fieldTitle)),
		Text:   v.form.Value(fieldText),
		Source: strings.TrimSpace(v.form.Value(fieldSource)),
	}
	editing := in.ID != ""
	if err := in.Validate(editing); err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(err, ""))
		return nil
	}

	v.saving = true
	v.statusbar.Set(status.StatePending, "Saving description...")
	svc := v.descriptionService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DescriptionSaved{Err: ErrNoDescriptionService}
		}
		if editing {
			message, err := svc.Update(ctx, in)
			return messages.DescriptionSaved{ID: in.ID, Message: message, Err: err}
		}
		id, message, err := svc.Add(ctx, in)
		return messages.DescriptionSaved{ID: id, Message: message, Err: err}
	}
}

func (v *View) closeForm() {
	v.mode = ModeList
	v.editingID = ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// View renders the descriptions view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Descriptions"), ""}

	switch v.mode {
	case ModeForm:
		sections = append(sections, v.form.View(),
			v.styles.Help.Render("[tab] Next field  [ctrl+s] Save  [esc] Cancel"))
	default:
		sections = append(sections, v.renderList())
		if v.mode == ModeConfirmDelete {
			if doc := v.Selected(); doc != nil {
				sections = append(sections, "",
					v.styles.Warning.Render(fmt.Sprintf("Remove %q? [y] Yes  [any key] No", doc.DisplayTitle())))
			}
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderList() string {
	if len(v.docs) == 0 {
		return v.styles.Muted.Render("No descriptions. Press [a] to add one.")
	}

	visible := max((v.height-8)/2, 1)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.docs))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		doc := &v.docs[i]
		title := doc.DisplayTitle()
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+title))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+title))
		}
		lines = append(lines, v.styles.Muted.Render("    "+preview(doc.Content, v.width-6)))
	}
	return strings.Join(lines, "\n")
}

func preview(content string, width int) string {
	s := strings.Join(strings.Fields(content), " ")
	width = max(width, 20)
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.form.SetWidth(width - 4)
	v.statusbar.SetWidth(width)
}

// SetBackend sets the backend host shown in the status bar.
func (v *View) SetBackend(host string) {
	v.statusbar.SetBackend(host)
}

// Reset returns to the list.
func (v *View) Reset() {
	v.closeForm()
}

// Documents returns the loaded descriptions.
func (v *View) Documents() []domain.KnowledgeDocument {
	return v.docs
}

// Selected returns the selected description, or nil.
func (v *View) Selected() *domain.KnowledgeDocument {
	if v.selected < 0 || v.selected >= len(v.docs) {
		return nil
	}
	return &v.docs[v.selected]
}

// Mode returns what the view is doing.
func (v *View) Mode() Mode {
	return v.mode
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
