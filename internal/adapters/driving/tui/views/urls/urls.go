// Package urls provides the classify, adjust and process view for the TUI.
package urls

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoIngestService is returned when the view has no ingest service.
var ErrNoIngestService = errors.New("ingest service not available")

// Mode is the current input focus of the view.
type Mode int

const (
	// ModeSeed edits the seed URL.
	ModeSeed Mode = iota
	// ModeLists navigates and edits the classified lists.
	ModeLists
	// ModeAdd enters a URL to add to the focused list.
	ModeAdd
)

// View drives the classify, adjust and process workflow.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	seed      *input.Field
	addInput  *input.Field
	lists     map[domain.ListKind]*list.URLList
	statusbar *status.Bar

	ingestService driving.IngestService
	ctx           context.Context

	set         *domain.ClassifiedURLSet
	seedURL     string
	focus       domain.ListKind
	mode        Mode
	classifying bool

	width  int
	height int
	ready  bool
}

// NewView creates a new URLs view.
func NewView(s *styles.Styles, ingestService driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	addInput := input.NewField(s, "Add URL", "https://example.com/page")
	addInput.Blur()

	v := &View{
		styles:   s,
		keymap:   km,
		seed:     input.NewField(s, "Seed URL", "https://example.com"),
		addInput: addInput,
		lists: map[domain.ListKind]*list.URLList{
			domain.KindDescription: list.NewURLList(s, domain.KindDescription),
			domain.KindProduct:     list.NewURLList(s, domain.KindProduct),
		},
		statusbar:     status.NewBar(s, km),
		ingestService: ingestService,
		ctx:           context.Background(),
		focus:         domain.KindDescription,
		mode:          ModeSeed,
		width:         80,
		height:        24,
	}
	v.lists[v.focus].SetFocused(true)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	if v.mode == ModeSeed {
		return v.seed.Focus()
	}
	return nil
}

// Update handles messages for the URLs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.URLsClassified:
		v.handleClassified(msg)
		return v, nil

	case messages.ListProcessed:
		v.handleProcessed(msg.Result)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeSeed:
			return v.handleSeedKeys(msg)
		case ModeAdd:
			return v.handleAddKeys(msg)
		case ModeLists:
			return v.handleListKeys(msg)
		}
	}

	return v, nil
}

func (v *View) handleSeedKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, backToMenu
	case "enter":
		return v, v.classify()
	case "tab":
		if v.set != nil {
			v.enterLists()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.seed, cmd = v.seed.Update(msg)
	return v, cmd
}

func (v *View) handleAddKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.addInput.Reset()
		v.enterLists()
		return v, nil
	case "enter":
		added, err := v.set.Add(v.focus, v.addInput.Value())
		if err != nil {
			v.statusbar.Set(status.StateError, addError(err))
			return v, nil
		}
		v.syncLists()
		v.statusbar.Set(status.StateReady, fmt.Sprintf("Added %s to %s", added, v.focus.Label()))
		v.addInput.Reset()
		v.enterLists()
		return v, nil
	}

	var cmd tea.Cmd
	v.addInput, cmd = v.addInput.Update(msg)
	return v, cmd
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()
	current := v.lists[v.focus]

	switch {
	case key == "esc":
		return v, backToMenu
	case key == "s", key == "/":
		v.mode = ModeSeed
		return v, v.seed.Focus()
	case keymap.Matches(key, km.SwitchList):
		v.setFocus(v.focus.Other())
	case keymap.Matches(key, km.Up):
		current.MoveUp()
	case keymap.Matches(key, km.Down):
		current.MoveDown()
	case keymap.Matches(key, km.Move):
		v.moveSelected()
	case keymap.Matches(key, km.Delete):
		v.deleteSelected()
	case keymap.Matches(key, km.Add):
		v.mode = ModeAdd
		return v, v.addInput.Focus()
	case keymap.Matches(key, km.Process):
		return v, v.process(v.focus)
	case keymap.Matches(key, km.ProcessAll):
		return v, v.processAll()
	}
	return v, nil
}

func (v *View) classify() tea.Cmd {
	if v.classifying {
		return nil
	}
	seed, err := domain.ValidateURL(v.seed.Value())
	if err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(err, ""))
		return nil
	}

	v.classifying = true
	v.statusbar.Set(status.StatePending, "Classifying "+seed+"...")

	svc := v.ingestService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.URLsClassified{Seed: seed, Err: ErrNoIngestService}
		}
		set, err := svc.Classify(ctx, seed)
		return messages.URLsClassified{Seed: seed, Set: set, Err: err}
	}
}

func (v *View) handleClassified(msg messages.URLsClassified) {
	v.classifying = false
	if msg.Err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
		return
	}

	v.seedURL = msg.Seed
	v.set = msg.Set
	if v.set == nil {
		v.set = domain.NewClassifiedURLSet(nil, nil)
	}
	for _, l := range v.lists {
		l.SetStatus(domain.ProcessStatus{State: domain.ProcessIdle})
	}
	v.syncLists()
	v.statusbar.Set(status.StateSuccess, fmt.Sprintf(
		"Found %d description and %d product/service URLs",
		len(v.set.Description), len(v.set.Product),
	))
	v.enterLists()
}

// process submits one list unless it is already in flight.
func (v *View) process(kind domain.ListKind) tea.Cmd {
	if v.set == nil {
		return nil
	}
	l := v.lists[kind]
	if l.Status().IsPending() {
		return nil
	}
	if len(v.set.List(kind)) == 0 {
		l.SetStatus(domain.ErrorStatus(domain.ErrEmptyList))
		return nil
	}

	l.SetStatus(domain.PendingStatus())
	urls := slices.Clone(v.set.List(kind))
	svc := v.ingestService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ListProcessed{Result: domain.ProcessResult{
				Kind:   kind,
				Status: domain.ErrorStatus(ErrNoIngestService),
			}}
		}
		result, _ := svc.ProcessList(ctx, kind, urls)
		result.Kind = kind
		return messages.ListProcessed{Result: result}
	}
}

// processAll submits every non-empty list. Each list resolves on its own.
func (v *View) processAll() tea.Cmd {
	if v.set == nil {
		return nil
	}
	if v.set.Len() == 0 {
		v.statusbar.Set(status.StateError, domain.ErrEmptyList.Error())
		return nil
	}
	var cmds []tea.Cmd
	for _, kind := range domain.AllListKinds() {
		if len(v.set.List(kind)) == 0 {
			continue
		}
		if cmd := v.process(kind); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (v *View) handleProcessed(result domain.ProcessResult) {
	l, ok := v.lists[result.Kind]
	if !ok {
		return
	}
	l.SetStatus(result.Status)
}

func (v *View) moveSelected() {
	u := v.lists[v.focus].SelectedURL()
	if u == "" || v.set == nil {
		return
	}
	to := v.focus.Other()
	if err := v.set.Move(u, v.focus, to); err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(err, err.Error()))
		return
	}
	v.syncLists()
	v.statusbar.Set(status.StateReady, fmt.Sprintf("Moved %s to %s", u, to.Label()))
}

func (v *View) deleteSelected() {
	u := v.lists[v.focus].SelectedURL()
	if u == "" || v.set == nil {
		return
	}
	if v.set.Remove(v.focus, u) {
		v.syncLists()
		v.statusbar.Set(status.StateReady, "Removed "+u)
	}
}

func (v *View) syncLists() {
	for kind, l := range v.lists {
		l.SetURLs(v.set.List(kind))
	}
}

func (v *View) enterLists() {
	v.mode = ModeLists
	v.seed.Blur()
	v.addInput.Blur()
	v.statusbar.SetHints(v.keymap.URLListHelp())
}

func (v *View) setFocus(kind domain.ListKind) {
	v.lists[v.focus].SetFocused(false)
	v.focus = kind
	v.lists[v.focus].SetFocused(true)
}

func addError(err error) string {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return "URL is already in this list"
	}
	return domain.UserMessage(err, err.Error())
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

// View renders the URLs view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Process URLs"), "", v.seed.View(), ""}

	if v.set != nil {
		half := max(v.width/2-2, 20)
		desc := lipgloss.NewStyle().Width(half).Render(v.lists[domain.KindDescription].View())
		prod := lipgloss.NewStyle().Width(half).Render(v.lists[domain.KindProduct].View())
		sections = append(sections,
			v.styles.Muted.Render("Pages from "+v.seedURL),
			"",
			lipgloss.JoinHorizontal(lipgloss.Top, desc, "  ", prod),
		)
		if v.mode == ModeAdd {
			sections = append(sections, "", v.addInput.View())
		}
	} else {
		sections = append(sections, v.styles.Muted.Render("Enter a site URL and press enter to classify its pages."))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.seed.SetWidth(width)
	v.addInput.SetWidth(width)
	v.statusbar.SetWidth(width)
	for _, l := range v.lists {
		l.SetDimensions(max(width/2-2, 20), max(height-12, 4))
	}
}

// SetBackend sets the backend host shown in the status bar.
func (v *View) SetBackend(host string) {
	v.statusbar.SetBackend(host)
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Focus returns the list receiving list key bindings.
func (v *View) Focus() domain.ListKind {
	return v.focus
}

// Set returns the classified lists, or nil before classification.
func (v *View) Set() *domain.ClassifiedURLSet {
	return v.set
}

// ListStatus returns the processing status of one list.
func (v *View) ListStatus(kind domain.ListKind) domain.ProcessStatus {
	return v.lists[kind].Status()
}

// Classifying reports whether a classification request is outstanding.
func (v *View) Classifying() bool {
	return v.classifying
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
