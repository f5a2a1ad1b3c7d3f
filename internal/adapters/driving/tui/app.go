package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/descriptions"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/products"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/text"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/views/urls"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView         *menu.View
	chatView         *chat.View
	urlsView         *urls.View
	textView         *text.View
	descriptionsView *descriptions.View
	productsView     *products.View
	settingsView     *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// backend is the host shown in every status bar.
	backend string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	a := &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menu.NewView(s),
		chatView:         chat.NewView(s, ports.Chat),
		urlsView:         urls.NewView(s, ports.Ingest),
		textView:         text.NewView(s, ports.Ingest),
		descriptionsView: descriptions.NewView(s, ports.Description),
		productsView:     products.NewView(s, ports.Product),
		settingsView:     settings.NewView(s, ports.Settings),
		currentView:      messages.ViewMenu, // Start with menu
	}
	a.refreshBackend()
	return a, nil
}

// WithContext sets the context for the app and the views that call the backend.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.urlsView.WithContext(ctx)
	a.textView.WithContext(ctx)
	a.descriptionsView.WithContext(ctx)
	a.productsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("siteassist"),
	)
}

// refreshBackend re-reads the backend host and pushes it to every view.
func (a *App) refreshBackend() {
	a.backend = a.ports.Settings.Backend().Host()
	a.menuView.SetBackend(a.backend)
	a.chatView.SetBackend(a.backend)
	a.urlsView.SetBackend(a.backend)
	a.textView.SetBackend(a.backend)
	a.descriptionsView.SetBackend(a.backend)
	a.productsView.SetBackend(a.backend)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.updateActive(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewURLs:
			return a, a.urlsView.Init()
		case messages.ViewText:
			return a, a.textView.Init()
		case messages.ViewDescriptions:
			a.descriptionsView.Reset()
			return a, a.descriptionsView.Init()
		case messages.ViewProducts:
			a.productsView.Reset()
			return a, a.productsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	// Backend replies go to the view that issued them, even after
	// the user has navigated away.
	case messages.ChatReplied:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.URLsClassified, messages.ListProcessed:
		a.urlsView, cmd = a.urlsView.Update(msg)
		return a, cmd

	case messages.TextProcessed:
		a.textView, cmd = a.textView.Update(msg)
		return a, cmd

	case messages.DescriptionsLoaded, messages.DescriptionSaved, messages.DescriptionRemoved:
		a.descriptionsView, cmd = a.descriptionsView.Update(msg)
		return a, cmd

	case messages.ProductsLoaded, messages.ProductSaved, messages.ProductRemoved:
		a.productsView, cmd = a.productsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		a.refreshBackend()
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ConfigChanged:
		// The file was rewritten elsewhere. Only displayed settings change.
		return a, a.settingsView.Init()

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.updateActive(msg)
}

func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewURLs:
		a.urlsView, cmd = a.urlsView.Update(msg)
	case messages.ViewText:
		a.textView, cmd = a.textView.Update(msg)
	case messages.ViewDescriptions:
		a.descriptionsView, cmd = a.descriptionsView.Update(msg)
	case messages.ViewProducts:
		a.productsView, cmd = a.productsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewURLs:
		return a.urlsView.View()
	case messages.ViewText:
		return a.textView.View()
	case messages.ViewDescriptions:
		return a.descriptionsView.View()
	case messages.ViewProducts:
		return a.productsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chat:
  (type)      Enter a message
  enter       Send (disabled while waiting for a reply)
  pgup/pgdn   Scroll the transcript

Process URLs:
  enter       Classify the seed URL
  tab         Switch between description and product lists
  m           Move the selected URL to the other list
  d           Delete the selected URL
  a           Add a URL to the focused list
  p           Process the focused list
  P           Process both lists
  s           Edit the seed URL

Process Text:
  tab         Switch between description and product text
  ctrl+s      Submit

Descriptions / Products:
  a / e / d   Add, edit or delete
  r           Refresh
  tab         Next form field
  ctrl+s      Save form

Settings:
  enter       Edit the selected key
  r           Reload from disk

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Backend returns the backend host shown in status bars.
func (a *App) Backend() string {
	return a.backend
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.urlsView.SetDimensions(width, height)
	a.textView.SetDimensions(width, height)
	a.descriptionsView.SetDimensions(width, height)
	a.productsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
