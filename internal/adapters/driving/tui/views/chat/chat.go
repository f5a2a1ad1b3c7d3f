// Package chat provides the assistant chat view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoChatService is returned when the view has no chat service.
var ErrNoChatService = errors.New("chat service not available")

// View is the chat transcript with a message input.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	viewport  viewport.Model
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context
	conv        *domain.Conversation

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles:      s,
		keymap:      km,
		input:       input.NewField(s, "You", "Type your message..."),
		viewport:    viewport.New(80, 16),
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
	v.conv = v.newConversation()
	v.refreshTranscript()
	return v
}

func (v *View) newConversation() *domain.Conversation {
	if v.chatService == nil {
		return domain.NewConversation("")
	}
	return v.chatService.NewConversation()
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChatReplied:
		v.conv.Resolve(msg.Reply, msg.Err)
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
		} else {
			v.statusbar.Clear()
		}
		v.refreshTranscript()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter":
		return v, v.send()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// send appends the user message now and asks the backend in a command.
// While a reply is outstanding the input does not submit.
func (v *View) send() tea.Cmd {
	if v.conv.Pending() {
		return nil
	}
	query, err := v.conv.Begin(v.input.Value())
	if err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(err, ""))
		return nil
	}

	v.input.Reset()
	v.statusbar.Set(status.StatePending, "Waiting for the assistant...")
	v.refreshTranscript()

	svc := v.chatService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ChatReplied{Err: ErrNoChatService}
		}
		reply, err := svc.Ask(ctx, query)
		return messages.ChatReplied{Reply: reply, Err: err}
	}
}

func (v *View) refreshTranscript() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	msgs := v.conv.Messages()
	if len(msgs) == 0 && !v.conv.Pending() {
		return v.styles.Muted.Render("Ask a question about the site to get started.")
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-4, 20))
	lines := make([]string, 0, len(msgs)+1)
	for _, m := range msgs {
		var label string
		switch m.Role {
		case domain.RoleUser:
			label = v.styles.UserMessage.Render("You:")
		case domain.RoleAssistant:
			label = v.styles.AssistantMessage.Render("Assistant:")
		case domain.RoleError:
			label = v.styles.ErrorMessage.Render("Error:")
		}
		lines = append(lines, label+" "+wrap.Render(m.Text))
	}
	if v.conv.Pending() {
		lines = append(lines, v.styles.Muted.Render("Assistant is typing..."))
	}
	return strings.Join(lines, "\n\n")
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Chat"),
		"",
		v.viewport.View(),
		"",
		v.input.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.viewport.Width = width
	v.viewport.Height = max(height-8, 3)
	v.refreshTranscript()
}

// SetBackend sets the backend host shown in the status bar.
func (v *View) SetBackend(host string) {
	v.statusbar.SetBackend(host)
}

// Reset starts a new conversation unless a reply is outstanding.
func (v *View) Reset() {
	if v.conv.Pending() {
		return
	}
	v.conv = v.newConversation()
	v.input.Reset()
	v.statusbar.Clear()
	v.refreshTranscript()
}

// Conversation returns the transcript.
func (v *View) Conversation() *domain.Conversation {
	return v.conv
}

// Pending reports whether a reply is outstanding.
func (v *View) Pending() bool {
	return v.conv.Pending()
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
