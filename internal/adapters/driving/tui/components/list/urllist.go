// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// URLList displays one classified URL list and its processing status.
// The same component renders both the description and product lists.
type URLList struct {
	kind     domain.ListKind
	urls     []string
	status   domain.ProcessStatus
	selected int
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewURLList creates a list for kind.
func NewURLList(s *styles.Styles, kind domain.ListKind) *URLList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &URLList{
		kind:   kind,
		status: domain.ProcessStatus{State: domain.ProcessIdle},
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *URLList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *URLList) Update(msg tea.Msg) (*URLList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *URLList) View() string {
	heading := fmt.Sprintf("%s URLs (%d)", l.kind.Label(), len(l.urls))
	lines := make([]string, 0, len(l.urls)+4)
	if l.focused {
		lines = append(lines, l.styles.ActiveTab.Render(heading))
	} else {
		lines = append(lines, l.styles.Tab.Render(heading))
	}

	if len(l.urls) == 0 {
		lines = append(lines, l.styles.Muted.Render("  No URLs"))
	}

	visible := l.height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.urls) {
		end = len(l.urls)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderURL(i))
	}

	if l.status.State != domain.ProcessIdle {
		lines = append(lines, l.styles.ForState(l.status.State).Render(l.status.Message))
	}

	return strings.Join(lines, "\n")
}

func (l *URLList) renderURL(index int) string {
	u := l.urls[index]
	maxLen := l.width - 4
	if maxLen < 10 {
		maxLen = 10
	}
	if len(u) > maxLen {
		u = u[:maxLen-3] + "..."
	}

	if l.focused && index == l.selected {
		return l.styles.Selected.Render("> " + u)
	}
	return l.styles.Normal.Render("  " + u)
}

// Kind returns the list kind.
func (l *URLList) Kind() domain.ListKind {
	return l.kind
}

// SetURLs replaces the displayed URLs and clamps the selection.
func (l *URLList) SetURLs(urls []string) {
	l.urls = urls
	if l.selected >= len(urls) {
		l.selected = len(urls) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// URLs returns the displayed URLs.
func (l *URLList) URLs() []string {
	return l.urls
}

// Len returns the number of URLs.
func (l *URLList) Len() int {
	return len(l.urls)
}

// Selected returns the index of the selected URL.
func (l *URLList) Selected() int {
	return l.selected
}

// SelectedURL returns the selected URL, or "" when the list is empty.
func (l *URLList) SelectedURL() string {
	if l.selected < 0 || l.selected >= len(l.urls) {
		return ""
	}
	return l.urls[l.selected]
}

// MoveUp moves selection up.
func (l *URLList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *URLList) MoveDown() {
	if l.selected < len(l.urls)-1 {
		l.selected++
	}
}

// SetFocused marks the list as the target of list key bindings.
func (l *URLList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused reports whether the list has focus.
func (l *URLList) Focused() bool {
	return l.focused
}

// SetStatus sets the list's processing status.
func (l *URLList) SetStatus(status domain.ProcessStatus) {
	l.status = status
}

// Status returns the list's processing status.
func (l *URLList) Status() domain.ProcessStatus {
	return l.status
}

// SetDimensions sets the list dimensions.
func (l *URLList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}
