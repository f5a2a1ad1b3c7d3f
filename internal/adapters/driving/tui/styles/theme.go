// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// Theme is the colour palette. Accent marks focus and titles, Highlight
// marks the customer's side of a chat and subtitles; Success, Warning
// and Error follow ProcessState.
type Theme struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the teal-on-dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#14B8A6"),
		Highlight: lipgloss.Color("#F59E0B"),
		Text:      lipgloss.Color("#E2E8F0"),
		Dim:       lipgloss.Color("#64748B"),
		Surface:   lipgloss.Color("#0F172A"),
		Border:    lipgloss.Color("#334155"),
		Success:   lipgloss.Color("#4ADE80"),
		Warning:   lipgloss.Color("#FACC15"),
		Error:     lipgloss.Color("#F87171"),
	}
}

// Styles are the rendered roles every view draws with.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Outcome colours, see ForState.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Containers.
	InputField lipgloss.Style
	Border     lipgloss.Style
	StatusBar  lipgloss.Style

	// Chat transcript labels.
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	ErrorMessage     lipgloss.Style

	// URL list headings in the urls view; ActiveTab is the focused list.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	bold := func(c lipgloss.Color) lipgloss.Style {
		return fg(c).Bold(true)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	focused := bold(theme.Surface).Background(theme.Accent)

	return &Styles{
		theme: theme,

		Title:    bold(theme.Accent),
		Subtitle: bold(theme.Highlight),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: focused,
		Help:     fg(theme.Dim).Italic(true),

		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Error),

		InputField: boxed.Padding(0, 1),
		Border:     boxed,
		StatusBar:  fg(theme.Dim).Background(theme.Surface).Padding(0, 1),

		UserMessage:      bold(theme.Highlight),
		AssistantMessage: bold(theme.Accent),
		ErrorMessage:     bold(theme.Error),

		Tab:       fg(theme.Dim).Padding(0, 1),
		ActiveTab: focused.Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForState returns the style for a processing state.
func (s *Styles) ForState(state domain.ProcessState) lipgloss.Style {
	switch state {
	case domain.ProcessSuccess:
		return s.Success
	case domain.ProcessError:
		return s.Error
	case domain.ProcessPending:
		return s.Warning
	default:
		return s.Muted
	}
}
