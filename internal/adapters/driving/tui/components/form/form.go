// Package form provides a multi-field edit form for the TUI.
package form

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
)

// Spec describes one form field.
type Spec struct {
	Label       string
	Placeholder string
}

// Form is an ordered set of labelled input fields with one focused.
type Form struct {
	styles *styles.Styles
	title  string
	fields []*input.Field
	focus  int
}

// New creates a form with the first field focused.
func New(s *styles.Styles, title string, specs ...Spec) *Form {
	if s == nil {
		s = styles.DefaultStyles()
	}

	f := &Form{styles: s, title: title}
	for _, spec := range specs {
		field := input.NewField(s, spec.Label, spec.Placeholder)
		field.Blur()
		f.fields = append(f.fields, field)
	}
	if len(f.fields) > 0 {
		f.fields[0].Focus()
	}
	return f
}

// Update forwards messages to the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return f, cmd
}

// Next focuses the following field, wrapping at the end.
func (f *Form) Next() tea.Cmd {
	return f.setFocus((f.focus + 1) % len(f.fields))
}

// Prev focuses the preceding field, wrapping at the start.
func (f *Form) Prev() tea.Cmd {
	return f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = i
	return f.fields[f.focus].Focus()
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus
}

// Value returns the value of field i.
func (f *Form) Value(i int) string {
	return f.fields[i].Value()
}

// SetValue sets the value of field i.
func (f *Form) SetValue(i int, value string) {
	f.fields[i].SetValue(value)
}

// SetTitle changes the heading.
func (f *Form) SetTitle(title string) {
	f.title = title
}

// Title returns the heading.
func (f *Form) Title() string {
	return f.title
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Reset clears every field and focuses the first.
func (f *Form) Reset() tea.Cmd {
	for _, field := range f.fields {
		field.Reset()
	}
	return f.setFocus(0)
}

// SetWidth sets the width of every field.
func (f *Form) SetWidth(width int) {
	for _, field := range f.fields {
		field.SetWidth(width)
	}
}

// View renders the form.
func (f *Form) View() string {
	lines := make([]string, 0, len(f.fields)+2)
	if f.title != "" {
		lines = append(lines, f.styles.Subtitle.Render(f.title), "")
	}
	for _, field := range f.fields {
		lines = append(lines, field.View())
	}
	return f.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}
