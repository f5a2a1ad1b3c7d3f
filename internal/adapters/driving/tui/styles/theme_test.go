package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

func TestDefaultTheme_OutcomeColoursDiffer(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	palette := []lipgloss.Color{theme.Accent, theme.Highlight, theme.Success, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool, len(palette))
	for _, c := range palette {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles(t *testing.T) {
	theme := DefaultTheme()
	assert.Same(t, theme, NewStyles(theme).Theme())

	fallback := NewStyles(nil)
	require.NotNil(t, fallback.Theme())
	assert.Equal(t, DefaultTheme().Accent, fallback.Theme().Accent)
}

func TestStyles_ForState(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		state domain.ProcessState
		want  lipgloss.Style
	}{
		{domain.ProcessSuccess, s.Success},
		{domain.ProcessError, s.Error},
		{domain.ProcessPending, s.Warning},
		{domain.ProcessIdle, s.Muted},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.ForState(tt.state))
		})
	}
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"title":     s.Title,
		"selected":  s.Selected,
		"user":      s.UserMessage,
		"assistant": s.AssistantMessage,
		"active":    s.ActiveTab,
		"status":    s.StatusBar,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render("Opening hours"), "Opening hours")
		})
	}
}

func TestStyles_Bordered(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, lipgloss.RoundedBorder(), s.Border.GetBorderStyle())
	assert.Equal(t, 1, s.InputField.GetPaddingLeft())
}
