package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate colour: %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":      s.Title,
		"Subtitle":   s.Subtitle,
		"Normal":     s.Normal,
		"Muted":      s.Muted,
		"Selected":   s.Selected,
		"Error":      s.Error,
		"Success":    s.Success,
		"Warning":    s.Warning,
		"Score":      s.Score,
		"InputField": s.InputField,
		"StatusBar":  s.StatusBar,
		"Help":       s.Help,
		"Border":     s.Border,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
		assert.Contains(t, style.Render("text"), "text", name)
	}
}

func TestStyles_State(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		state domain.IndexState
		want  lipgloss.TerminalColor
	}{
		{domain.IndexStateReady, theme.Success},
		{domain.IndexStateFailed, theme.Error},
		{domain.IndexStateIndexing, theme.Warning},
		{domain.IndexState("other"), theme.Muted},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.want, s.State(tt.state).GetForeground())
		})
	}
}
