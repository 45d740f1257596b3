// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
)

const (
	queryCharLimit = 512
	minInputWidth  = 20
	labelWidth     = 10
)

// QueryInput is the question box of the search view.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQueryInput creates a focused query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.Prompt = "› "
	ti.CharLimit = queryCharLimit
	ti.Width = 50
	ti.Focus()

	return &QueryInput{textinput: ti, styles: s, width: 50}
}

func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Query: ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the query with surrounding whitespace intact.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sizes the field to the terminal, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.textinput.Width = max(width-labelWidth, minInputWidth)
}

func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the query.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
