// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays search status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	tokens  int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the state on the left and key hints on the right.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.styles.Muted.Render(keymap.HelpLine(s.bindings(), " | "))

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		if s.count == 0 {
			return s.styles.Muted.Render("No passages within budget")
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d passages, ~%d tokens", s.count, s.tokens))
	case StateReady:
	}
	if s.message != "" {
		return s.styles.Muted.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) bindings() []key.Binding {
	if s.state == StateResults && s.count > 0 {
		return s.keymap.ResultsHelp()
	}
	return s.keymap.ShortHelp()
}

func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

func (s *Bar) SetMessage(message string) {
	s.message = message
}

func (s *Bar) Message() string {
	return s.message
}

// SetResults records the passage count and their summed token estimate.
func (s *Bar) SetResults(count, tokens int) {
	s.count = count
	s.tokens = tokens
}

func (s *Bar) ResultCount() int {
	return s.count
}

func (s *Bar) Tokens() int {
	return s.tokens
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
	s.tokens = 0
}
