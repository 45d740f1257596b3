// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
)

// linesPerResult is the height of one rendered passage: heading and preview.
const linesPerResult = 3

// ResultList displays retrieved passages in a navigable list.
type ResultList struct {
	results  []domain.Context
	selected int
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 10,
	}
}

func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update moves the selection on up and down keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keymap.Matches(msg.String(), r.keymap.Up):
			r.MoveUp()
		case keymap.Matches(msg.String(), r.keymap.Down):
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of passages around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No passages")
	}

	tokens := 0
	for i := range r.results {
		tokens += r.results[i].Tokens()
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines,
		r.styles.Subtitle.Render(fmt.Sprintf("Passages (%d, ~%d tokens)", len(r.results), tokens)),
		"")

	visible := max((r.height-4)/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, c *domain.Context) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := truncate(ContextTitle(c), max(r.width-20, 10))
	score := fmt.Sprintf("%.3f", c.Score)

	var heading string
	if index == r.selected {
		heading = r.styles.Selected.Render(fmt.Sprintf("%s[%d] %s  %s", indicator, index+1, title, score))
	} else {
		heading = r.styles.Normal.Render(fmt.Sprintf("%s[%d] %s  ", indicator, index+1, title)) +
			r.styles.Score.Render(score)
	}

	preview := strings.Join(strings.Fields(c.RawData), " ")
	preview = truncate(preview, max(r.width-6, 20))

	return heading + "\n" + r.styles.Muted.Render("    "+preview)
}

// ContextTitle returns the document title carried in a passage's prompt
// text, falling back to its reference.
func ContextTitle(c *domain.Context) string {
	const prefix = "From document "
	if head, _, ok := strings.Cut(c.Data, ":\n"); ok && strings.HasPrefix(head, prefix) {
		if title := strings.TrimPrefix(head, prefix); title != "" {
			return title
		}
	}
	if ref := domain.Deref(c.Reference); ref != "" {
		return ref
	}
	return "(untitled)"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// SetResults replaces the passages and resets the selection.
func (r *ResultList) SetResults(results []domain.Context) {
	r.results = results
	r.selected = 0
}

func (r *ResultList) Results() []domain.Context {
	return r.results
}

func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index, ignoring out of range values.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the selected passage, or nil when empty.
func (r *ResultList) SelectedResult() *domain.Context {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

func (r *ResultList) Width() int  { return r.width }
func (r *ResultList) Height() int { return r.height }
func (r *ResultList) Count() int  { return len(r.results) }

func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
