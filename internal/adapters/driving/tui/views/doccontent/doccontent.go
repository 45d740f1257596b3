// Package doccontent provides the document text view for the TUI.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// ErrNoDocumentService indicates the view was built without a document service.
var ErrNoDocumentService = errors.New("document service not available")

// chrome is the number of lines used by the title, separator and footer.
const chrome = 6

// View shows the plain text of a stored document in a scrollable viewport.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context
	viewport        viewport.Model

	documentID string
	title      string
	back       messages.ViewType
	content    string
	width      int
	height     int
	err        error
	loading    bool
}

// NewView creates a new document content view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		documentService: documentService,
		ctx:             context.Background(),
		viewport:        viewport.New(76, 18),
		back:            messages.ViewDocuments,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context service calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open starts loading a document. Esc returns to back.
func (v *View) Open(sel messages.DocumentSelected, back messages.ViewType) tea.Cmd {
	v.documentID = sel.ID
	v.title = sel.Title
	v.back = back
	v.content = ""
	v.err = nil
	v.loading = true
	v.viewport.SetContent("")
	v.viewport.GotoTop()
	return v.loadContent()
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) loadContent() tea.Cmd {
	svc, ctx, id := v.documentService, v.ctx, v.documentID
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentContentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		content, err := svc.GetContent(ctx, id)
		return messages.DocumentContentLoaded{DocumentID: id, Content: content, Err: err}
	}
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Back):
			back := v.back
			return v, func() tea.Msg { return messages.ViewChanged{View: back} }
		case keymap.Matches(k, v.keymap.Top):
			v.viewport.GotoTop()
			return v, nil
		case keymap.Matches(k, v.keymap.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case messages.DocumentContentLoaded:
		// A slow load for a previously opened document is stale.
		if msg.DocumentID != v.documentID {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.content = msg.Content
			v.refresh()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// refresh rewraps the content to the viewport width.
func (v *View) refresh() {
	wrapped := lipgloss.NewStyle().Width(v.viewport.Width).Render(v.content)
	v.viewport.SetContent(wrapped)
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder

	title := v.title
	if title == "" {
		title = v.documentID
	}
	if title == "" {
		title = "Document"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(strings.Repeat("─", min(max(v.width-4, 1), 60))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case strings.TrimSpace(v.content) == "":
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		b.WriteString(v.viewport.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%3.f%%] %d lines",
			v.viewport.ScrollPercent()*100, v.viewport.TotalLineCount())))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))

	return b.String()
}

// SetDimensions sizes the viewport to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width-4, 20)
	v.viewport.Height = max(height-chrome, 1)
	v.refresh()
}

// DocumentID returns the document being shown.
func (v *View) DocumentID() string {
	return v.documentID
}

// Content returns the unwrapped document text.
func (v *View) Content() string {
	return v.content
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// AtTop reports whether the viewport is scrolled to the start.
func (v *View) AtTop() bool {
	return v.viewport.AtTop()
}
