// Package docdetails provides the document record view for the TUI.
package docdetails

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// View shows a document's catalog record.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	record *domain.DocumentRecord
	width  int
	height int
	err    error
}

// NewView creates a new document details view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// SetRecord sets the record to display.
func (v *View) SetRecord(rec *domain.DocumentRecord) {
	v.record = rec
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDocuments}
			}
		case keymap.Matches(k, v.keymap.Open) && v.record != nil:
			sel := messages.DocumentSelected{ID: v.record.ID, Title: v.record.Title}
			return v, func() tea.Msg { return sel }
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

type field struct {
	label string
	value string
	style func(string) string
}

func (v *View) fields() []field {
	rec := v.record
	plain := func(s string) string { return v.styles.Normal.Render(s) }

	fields := []field{
		{"ID", rec.ID, plain},
		{"Title", rec.Title, plain},
		{"Filename", rec.Filename, plain},
		{"MIME type", rec.MimeType, plain},
		{"State", rec.IndexState.String(), func(s string) string { return v.styles.State(rec.IndexState).Render(s) }},
		{"Nodes", fmt.Sprintf("%d", rec.NodeCount), plain},
		{"Hash", rec.ContentHash, func(s string) string { return v.styles.Muted.Render(s) }},
	}
	if rec.ExternalLink != "" {
		fields = append(fields, field{"Link", rec.ExternalLink, plain})
	}
	if !rec.CreatedAt.IsZero() {
		fields = append(fields, field{"Created", rec.CreatedAt.Local().Format(timeLayout), plain})
	}
	if !rec.UpdatedAt.IsZero() {
		fields = append(fields, field{"Updated", rec.UpdatedAt.Local().Format(timeLayout), plain})
	}
	if rec.Error != "" {
		fields = append(fields, field{"Error", rec.Error, func(s string) string { return v.styles.Error.Render(s) }})
	}
	return fields
}

// View renders the record.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(strings.Repeat("─", min(max(v.width-4, 1), 60))))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.record == nil:
		b.WriteString(v.styles.Muted.Render("No document selected"))
	default:
		for _, f := range v.fields() {
			b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-10s", f.label+":")))
			b.WriteString(" ")
			b.WriteString(f.style(f.value))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] open  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Record returns the record being shown.
func (v *View) Record() *domain.DocumentRecord {
	return v.record
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
