// Package documents provides the document catalog view for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// ErrNoDocumentService indicates the view was built without a document service.
var ErrNoDocumentService = errors.New("document service not available")

// View is the document catalog view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	documents     []domain.DocumentRecord
	selected      int
	scrollOffset  int
	width         int
	height        int
	err           error
	notice        string
	loading       bool
	confirmDelete bool
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context service calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the catalog.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.confirmDelete = false
	return v.loadDocuments()
}

func (v *View) loadDocuments() tea.Cmd {
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		docs, err := svc.List(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

func (v *View) loadDetails(id string) tea.Cmd {
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDetailsLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		rec, err := svc.Get(ctx, id)
		return messages.DocumentDetailsLoaded{DocumentID: id, Record: rec, Err: err}
	}
}

func (v *View) deleteDocument(id string) tea.Cmd {
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDeleted{DocumentID: id, Err: ErrNoDocumentService}
		}
		return messages.DocumentDeleted{DocumentID: id, Err: svc.Delete(ctx, id)}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.confirmDelete {
			return v.handleConfirmKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.documents = msg.Documents
			v.selected = min(v.selected, max(len(v.documents)-1, 0))
			v.adjustScroll()
		}
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.notice = fmt.Sprintf("Deleted %s", msg.DocumentID)
		return v, v.loadDocuments()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(k, v.keymap.Reload):
		v.loading = true
		v.notice = ""
		return v, v.loadDocuments()
	}

	rec := v.SelectedDocument()
	if rec == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Open):
		sel := messages.DocumentSelected{ID: rec.ID, Title: rec.Title}
		return v, func() tea.Msg { return sel }
	case keymap.Matches(k, v.keymap.Details):
		return v, v.loadDetails(rec.ID)
	case keymap.Matches(k, v.keymap.Delete):
		v.confirmDelete = true
	}
	return v, nil
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirmDelete = false
	if msg.String() != "y" {
		return v, nil
	}
	rec := v.SelectedDocument()
	if rec == nil {
		return v, nil
	}
	return v, v.deleteDocument(rec.ID)
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	return max(v.height-8, 1)
}

// View renders the catalog.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents ingested. Run folio ingest <file> to add one."))
	default:
		b.WriteString(v.renderList())
	}

	b.WriteString("\n\n")
	if v.confirmDelete {
		if rec := v.SelectedDocument(); rec != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %q? [y/N]", displayTitle(rec))))
			return b.String()
		}
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.DocumentsHelp(), "  ")))

	return b.String()
}

func (v *View) renderList() string {
	visible := v.visibleItemCount()
	titleWidth := max(v.width/2-4, 10)

	lines := make([]string, 0, visible+2)
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visible; i++ {
		lines = append(lines, v.renderDocument(i, &v.documents[i], titleWidth))
	}

	if len(v.documents) > visible {
		lines = append(lines, "", v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.documents)),
			len(v.documents))))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderDocument(index int, rec *domain.DocumentRecord, titleWidth int) string {
	title := displayTitle(rec)
	if len(title) > titleWidth {
		title = title[:titleWidth-3] + "..."
	}
	state := v.styles.State(rec.IndexState).Render(fmt.Sprintf("%-8s", rec.IndexState))
	nodes := fmt.Sprintf("%5d nodes", rec.NodeCount)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s", titleWidth, title)) + "  " + state + "  " +
			v.styles.Muted.Render(nodes)
	}
	return v.styles.Normal.Render(fmt.Sprintf("  %-*s", titleWidth, title)) + "  " + state + "  " +
		v.styles.Muted.Render(nodes)
}

func displayTitle(rec *domain.DocumentRecord) string {
	if rec.Title != "" {
		return rec.Title
	}
	if rec.Filename != "" {
		return rec.Filename
	}
	return rec.ID
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Documents returns the loaded catalog records.
func (v *View) Documents() []domain.DocumentRecord {
	return v.documents
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the selected record, or nil when the list is empty.
func (v *View) SelectedDocument() *domain.DocumentRecord {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// ConfirmingDelete reports whether a delete prompt is showing.
func (v *View) ConfirmingDelete() bool {
	return v.confirmDelete
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
