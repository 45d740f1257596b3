// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/folio/internal/core/domain"
)

// QueryChanged is sent when the search query input changes.
type QueryChanged struct {
	Query string
}

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted carries retrieved passages back to the model.
type SearchCompleted struct {
	Results []domain.Context
	Err     error
}

// ResultSelected is sent when a search result is selected.
type ResultSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewDocuments lists the document catalog.
	ViewDocuments
	// ViewDocContent shows document text.
	ViewDocContent
	// ViewDocDetails shows a document's catalog record.
	ViewDocDetails
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewDocDetails:
		return "doc_details"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the document catalog.
type DocumentsLoaded struct {
	Documents []domain.DocumentRecord
	Err       error
}

// DocumentSelected signals a document was chosen for reading.
// Title may be empty when the selection came from a search result.
type DocumentSelected struct {
	ID    string
	Title string
}

// DocumentContentLoaded carries the text of a document.
type DocumentContentLoaded struct {
	DocumentID string
	Content    string
	Err        error
}

// DocumentDetailsLoaded carries the catalog record of a document.
type DocumentDetailsLoaded struct {
	DocumentID string
	Record     *domain.DocumentRecord
	Err        error
}

// DocumentDeleted signals a document was removed from the catalog.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}
