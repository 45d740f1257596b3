// Package tui provides an interactive terminal user interface for folio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Search retrieves passages for a query.
	Search driving.SearchService

	// Document lists, reads and deletes ingested documents.
	Document driving.DocumentService

	// Settings is optional. When set, configuration problems are shown on the menu.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate with the required services.
func NewPorts(search driving.SearchService, document driving.DocumentService) *Ports {
	return &Ports{
		Search:   search,
		Document: document,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
