package domain

import "time"

// IndexState tracks a document through ingestion.
type IndexState string

// Index states.
const (
	// IndexStateIndexing means parsing or embedding is in progress.
	IndexStateIndexing IndexState = "indexing"

	// IndexStateReady means the document and its graph are stored.
	IndexStateReady IndexState = "ready"

	// IndexStateFailed means ingestion stopped with an error.
	IndexStateFailed IndexState = "failed"
)

// IsValid returns true if the state is recognised.
func (s IndexState) IsValid() bool {
	switch s {
	case IndexStateIndexing, IndexStateReady, IndexStateFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IndexState) String() string {
	return string(s)
}

// DocumentRecord is the catalog entry for an ingested file.
type DocumentRecord struct {
	// ID is the document identifier and the artifact storage key.
	ID string

	// Title is the human-readable title.
	Title string

	// Filename is the base name of the ingested file.
	Filename string

	// MimeType is the detected content type.
	MimeType string

	// ExternalLink points at the original document, if any.
	ExternalLink string

	// IndexState is the ingestion progress.
	IndexState IndexState

	// ContentHash is the SHA-256 of the file bytes.
	ContentHash string

	// NodeCount is the number of nodes in the retrieval graph.
	NodeCount int

	// Error holds the failure message when IndexState is failed.
	Error string

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time
}
