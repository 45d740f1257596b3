package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService parses, chunks and indexes files and manages their artifacts.
type DocumentService struct {
	parsers   driven.ParserRegistry
	chunkers  driven.ChunkerBuilder
	indexer   driven.GraphIndexer
	artifacts driven.ArtifactStore
	catalog   driven.DocumentCatalog
	newID     func() string
}

// NewDocumentService creates a new document service.
// The indexer is optional; without it Ingest fails with domain.ErrEmbeddingUnavailable
// while Parse and Chunk keep working.
func NewDocumentService(
	parsers driven.ParserRegistry,
	chunkers driven.ChunkerBuilder,
	indexer driven.GraphIndexer,
	artifacts driven.ArtifactStore,
	catalog driven.DocumentCatalog,
) *DocumentService {
	return &DocumentService{
		parsers:   parsers,
		chunkers:  chunkers,
		indexer:   indexer,
		artifacts: artifacts,
		catalog:   catalog,
		newID:     uuid.NewString,
	}
}

// Parse builds the document tree without persisting anything.
func (s *DocumentService) Parse(ctx context.Context, name string, data []byte) (*domain.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, name)
	}
	doc, err := s.parsers.Parse(ctx, name, "", data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return doc, nil
}

// Chunk parses a file and splits it into overlapping chunks.
func (s *DocumentService) Chunk(ctx context.Context, name string, data []byte, maxTokens int) ([]string, error) {
	doc, err := s.Parse(ctx, name, data)
	if err != nil {
		return nil, err
	}
	chunker, err := s.chunkers(maxTokens)
	if err != nil {
		return nil, fmt.Errorf("build chunker: %w", err)
	}
	return chunker.Chunk(doc), nil
}

// Ingest runs the full pipeline for one file. Artifacts are written only
// after indexing succeeds. A new record moves to indexing first and ends
// ready or failed. Re-ingesting a ready document leaves it ready with its
// previous artifacts until the new version is stored; a failure is recorded
// in its error field.
func (s *DocumentService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.DocumentRecord, error) {
	if req.Name == "" || len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: ingest needs a file name and content", domain.ErrInvalidInput)
	}
	if s.indexer == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = s.parsers.DetectMIMEType(req.Name)
	}
	if mimeType == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(req.Name))
	}

	id := req.ID
	if id == "" {
		id = s.newID()
	}

	logger.Section("Ingest")
	logger.Debug("File: %s (%s, %d bytes) -> %s", req.Name, mimeType, len(req.Data), id)

	prev, err := s.readyRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	rec := &domain.DocumentRecord{
		ID:           id,
		Title:        req.Title,
		Filename:     filepath.Base(req.Name),
		MimeType:     mimeType,
		ExternalLink: req.ExternalLink,
		IndexState:   domain.IndexStateIndexing,
		ContentHash:  contentHash(req.Data),
	}
	if rec.Title == "" {
		rec.Title = titleFromFilename(req.Name)
	}
	if prev == nil {
		if err := s.catalog.SaveDocument(ctx, rec); err != nil {
			return nil, fmt.Errorf("record document: %w", err)
		}
	}

	doc, err := s.parsers.Parse(ctx, req.Name, mimeType, req.Data)
	if err != nil {
		return s.fail(ctx, rec, prev, fmt.Errorf("parse: %w", err))
	}
	if req.Title == "" && strings.TrimSpace(doc.Meta.Title) != "" {
		rec.Title = strings.TrimSpace(doc.Meta.Title)
	}
	logger.Debug("Parsed %d top-level nodes, title %q", len(doc.Nodes), rec.Title)

	chunker, err := s.chunkers(0)
	if err != nil {
		return s.fail(ctx, rec, prev, fmt.Errorf("build chunker: %w", err))
	}
	chunks := chunker.Chunk(doc)
	if len(chunks) == 0 {
		logger.Warn("%s produced no chunks; the graph will be empty", req.Name)
	}
	logger.Debug("Chunked with %s: %d chunks", chunker.Name(), len(chunks))

	graph, err := s.indexer.Index(ctx, chunks, domain.IndexingMeta{
		ID:           id,
		Title:        rec.Title,
		ExternalLink: req.ExternalLink,
	})
	if err != nil {
		return s.fail(ctx, rec, prev, fmt.Errorf("index: %w", err))
	}
	if err := s.saveArtifacts(ctx, id, doc, graph, prev != nil); err != nil {
		return s.fail(ctx, rec, prev, err)
	}

	rec.IndexState = domain.IndexStateReady
	rec.NodeCount = graph.NodeCount()
	rec.Error = ""
	if err := s.catalog.SaveDocument(ctx, rec); err != nil {
		return nil, fmt.Errorf("record document: %w", err)
	}
	logger.Info("Ingested %s as %s (%d nodes)", req.Name, id, rec.NodeCount)
	return rec, nil
}

// readyRecord returns the catalog record for id when it is ready, or nil.
func (s *DocumentService) readyRecord(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	prev, err := s.catalog.GetDocument(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("look up document: %w", err)
	case prev.IndexState != domain.IndexStateReady:
		return nil, nil
	}
	return prev, nil
}

// saveArtifacts stores the document and its graph as a pair. When the graph
// cannot be stored, the previous document is put back so both files still
// describe the same version.
func (s *DocumentService) saveArtifacts(ctx context.Context, id string, doc *domain.Document, graph *domain.RetrievalGraph, replacing bool) error {
	var old *domain.Document
	if replacing {
		loaded, err := s.artifacts.LoadDocument(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("load previous document: %w", err)
		}
		old = loaded
	}

	if err := s.artifacts.SaveDocument(ctx, id, doc); err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	if err := s.artifacts.SaveGraph(ctx, id, graph); err != nil {
		if old != nil {
			if restoreErr := s.artifacts.SaveDocument(ctx, id, old); restoreErr != nil {
				logger.Warn("Could not restore previous document %s: %v", id, restoreErr)
			}
		}
		return fmt.Errorf("store graph: %w", err)
	}
	return nil
}

// fail records err and returns it. A new record is marked failed; a ready
// record stays ready so its stored graph remains searchable. The catalog
// write is best effort.
func (s *DocumentService) fail(ctx context.Context, rec, prev *domain.DocumentRecord, err error) (*domain.DocumentRecord, error) {
	if prev != nil {
		kept := *prev
		rec = &kept
	} else {
		rec.IndexState = domain.IndexStateFailed
	}
	rec.Error = err.Error()
	if saveErr := s.catalog.SaveDocument(ctx, rec); saveErr != nil {
		logger.Warn("Could not record failure of %s: %v", rec.ID, saveErr)
	}
	logger.Warn("Ingest of %s failed: %v", rec.Filename, err)
	return rec, err
}

// List returns all catalog records.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	return s.catalog.ListDocuments(ctx)
}

// Get retrieves a catalog record by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	return s.catalog.GetDocument(ctx, id)
}

// GetDocument loads the stored document tree.
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if _, err := s.catalog.GetDocument(ctx, id); err != nil {
		return nil, err
	}
	return s.artifacts.LoadDocument(ctx, id)
}

// GetContent returns the stored document's plain text.
func (s *DocumentService) GetContent(ctx context.Context, id string) (string, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

// Delete removes the artifacts first so a failed delete leaves the record visible.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.catalog.GetDocument(ctx, id); err != nil {
		return err
	}
	if err := s.artifacts.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete artifacts: %w", err)
	}
	return s.catalog.DeleteDocument(ctx, id)
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// titleFromFilename turns "annual_report-2024.pdf" into "annual report 2024".
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	return strings.ReplaceAll(base, "-", " ")
}
