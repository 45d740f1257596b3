// Package artifacts persists parsed documents and retrieval graphs as JSON
// files through viant/afs, so the base location may be a local directory or
// any URL scheme afs has a storage manager for.
//
// Layout: {base}/{document_id}/data.json and {base}/{document_id}/embedding.json
package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Artifact file names inside a document directory.
const (
	DocumentFile = "data.json"
	GraphFile    = "embedding.json"
)

// Store writes document artifacts under a base URL.
type Store struct {
	fs      afs.Service
	baseURL string
}

// NewStore creates a store rooted at base. A plain path is resolved to an
// absolute file URL; an empty base means ~/.folio/artifacts.
func NewStore(base string) (*Store, error) {
	baseURL, err := normaliseBase(base)
	if err != nil {
		return nil, err
	}
	return &Store{fs: afs.New(), baseURL: baseURL}, nil
}

// BaseURL returns the root every artifact is written under.
func (s *Store) BaseURL() string {
	return s.baseURL
}

// SaveDocument writes {id}/data.json.
func (s *Store) SaveDocument(ctx context.Context, id string, doc *domain.Document) error {
	return s.save(ctx, id, DocumentFile, doc)
}

// LoadDocument reads {id}/data.json.
func (s *Store) LoadDocument(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := s.load(ctx, id, DocumentFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveGraph writes {id}/embedding.json.
func (s *Store) SaveGraph(ctx context.Context, id string, graph *domain.RetrievalGraph) error {
	return s.save(ctx, id, GraphFile, graph)
}

// LoadGraph reads {id}/embedding.json.
func (s *Store) LoadGraph(ctx context.Context, id string) (*domain.RetrievalGraph, error) {
	var graph domain.RetrievalGraph
	if err := s.load(ctx, id, GraphFile, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// Delete removes the document directory. A missing directory is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	dir, err := s.dirURL(id)
	if err != nil {
		return err
	}
	exists, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("artifacts: checking %s: %w", dir, err)
	}
	if !exists {
		return nil
	}
	if err := s.fs.Delete(ctx, dir); err != nil {
		return fmt.Errorf("artifacts: deleting %s: %w", dir, err)
	}
	logger.Debug("artifacts: deleted %s", dir)
	return nil
}

func (s *Store) save(ctx context.Context, id, name string, v any) error {
	dir, err := s.dirURL(id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", domain.ErrSerializationFailure, name, err)
	}
	target := url.Join(dir, name)
	if err := s.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("artifacts: writing %s: %w", target, err)
	}
	logger.Debug("artifacts: wrote %s (%d bytes)", target, len(data))
	return nil
}

func (s *Store) load(ctx context.Context, id, name string, v any) error {
	dir, err := s.dirURL(id)
	if err != nil {
		return err
	}
	source := url.Join(dir, name)
	exists, err := s.fs.Exists(ctx, source)
	if err != nil {
		return fmt.Errorf("artifacts: checking %s: %w", source, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, source)
	}
	data, err := s.fs.DownloadWithURL(ctx, source)
	if err != nil {
		return fmt.Errorf("artifacts: reading %s: %w", source, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", domain.ErrSerializationFailure, source, err)
	}
	return nil
}

// dirURL rejects ids that would escape the base directory.
func (s *Store) dirURL(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: artifact id %q", domain.ErrInvalidInput, id)
	}
	return url.Join(s.baseURL, id), nil
}

func normaliseBase(base string) (string, error) {
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		base = filepath.Join(home, ".folio", "artifacts")
	}
	if strings.Contains(base, "://") {
		return strings.TrimRight(base, "/"), nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving artifacts path: %w", err)
	}
	return file.Scheme + "://" + filepath.ToSlash(abs), nil
}
