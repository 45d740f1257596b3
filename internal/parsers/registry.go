package parsers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/parsers/docx"
	"github.com/custodia-labs/folio/internal/parsers/pdf"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps MIME types and file extensions to parsers.
type Registry struct {
	mu          sync.RWMutex
	byMIME      map[string]driven.DocumentParser
	byExtension map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME:      make(map[string]driven.DocumentParser),
		byExtension: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with the PDF and DOCX parsers.
func NewDefaultRegistry(opts ...pdf.Option) *Registry {
	r := NewRegistry()
	r.Register(pdf.New(opts...))
	r.Register(docx.New())
	return r
}

// Register adds a parser. Later registrations replace earlier ones for
// the same MIME type.
func (r *Registry) Register(parser driven.DocumentParser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mimeTypes := parser.SupportedMIMETypes()
	for _, m := range mimeTypes {
		r.byMIME[m] = parser
	}
	if len(mimeTypes) == 0 {
		return
	}
	for _, ext := range parser.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = mimeTypes[0]
	}
}

// DetectMIMEType returns the MIME type for a file name, or "" when unknown.
// Registered extensions win over the system MIME table.
func (r *Registry) DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	r.mu.RLock()
	m, ok := r.byExtension[ext]
	r.mu.RUnlock()
	if ok {
		return m
	}

	m, _, _ = mime.ParseMediaType(mime.TypeByExtension(ext))
	return m
}

// Parse selects a parser by MIME type, detecting it from name when empty.
func (r *Registry) Parse(ctx context.Context, name, mimeType string, data []byte) (*domain.Document, error) {
	if mimeType == "" {
		mimeType = r.DetectMIMEType(name)
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	r.mu.RLock()
	parser, ok := r.byMIME[mimeType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("parse %q (%s): %w", name, mimeType, domain.ErrUnsupportedType)
	}

	logger.Debug("parsers: %s as %s (%d bytes)", name, mimeType, len(data))
	return parser.Parse(ctx, data)
}

// SupportedMIMETypes returns all MIME types that can be parsed, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for m := range r.byMIME {
		types = append(types, m)
	}
	sort.Strings(types)
	return types
}
