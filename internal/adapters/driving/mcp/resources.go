package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio/internal/core/domain"
)

const (
	uriScheme = "folio://"

	mimeJSON = "application/json"
	mimeText = "text/plain"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Catalog of ingested documents with their index state",
		MIMEType:    mimeJSON,
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-text",
		Description: "Plain text of an ingested document",
		MIMEType:    mimeText,
	}, s.handleDocumentTextResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/tree",
		Name:        "document-tree",
		Description: "Parsed document tree with positions and metadata",
		MIMEType:    mimeJSON,
	}, s.handleDocumentTreeResource)
}

type documentInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Filename     string `json:"filename"`
	State        string `json:"state"`
	Nodes        int    `json:"nodes"`
	ExternalLink string `json:"external_link,omitempty"`
	URI          string `json:"uri"`
}

// handleDocumentsResource returns the document catalog.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return textResult(req.Params.URI, mimeJSON, "[]"), nil
	}

	recs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]documentInfo, len(recs))
	for i := range recs {
		infos[i] = documentInfo{
			ID:           recs[i].ID,
			Title:        recs[i].Title,
			Filename:     recs[i].Filename,
			State:        recs[i].IndexState.String(),
			Nodes:        recs[i].NodeCount,
			ExternalLink: recs[i].ExternalLink,
			URI:          uriScheme + "documents/" + recs[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}
	return textResult(req.Params.URI, mimeJSON, string(data)), nil
}

// handleDocumentTextResource returns the plain text of a document.
func (s *Server) handleDocumentTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID, tree := parseDocumentURI(req.Params.URI)
	if s.ports.Document == nil || docID == "" || tree {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}
	return textResult(req.Params.URI, mimeText, content), nil
}

// handleDocumentTreeResource returns the stored document tree as JSON.
func (s *Server) handleDocumentTreeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID, tree := parseDocumentURI(req.Params.URI)
	if s.ports.Document == nil || docID == "" || !tree {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.GetDocument(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}
	return textResult(req.Params.URI, mimeJSON, string(data)), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// parseDocumentURI extracts the document ID from folio://documents/{id}
// or folio://documents/{id}/tree. tree reports the second form.
func parseDocumentURI(uri string) (id string, tree bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, prefix)
	if before, ok := strings.CutSuffix(rest, "/tree"); ok {
		rest, tree = before, true
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, tree
}
