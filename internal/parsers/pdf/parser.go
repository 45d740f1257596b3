package pdf

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/layout"
	"github.com/custodia-labs/folio/internal/logger"
)

// MIMEType is the content type handled by the parser.
const MIMEType = "application/pdf"

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser turns PDF bytes into a document.
type Parser struct {
	engine   driven.PDFEngine
	analyser *layout.Analyser
}

// Option configures a Parser.
type Option func(*Parser)

// WithEngine replaces the PDF decoding engine.
func WithEngine(engine driven.PDFEngine) Option {
	return func(p *Parser) {
		p.engine = engine
	}
}

// New creates a PDF parser backed by the default engine.
func New(opts ...Option) *Parser {
	p := &Parser{
		engine:   NewEngine(),
		analyser: layout.NewAnalyser(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SupportedMIMETypes returns the MIME types this parser handles.
func (p *Parser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *Parser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Parse decodes the PDF, classifies its text and builds the node tree.
func (p *Parser) Parse(ctx context.Context, data []byte) (*domain.Document, error) {
	content, err := p.engine.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	elements := Elements(content.Pages)
	if len(elements) == 0 {
		return nil, fmt.Errorf("pdf: %w", domain.ErrEmptyDocument)
	}
	logger.Debug("pdf: %d pages, %d text elements", len(content.Pages), len(elements))

	groups := p.analyser.Analyse(elements)
	nodes := Build(groups)
	logger.Debug("pdf: %d groups, %d nodes", len(groups), len(nodes))

	return &domain.Document{Meta: content.Meta, Nodes: nodes}, nil
}

// Elements converts decoded runs into layout elements in reading order.
// Bounds are rounded to whole units; runs without text are dropped.
func Elements(pages []domain.PageContent) []layout.TextElement {
	var elements []layout.TextElement
	for _, page := range pages {
		info := layout.Page{Number: page.Number, Width: page.Width, Height: page.Height}
		for _, run := range page.Runs {
			if run.Text == "" {
				continue
			}
			elements = append(elements, layout.TextElement{
				Text: run.Text,
				Bounds: layout.Rect{
					X1: math.Round(run.X),
					Y1: math.Round(run.Y + run.FontSize),
					X2: math.Round(run.X + run.Width),
					Y2: math.Round(run.Y),
				},
				Page:       info,
				FontName:   run.FontName,
				FontSize:   run.FontSize,
				FontWeight: layout.WeightFromFontName(run.FontName),
			})
		}
	}
	return elements
}
