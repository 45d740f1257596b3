package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// US Letter, used when a page declares no media box.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// maxPageTreeDepth bounds the walk up the page tree.
const maxPageTreeDepth = 32

// Ensure Engine implements the interface.
var _ driven.PDFEngine = (*Engine)(nil)

// Engine decodes PDF content streams with github.com/ledongthuc/pdf.
type Engine struct{}

// NewEngine creates the default engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract decodes every page's text runs and the document info dictionary.
func (e *Engine) Extract(ctx context.Context, data []byte) (content *domain.PDFContent, err error) {
	// The decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("pdf: decode: %v: %w", r, domain.ErrParseFailure)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf: open: %v: %w", err, domain.ErrParseFailure)
	}

	content = &domain.PDFContent{Meta: metaFromInfo(infoLookup(reader.Trailer().Key("Info")))}
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		width, height := pageSize(page.V)
		pc := domain.PageContent{Number: i, Width: width, Height: height}
		for _, t := range page.Content().Text {
			pc.Runs = append(pc.Runs, domain.TextRun{
				Text:     t.S,
				X:        t.X,
				Y:        t.Y,
				Width:    t.W,
				FontName: t.Font,
				FontSize: t.FontSize,
			})
		}
		content.Pages = append(content.Pages, pc)
	}
	return content, nil
}

// pageSize reads the media box, inheriting it from parent page tree nodes.
func pageSize(page pdf.Value) (float64, float64) {
	v := page
	for depth := 0; depth < maxPageTreeDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() >= 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

func infoLookup(info pdf.Value) func(string) string {
	return func(key string) string {
		if info.IsNull() {
			return ""
		}
		return info.Key(key).Text()
	}
}
