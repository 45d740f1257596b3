// Package chunker provides the overlapping token-bounded chunker.
package chunker

import (
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/tokenizer"
)

// DefaultMaxTokens is the default token budget per chunk.
const DefaultMaxTokens = domain.DefaultChunkMaxTokens

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits text lines into chunks of about maxTokens tokens, each
// overlapping its neighbours by half.
type Processor struct {
	maxTokens int
	tokenizer driven.Tokenizer
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxTokens sets the token budget per chunk.
func WithMaxTokens(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxTokens = n
		}
	}
}

// WithTokenizer sets the token counter.
func WithTokenizer(t driven.Tokenizer) Option {
	return func(p *Processor) {
		if t != nil {
			p.tokenizer = t
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxTokens: DefaultMaxTokens,
		tokenizer: tokenizer.NewApprox(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// MaxTokens returns the token budget per chunk.
func (p *Processor) MaxTokens() int {
	return p.maxTokens
}

// Chunk splits the document's line-split text.
func (p *Processor) Chunk(doc *domain.Document) []string {
	if doc == nil {
		return nil
	}
	return p.ChunkLines(doc.Lines())
}

// ChunkLines accumulates lines into half-chunks of at most maxTokens/2
// tokens and returns every adjacent pair of half-chunks joined. N
// half-chunks give N-1 chunks; fewer than two give none. A single line
// larger than the half budget forms a half-chunk of its own.
func (p *Processor) ChunkLines(lines []string) []string {
	halves := p.halves(lines)
	if len(halves) < 2 {
		logger.Debug("chunker: %d lines gave %d half-chunks, no chunks", len(lines), len(halves))
		return nil
	}

	chunks := make([]string, 0, len(halves)-1)
	for i := 0; i+1 < len(halves); i++ {
		chunks = append(chunks, halves[i]+halves[i+1])
	}
	logger.Debug("chunker: %d lines, %d half-chunks, %d chunks (max %d tokens, %s)",
		len(lines), len(halves), len(chunks), p.maxTokens, p.tokenizer.Name())
	return chunks
}

func (p *Processor) halves(lines []string) []string {
	budget := p.maxTokens / 2

	var halves []string
	var buf strings.Builder
	bufTokens := 0

	for _, line := range lines {
		lineTokens := p.tokenizer.Count(line)
		if buf.Len() > 0 && bufTokens+lineTokens > budget {
			halves = append(halves, buf.String())
			buf.Reset()
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		bufTokens = p.tokenizer.Count(buf.String())
	}
	if buf.Len() > 0 {
		halves = append(halves, buf.String())
	}
	return halves
}
