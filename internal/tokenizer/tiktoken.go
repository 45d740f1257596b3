package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Tiktoken implements the interface.
var _ driven.Tokenizer = (*Tiktoken)(nil)

// Tiktoken counts tokens with a BPE encoding.
type Tiktoken struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding, such as "p50k_base".
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", encoding, err)
	}
	return &Tiktoken{name: encoding, enc: enc}, nil
}

// Name returns the encoding name.
func (t *Tiktoken) Name() string {
	return t.name
}

// Count returns the number of tokens. Special tokens count as one each.
func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, []string{"all"}, nil))
}

// New returns the tokenizer for kind. An empty kind selects the
// approximate counter.
func New(kind domain.TokenizerKind) (driven.Tokenizer, error) {
	switch kind {
	case "", domain.TokenizerApprox:
		return NewApprox(), nil
	case domain.TokenizerP50kBase:
		return NewTiktoken(string(domain.TokenizerP50kBase))
	default:
		return nil, fmt.Errorf("tokenizer %q: %w", kind, domain.ErrInvalidInput)
	}
}
