package tokenizer

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Approx implements the interface.
var _ driven.Tokenizer = (*Approx)(nil)

// Approx estimates tokens from word and punctuation counts.
type Approx struct{}

// NewApprox creates the approximate counter.
func NewApprox() *Approx {
	return &Approx{}
}

// Name returns the encoding name.
func (a *Approx) Name() string {
	return "approx"
}

// Count returns roughly 1.3 tokens per word plus one per two punctuation marks.
func (a *Approx) Count(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))
	punct := 0
	for _, r := range text {
		if unicode.IsPunct(r) {
			punct++
		}
	}
	return int(float64(words)*1.3) + punct/2
}
