package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestApprox_Count(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"ten words", "one two three four five six seven eight nine ten", 13},
		{"punctuation", "Hello, world! How are you?", 6 + 1},
		{"whitespace only", "   \n\t", 0},
	}

	a := NewApprox()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Count(tt.text))
		})
	}
}

func TestApprox_GrowsWithText(t *testing.T) {
	a := NewApprox()
	base := "The quick brown fox"
	assert.GreaterOrEqual(t, a.Count(base+" jumps over the lazy dog"), a.Count(base))
}

func TestNew(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		tok, err := New("")
		require.NoError(t, err)
		assert.Equal(t, "approx", tok.Name())
	})

	t.Run("approx", func(t *testing.T) {
		tok, err := New(domain.TokenizerApprox)
		require.NoError(t, err)
		assert.IsType(t, &Approx{}, tok)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New("cl100k_base")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTiktoken_P50kBase(t *testing.T) {
	tok, err := New(domain.TokenizerP50kBase)
	if err != nil {
		t.Skipf("p50k_base ranks unavailable: %v", err)
	}

	assert.Equal(t, "p50k_base", tok.Name())
	assert.Equal(t, 0, tok.Count(""))
	assert.Equal(t, 2, tok.Count("hello world"))
}
