package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// createTestPDF assembles a single-page PDF with a valid xref table.
// The media box lives on the page tree root so pages inherit it.
func createTestPDF(t *testing.T, text string) []byte {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Title (Test Doc) /Author (Jane) /CreationDate (D:20240102030405Z) >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestEngine_Extract(t *testing.T) {
	content, err := NewEngine().Extract(context.Background(), createTestPDF(t, "Hello World"))
	require.NoError(t, err)

	require.Len(t, content.Pages, 1)
	page := content.Pages[0]
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 612.0, page.Width)
	assert.Equal(t, 792.0, page.Height)

	var text strings.Builder
	for _, r := range page.Runs {
		text.WriteString(r.Text)
	}
	assert.Contains(t, text.String(), "Hello")

	assert.Equal(t, "Test Doc", content.Meta.Title)
	require.NotNil(t, content.Meta.Author)
	assert.Equal(t, "Jane", *content.Meta.Author)
	assert.NotNil(t, content.Meta.CreationDate)
}

func TestEngine_InvalidBytes(t *testing.T) {
	_, err := NewEngine().Extract(context.Background(), []byte("this is not a pdf"))
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Extract(ctx, createTestPDF(t, "Hello"))
	assert.ErrorIs(t, err, context.Canceled)
}
