package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyser_HeadingThenParagraphs(t *testing.T) {
	elements := []TextElement{
		el("Introduction", 50, 700, 90, 16),
		el("The quick brown fox jumps over the lazy dog", 50, 680, 300, 11),
		el("and then it runs away into the forest", 50, 668, 250, 11),
		el("Another paragraph begins right here with words", 50, 640, 300, 11),
	}

	groups := NewAnalyser().Analyse(elements)

	require.Len(t, groups, 3)
	assert.Equal(t, KindHeading, groups[0].Kind)
	assert.Equal(t, "Introduction", groups[0].Text())

	assert.Equal(t, KindParagraph, groups[1].Kind)
	require.Len(t, groups[1].Lines, 1, "paragraph lines are flattened")
	require.Len(t, groups[1].Lines[0].Elements, 1, "same-style elements are re-coalesced")
	assert.Equal(t, "The quick brown fox jumps over the lazy dogand then it runs away into the forest", groups[1].Text())

	assert.Equal(t, KindParagraph, groups[2].Kind)
}

func TestAnalyser_Empty(t *testing.T) {
	assert.Empty(t, NewAnalyser().Analyse(nil))
}

func TestAnalyser_PageNumber(t *testing.T) {
	groups := NewAnalyser().Analyse([]TextElement{el("Page 3", 280, 40, 30, 9)})

	require.Len(t, groups, 1)
	assert.Equal(t, KindPageNumber, groups[0].Kind)
}

func TestAnalyser_BulletListResplit(t *testing.T) {
	elements := []TextElement{
		el("• First item that wraps", 50, 500, 120, 11),
		el("onto a second line", 60, 488, 90, 11),
		el("• Second item", 50, 476, 70, 11),
	}

	groups := NewAnalyser().Analyse(elements)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, KindBulletList, g.Kind)
	require.Len(t, g.Lines, 2)
	assert.Equal(t, "• First item that wrapsonto a second line", g.Lines[0].Text())
	assert.Equal(t, "• Second item", g.Lines[1].Text())
}

func TestAnalyser_ReferenceList(t *testing.T) {
	elements := []TextElement{
		el("[1] Knuth, The Art of Programming", 50, 500, 160, 10),
		el("[2] Dijkstra, Notes on Structured", 50, 488, 160, 10),
		el("Programming", 50, 476, 60, 10),
	}

	groups := NewAnalyser().Analyse(elements)

	require.Len(t, groups, 1)
	assert.Equal(t, KindReferenceList, groups[0].Kind)
	require.Len(t, groups[0].Lines, 2)
	assert.Equal(t, "[2] Dijkstra, Notes on StructuredProgramming", groups[0].Lines[1].Text())
}

func TestAnalyser_HeadingNeedsFollowingParagraphSize(t *testing.T) {
	// the large line is last, so it has no following group
	elements := []TextElement{
		el("Some body text that is long enough", 50, 700, 200, 11),
		el("Closing Title", 50, 600, 90, 16),
	}

	groups := NewAnalyser().Analyse(elements)

	require.Len(t, groups, 2)
	assert.NotEqual(t, KindHeading, groups[1].Kind)
}

func TestAnalyser_TabularTextIsNone(t *testing.T) {
	elements := []TextElement{
		el("Name", 50, 500, 20, 10),
		el("Qty", 200, 500, 15, 10),
		el("Price", 350, 500, 25, 10),
	}

	groups := NewAnalyser().Analyse(elements)

	require.Len(t, groups, 1)
	assert.Equal(t, KindNone, groups[0].Kind)
	require.Len(t, groups[0].Lines, 1)
	assert.Len(t, groups[0].Lines[0].Elements, 3)
}

func TestGroupKind_String(t *testing.T) {
	assert.Equal(t, "heading", KindHeading.String())
	assert.Equal(t, "page_number", KindPageNumber.String())
	assert.Equal(t, "none", KindNone.String())
}
