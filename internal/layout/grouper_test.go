package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupElements(t *testing.T) {
	elements := []TextElement{
		el("Hel", 0, 100, 15, 11),
		el("lo", 15, 100, 10, 11),
		el("", 200, 100, 0, 12),
		el("World", 0, 80, 25, 11),
	}

	got := GroupElements(elements)

	require.Len(t, got, 2)
	assert.Equal(t, "Hello", got[0].Text)
	assert.Equal(t, "World", got[1].Text)
}

func TestGroupElements_StyleChangeStartsNewElement(t *testing.T) {
	bold := el("Bold", 15, 100, 20, 11)
	bold.FontWeight = FontWeightBold

	got := GroupElements([]TextElement{el("Plain", 0, 100, 15, 11), bold})

	assert.Len(t, got, 2)
}

func TestGroupLines(t *testing.T) {
	elements := []TextElement{
		el("Name", 0, 100, 20, 10),
		el("Value", 40, 100, 25, 10),
		el("Next line", 0, 85, 45, 10),
	}

	lines := GroupLines(elements)

	require.Len(t, lines, 2)
	assert.Len(t, lines[0].Elements, 2)
	assert.Equal(t, "Next line", lines[1].Text())
}

func TestGroupLines_Empty(t *testing.T) {
	assert.Empty(t, GroupLines(nil))
}

func TestGroupBlocks(t *testing.T) {
	lines := []TextLine{
		{Elements: []TextElement{el("one", 0, 100, 15, 10)}},
		{Elements: []TextElement{el("two", 0, 89, 15, 10)}},   // gap 1
		{Elements: []TextElement{el("three", 0, 70, 25, 10)}}, // gap 9
	}

	groups := GroupBlocks(lines)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Lines, 2)
	assert.Len(t, groups[1].Lines, 1)
	assert.Equal(t, KindNone, groups[1].Kind)
}

func TestGroupBlocks_ThresholdIsInclusive(t *testing.T) {
	lines := []TextLine{
		{Elements: []TextElement{el("one", 0, 100, 15, 10)}},
		{Elements: []TextElement{el("two", 0, 85, 15, 10)}}, // gap exactly 5
	}

	assert.Len(t, GroupBlocks(lines), 2)
}

func TestTextElementGroup_Metrics(t *testing.T) {
	g := TextElementGroup{Lines: []TextLine{
		{Elements: []TextElement{el("alpha beta", 0, 100, 50, 11)}},
		{Elements: []TextElement{el("gamma", 0, 87, 25, 11)}},
	}}

	assert.Equal(t, "alpha beta\ngamma", g.Text())
	assert.Equal(t, 2, g.LineCount())
	assert.Equal(t, 2, g.ElementCount())
	assert.Equal(t, 11.0, g.FontSize())
	// (100 - 98) / 2
	assert.Equal(t, 1.0, g.LineDistanceMean())
	assert.Equal(t, Rect{X1: 0, Y1: 111, X2: 50, Y2: 87}, g.Bounds())
}
