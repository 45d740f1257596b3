package layout

import (
	"strings"

	"github.com/custodia-labs/folio/internal/logger"
)

// Classification thresholds.
const (
	maxHeadingLines        = 2
	minHeadingLength       = 3
	maxParagraphLineGap    = 3.0
	maxParagraphSpaceRatio = 1.5
	minParagraphWords      = 4
	maxParagraphMultiSpace = 2.0
	maxPageNumberSpaces    = 3
	maxPageNumberWords     = 3
)

// Analyser classifies blocks of text into semantic roles.
type Analyser struct{}

// NewAnalyser creates an analyser.
func NewAnalyser() *Analyser {
	return &Analyser{}
}

// analysis carries document-wide statistics through classification.
type analysis struct {
	paragraphSizes []float64
}

// Analyse groups elements into lines and blocks and classifies every block.
// Elements must be in reading order. Empty input yields no groups.
func (a *Analyser) Analyse(elements []TextElement) []TextElementGroup {
	lines := GroupLines(elements)
	groups := GroupBlocks(lines)
	if len(groups) == 0 {
		return nil
	}

	sizes := make([]float64, len(groups))
	for i, g := range groups {
		sizes[i] = g.FontSize()
	}
	state := analysis{paragraphSizes: paragraphFontSizes(sizes)}
	logger.Debug("layout: %d elements, %d lines, %d groups, paragraph sizes %v",
		len(elements), len(lines), len(groups), state.paragraphSizes)

	result := make([]TextElementGroup, 0, len(groups))
	for i, cur := range groups {
		var next *TextElementGroup
		if i+1 < len(groups) {
			next = &groups[i+1]
		}
		result = append(result, a.classify(cur, next, state))
	}
	return result
}

// classify applies the classifiers in precedence order; the first match wins.
func (a *Analyser) classify(g TextElementGroup, next *TextElementGroup, state analysis) TextElementGroup {
	switch {
	case isPageNumber(g):
		return TextElementGroup{Kind: KindPageNumber, Lines: g.Lines}
	case isBulletList(g):
		return resplit(TextElementGroup{Kind: KindBulletList, Lines: g.Lines}, startsWithBullet)
	case isReferenceList(g):
		return resplit(TextElementGroup{Kind: KindReferenceList, Lines: g.Lines}, startsWithReference)
	case next != nil && isHeading(g, *next, state):
		return TextElementGroup{Kind: KindHeading, Lines: g.Lines}
	case isParagraph(g, state):
		return flatten(TextElementGroup{Kind: KindParagraph, Lines: g.Lines})
	default:
		return TextElementGroup{Kind: KindNone, Lines: g.Lines}
	}
}

func isPageNumber(g TextElementGroup) bool {
	text := g.Text()
	if isASCII(text) {
		text = strings.ReplaceAll(strings.ToLower(text), "page", "")
	}
	return isNumeric(strings.TrimSpace(text)) &&
		g.LineCount() == 1 &&
		countSpace(text) < maxPageNumberSpaces &&
		countWord(text) < maxPageNumberWords
}

func isBulletList(g TextElementGroup) bool {
	text := g.Text()
	return startsWithBullet(text) && countWord(text) > 0
}

func isReferenceList(g TextElementGroup) bool {
	return startsWithReference(g.Text())
}

func isHeading(g, next TextElementGroup, state analysis) bool {
	text := g.Text()
	size, nextSize := g.FontSize(), next.FontSize()
	return containsSize(state.paragraphSizes, nextSize) &&
		size > nextSize &&
		g.LineCount() <= maxHeadingLines &&
		countWord(text) > 0 &&
		len(text) >= minHeadingLength
}

func isParagraph(g TextElementGroup, state analysis) bool {
	text := g.Text()
	size := g.FontSize()
	sizeOK := containsSize(state.paragraphSizes, size) || size < minSize(state.paragraphSizes, size)

	words := countWord(text)
	if words <= minParagraphWords {
		return false
	}

	rows := strings.Split(text, "\n")
	spaces := make([]float64, len(rows))
	multi := make([]float64, len(rows))
	for i, row := range rows {
		row = strings.TrimSpace(row)
		spaces[i] = float64(countSpace(row))
		multi[i] = float64(countMultiSpace(row))
	}

	return sizeOK &&
		g.LineDistanceMean() < maxParagraphLineGap &&
		mean(spaces)/float64(words) < maxParagraphSpaceRatio &&
		mean(multi) < maxParagraphMultiSpace
}

// resplit rebuilds a list group so each item is one line: a line that
// opens a new marker starts a new item, any other line continues the
// current one. Items are re-coalesced by style.
func resplit(g TextElementGroup, startsItem func(string) bool) TextElementGroup {
	var items []TextLine
	var buf []TextElement

	for _, line := range g.Lines {
		if startsItem(line.Text()) && len(buf) > 0 {
			items = append(items, TextLine{Elements: mergeSameStyle(buf)})
			buf = append([]TextElement(nil), line.Elements...)
			continue
		}
		buf = append(buf, line.Elements...)
	}
	if len(buf) > 0 {
		items = append(items, TextLine{Elements: mergeSameStyle(buf)})
	}
	return TextElementGroup{Kind: g.Kind, Lines: items}
}

// flatten joins every line of a paragraph into one line, since line
// breaks inside a paragraph are typographic.
func flatten(g TextElementGroup) TextElementGroup {
	var elements []TextElement
	for _, line := range g.Lines {
		elements = append(elements, line.Elements...)
	}
	return TextElementGroup{Kind: g.Kind, Lines: []TextLine{{Elements: mergeSameStyle(elements)}}}
}
