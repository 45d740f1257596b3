package layout

import "strings"

// sameLineDistance is the largest gap between one element's bottom-right
// corner and the next element's bottom-left corner that still reads as
// one run of text.
const sameLineDistance = 3.0

// Page identifies the page an element was found on.
type Page struct {
	// Number is 1-based.
	Number int
	Width  float64
	Height float64
}

// FontWeight is the CSS-style weight of a font, 100 to 900.
type FontWeight int

// Common weights.
const (
	FontWeightLight  FontWeight = 300
	FontWeightNormal FontWeight = 400
	FontWeightBold   FontWeight = 700
)

// WeightFromFontName infers a weight from a PostScript font name such as
// "Helvetica-Bold" or "OpenSans-Light".
func WeightFromFontName(name string) FontWeight {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "black"), strings.Contains(lower, "heavy"):
		return 900
	case strings.Contains(lower, "semibold"), strings.Contains(lower, "demi"):
		return 600
	case strings.Contains(lower, "bold"):
		return FontWeightBold
	case strings.Contains(lower, "medium"):
		return 500
	case strings.Contains(lower, "light"):
		return FontWeightLight
	case strings.Contains(lower, "thin"):
		return 100
	default:
		return FontWeightNormal
	}
}

// TextElement is a run of text sharing one font.
type TextElement struct {
	Text       string
	Bounds     Rect
	Page       Page
	FontName   string
	FontSize   float64
	FontWeight FontWeight
}

// SameStyle reports whether both elements use the same font name, size and weight.
func (e TextElement) SameStyle(o TextElement) bool {
	return e.FontName == o.FontName && e.FontSize == o.FontSize && e.FontWeight == o.FontWeight
}

// SameLine reports whether o starts where e ends.
func (e TextElement) SameLine(o TextElement) bool {
	return e.Bounds.BottomRight().Distance(o.Bounds.BottomLeft()) < sameLineDistance
}

// Merge appends o's text to e and grows e's bounds to cover o.
func (e *TextElement) Merge(o TextElement) {
	e.Text += o.Text
	e.Bounds = Union(e.Bounds, o.Bounds)
}

// mergeSameStyle folds consecutive elements that share a style,
// regardless of where they sit.
func mergeSameStyle(elements []TextElement) []TextElement {
	var out []TextElement
	for _, el := range elements {
		if n := len(out); n > 0 && out[n-1].SameStyle(el) {
			out[n-1].Merge(el)
			continue
		}
		out = append(out, el)
	}
	return out
}
