package layout

var testPage = Page{Number: 1, Width: 600, Height: 800}

// el builds an element whose baseline sits at y.
func el(text string, x, y, width, size float64) TextElement {
	return TextElement{
		Text:       text,
		Bounds:     Rect{X1: x, Y1: y + size, X2: x + width, Y2: y},
		Page:       testPage,
		FontName:   "Helvetica",
		FontSize:   size,
		FontWeight: FontWeightNormal,
	}
}
