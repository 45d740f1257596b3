package domain

// TextRun is a positioned piece of text as decoded from a PDF content stream.
// Coordinates use the PDF convention: origin bottom-left, y grows upward.
type TextRun struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	FontName string
	FontSize float64
}

// PageContent is the text runs of one page in content-stream order.
type PageContent struct {
	// Number is 1-based.
	Number int
	Width  float64
	Height float64
	Runs   []TextRun
}

// PDFContent is everything the parser needs from a PDF container.
type PDFContent struct {
	Meta  DocumentMeta
	Pages []PageContent
}
