// Package pdf parses PDF files into documents.
//
// Text runs are decoded by a PDFEngine, classified by the layout analyser
// and folded into nodes whose positions describe the rendered text.
package pdf
