// Package layout reconstructs document structure from positioned text runs.
//
// Runs are merged into elements (same style, touching), elements into
// lines (overlapping a detection rectangle that extends to the right
// margin), and lines into groups (vertical gap below a threshold). The
// Analyser then classifies each group as a heading, paragraph, list,
// reference list or page number from font-size statistics and textual
// heuristics.
//
// All coordinates follow the PDF convention: y grows upward, so a
// rectangle's Y1 is its top and Y2 its bottom.
package layout
