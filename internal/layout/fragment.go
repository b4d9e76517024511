// Package layout analyzes positioned text fragments extracted from a PDF:
// it groups fragments into lines, profiles the document's font usage, and
// classifies lines as headings.
package layout

// Fragment is a positioned piece of text as emitted by the PDF reader.
// Coordinates are in PDF page space (origin bottom-left, Y grows upward),
// so fragments higher on the page have larger Y values.
type Fragment struct {
	Text     string
	Page     int // 1-based
	FontSize float64
	Bold     bool
	FontName string

	// Bounding box.
	X0, Y0, X1, Y1 float64
}

// Line is one visually distinct text row: adjacent fragments on the same
// page sharing a baseline band, merged in reading order.
type Line struct {
	Text     string
	Page     int
	FontSize float64 // dominant size, weighted by character count
	Bold     bool    // dominant boldness
	Y        float64 // baseline Y coordinate
	X0       float64 // left edge (indent)
	Chars    int     // rune count of Text
}
