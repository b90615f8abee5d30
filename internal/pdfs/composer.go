// Package pdfs wraps PDF production behind a small composer interface so
// the document engine never touches a PDF library directly.
package pdfs

// PaperSize in PDF points (1" = 72pt).
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var A4Size = PaperSize{Name: "A4", Width: 595.28, Height: 841.89} // 210mm x 297mm

// Composer is a single-page, append-only text stamper over an imported
// template page. Coordinates use the document convention: origin at the
// bottom-left of the page, y growing upward.
type Composer interface {
	SetFont(family string, style string, size float64) error
	Text(x float64, y float64, text string) error
	ProduceBytes() ([]byte, error)
}
