package pdfs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signintech/gopdf"
)

// TemplateComposer stamps text onto page 1 of an existing PDF template.
// Exactly one TTF font is embedded. Each composer owns its own in-memory
// document, so independent composers may run concurrently.
type TemplateComposer struct {
	pdf   gopdf.GoPdf
	pageH float64
}

// NewTemplateComposer imports page 1 of template as the page background
// and registers fontData under fontFamily.
func NewTemplateComposer(template []byte, fontFamily string, fontData []byte, size PaperSize) (*TemplateComposer, error) {
	c := &TemplateComposer{pageH: size.Height}
	c.pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: size.Width, H: size.Height}})

	if err := c.pdf.AddTTFFontData(fontFamily, fontData); err != nil {
		return nil, fmt.Errorf("embedding font %s: %w", fontFamily, err)
	}

	c.pdf.AddPage()
	rs := io.ReadSeeker(bytes.NewReader(template))
	tpl := c.pdf.ImportPageStream(&rs, 1, "/MediaBox")
	if tpl <= 0 {
		return nil, fmt.Errorf("importing template page: not a usable PDF page")
	}
	c.pdf.UseImportedTemplate(tpl, 0, 0, size.Width, size.Height)

	return c, nil
}

func (c *TemplateComposer) SetFont(family string, style string, size float64) error {
	return c.pdf.SetFont(family, style, size)
}

// Text writes at (x, y) with y measured from the bottom of the page;
// gopdf counts from the top, so the coordinate is flipped here.
func (c *TemplateComposer) Text(x float64, y float64, text string) error {
	c.pdf.SetXY(x, c.pageH-y)
	return c.pdf.Cell(nil, text)
}

func (c *TemplateComposer) ProduceBytes() ([]byte, error) {
	return c.pdf.GetBytesPdfReturnErr()
}
