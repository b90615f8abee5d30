package docgen

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/pdfs"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate backs the legacy fallback in ComputeTax for orders with
// no per-line tax data.
var DefaultTaxRate = decimal.NewFromInt(18)

// TemplateSource supplies the raw template and font bytes. Satisfied by
// pdfs.TemplateStore.
type TemplateSource interface {
	Template(variant string) ([]byte, error)
	Font() (family string, data []byte)
}

// ComposerFactory opens a composer over template bytes. Swappable so
// tests can capture writes instead of producing real PDFs.
type ComposerFactory func(template []byte, fontFamily string, fontData []byte) (pdfs.Composer, error)

// Engine is the render entry point. It is stateless between calls and
// safe for concurrent use: anchor tables are constants and every call
// gets its own composer over its own copy of the template.
type Engine struct {
	templates TemplateSource
	compose   ComposerFactory
}

func NewEngine(templates TemplateSource) *Engine {
	return NewEngineWithComposer(templates, func(template []byte, family string, font []byte) (pdfs.Composer, error) {
		return pdfs.NewTemplateComposer(template, family, font, pdfs.A4Size)
	})
}

// NewEngineWithComposer injects a composer backend.
func NewEngineWithComposer(templates TemplateSource, factory ComposerFactory) *Engine {
	return &Engine{templates: templates, compose: factory}
}

// Render validates the projection, computes the tax breakdown and fills a
// copy of the entity's template. The download payload and the preview URI
// both come from the single RenderedDocument, never from two renders.
// Assembly is all-or-nothing: any failure returns no bytes at all.
func (e *Engine) Render(ctx context.Context, p *Projection) (*RenderedDocument, error) {
	layout, err := validate(p)
	if err != nil {
		return nil, err
	}

	intra := sameJurisdiction(p.Supplier.TaxID, layout.IssuerStateCode)
	tax := ComputeTax(p.Items, intra, DefaultTaxRate, p.Adjustment)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	template, err := e.templates.Template(p.Entity)
	if err != nil {
		return nil, &TemplateLoadError{Variant: p.Entity, Err: err}
	}
	family, font := e.templates.Font()
	comp, err := e.compose(template, family, font)
	if err != nil {
		return nil, &TemplateLoadError{Variant: p.Entity, Err: err}
	}

	data, err := NewAssembler(comp, layout, family).Assemble(p, tax)
	if err != nil {
		return nil, err
	}

	return &RenderedDocument{
		Filename: documentFilename(p.PONumber),
		Data:     data,
	}, nil
}

// validate enforces the render preconditions so the assembler never sees
// an order it cannot place on the page.
func validate(p *Projection) (*TemplateLayout, error) {
	if p.Supplier == nil {
		return nil, &ValidationError{Reason: "order has no supplier"}
	}
	if len(p.Items) == 0 {
		return nil, &ValidationError{Reason: "order has no line items"}
	}
	if strings.TrimSpace(p.Currency) == "" {
		return nil, &ValidationError{Reason: "currency code is empty"}
	}

	layout, ok := LayoutFor(p.Entity)
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown issuing entity %q", p.Entity)}
	}

	charges := 0
	rates := map[string]struct{}{}
	for i, it := range p.Items {
		if it.Quantity.IsNegative() || it.Rate.IsNegative() {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d has a negative quantity or rate", i+1)}
		}
		if it.Kind == ItemCharge {
			charges++
		}
		// Rows keep a fixed height, so text that would wrap past the next
		// column is rejected rather than overprinted or silently cut.
		if n := len([]rune(it.Description)); n > layout.Table.DescChars {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d description is %d characters; the template fits %d", i+1, n, layout.Table.DescChars)}
		}
		if n := len([]rune(it.SubDescription)); n > layout.Table.SubChars {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d sub-description is %d characters; the template fits %d", i+1, n, layout.Table.SubChars)}
		}
		if it.TaxRate.IsPositive() {
			rates[it.TaxRate.String()] = struct{}{}
		}
	}
	if charges > 1 {
		return nil, &ValidationError{Reason: "order has more than one charge row"}
	}

	if len(p.Items) > layout.Table.MaxRows {
		return nil, &LayoutOverflowError{Rows: len(p.Items), MaxRows: layout.Table.MaxRows}
	}

	// The tax block is as fixed as the item grid: one line per rate bucket,
	// doubled when the intra-state split prints SGST and CGST legs.
	buckets := len(rates)
	if buckets == 0 {
		buckets = 1 // legacy fallback taxes the whole subtotal at one rate
	}
	taxLines := buckets
	if sameJurisdiction(p.Supplier.TaxID, layout.IssuerStateCode) {
		taxLines *= 2
	}
	if taxLines > layout.MaxTaxLines {
		return nil, &ValidationError{Reason: fmt.Sprintf("order needs %d tax lines but the template fits %d", taxLines, layout.MaxTaxLines)}
	}
	return layout, nil
}

// sameJurisdiction compares the GSTIN state-code prefix with the issuing
// entity's state code. An absent or malformed tax ID counts as a
// different jurisdiction.
func sameJurisdiction(taxID, issuerStateCode string) bool {
	return len(taxID) >= 2 && strings.EqualFold(taxID[:2], issuerStateCode)
}

func documentFilename(poNumber string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '-'
		}
		return r
	}, poNumber)
	return "PO_" + clean + ".pdf"
}
