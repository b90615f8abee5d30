package docgen_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"backend/internal/docgen"
	"backend/internal/pdfs"
)

// fakeSource serves canned template bytes; loadErr simulates a fetch
// failure for every variant.
type fakeSource struct {
	loadErr error
}

func (s *fakeSource) Template(variant string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return []byte("%PDF-fake-" + variant), nil
}

func (s *fakeSource) Font() (string, []byte) {
	return "noto", nil
}

func newTestEngine(src docgen.TemplateSource) (*docgen.Engine, *[]*fakeComposer) {
	var composers []*fakeComposer
	engine := docgen.NewEngineWithComposer(src, func(_ []byte, _ string, _ []byte) (pdfs.Composer, error) {
		c := &fakeComposer{}
		composers = append(composers, c)
		return c, nil
	})
	return engine, &composers
}

func TestRenderValidation(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})

	cases := []struct {
		name   string
		mutate func(*docgen.Projection)
	}{
		{"missing supplier", func(p *docgen.Projection) { p.Supplier = nil }},
		{"no line items", func(p *docgen.Projection) { p.Items = nil }},
		{"empty currency", func(p *docgen.Projection) { p.Currency = "  " }},
		{"unknown entity", func(p *docgen.Projection) { p.Entity = "UNIT_IX" }},
		{"negative quantity", func(p *docgen.Projection) { p.Items[0].Quantity = dec("-1") }},
		{"two charge rows", func(p *docgen.Projection) {
			charge := docgen.Item{Kind: docgen.ItemCharge, Description: "Freight", Amount: dec("1")}
			p.Items = append(p.Items, charge, charge)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := sampleProjection()
			c.mutate(p)
			_, err := engine.Render(context.Background(), p)
			var verr *docgen.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestRenderRowBudgetOverflow(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})
	p := sampleProjection()
	layout, _ := docgen.LayoutFor(p.Entity)
	row := p.Items[0]
	for len(p.Items) <= layout.Table.MaxRows {
		p.Items = append(p.Items, row)
	}

	_, err := engine.Render(context.Background(), p)
	var oerr *docgen.LayoutOverflowError
	if !errors.As(err, &oerr) {
		t.Fatalf("err = %v, want LayoutOverflowError", err)
	}
	if oerr.MaxRows != layout.Table.MaxRows || oerr.Rows != len(p.Items) {
		t.Errorf("overflow detail %+v", oerr)
	}
}

func TestRenderDescriptionColumnBudget(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})
	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)

	t.Run("at the budget renders", func(t *testing.T) {
		p := sampleProjection()
		p.Items[0].Description = strings.Repeat("x", layout.Table.DescChars)
		if _, err := engine.Render(context.Background(), p); err != nil {
			t.Fatalf("Render: %v", err)
		}
	})

	t.Run("over the budget rejects", func(t *testing.T) {
		p := sampleProjection()
		p.Items[0].Description = strings.Repeat("x", layout.Table.DescChars+1)
		_, err := engine.Render(context.Background(), p)
		var verr *docgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("overlong sub-description rejects", func(t *testing.T) {
		p := sampleProjection()
		p.Items[0].SubDescription = strings.Repeat("x", layout.Table.SubChars+1)
		_, err := engine.Render(context.Background(), p)
		var verr *docgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

// Four distinct rates print four IGST lines inter-state but eight split
// legs intra-state, past the six line slots above the adjustment row.
func TestRenderTaxLineBudget(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})

	withRates := func(rates ...string) *docgen.Projection {
		p := sampleProjection()
		base := p.Items[0]
		for _, r := range rates {
			it := base
			it.TaxRate = dec(r)
			p.Items = append(p.Items, it)
		}
		return p
	}

	t.Run("four rates inter-state render", func(t *testing.T) {
		if _, err := engine.Render(context.Background(), withRates("5", "12", "28")); err != nil {
			t.Fatalf("Render: %v", err)
		}
	})

	t.Run("three rates intra-state fill the block exactly", func(t *testing.T) {
		p := withRates("5", "12")
		p.Supplier.TaxID = "27AABCS1429B1ZP"
		if _, err := engine.Render(context.Background(), p); err != nil {
			t.Fatalf("Render: %v", err)
		}
	})

	t.Run("four rates intra-state reject", func(t *testing.T) {
		p := withRates("5", "12", "28")
		p.Supplier.TaxID = "27AABCS1429B1ZP"
		_, err := engine.Render(context.Background(), p)
		var verr *docgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("seven rates inter-state reject", func(t *testing.T) {
		_, err := engine.Render(context.Background(), withRates("0.25", "1", "3", "5", "12", "28"))
		var verr *docgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

func TestRenderTemplateLoadFailure(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{loadErr: errors.New("object storage down")})

	_, err := engine.Render(context.Background(), sampleProjection())
	var terr *docgen.TemplateLoadError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TemplateLoadError", err)
	}
	if terr.Variant != docgen.EntityUnitI {
		t.Errorf("variant = %s", terr.Variant)
	}
}

func TestRenderCanceledContext(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Render(ctx, sampleProjection()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

// The worked reference order: 300 kg at 14750.30, 18% GST, Karnataka
// supplier against the Maharashtra issuer, no adjustment.
func TestRenderReferenceDocument(t *testing.T) {
	engine, composers := newTestEngine(&fakeSource{})

	doc, err := engine.Render(context.Background(), sampleProjection())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if doc.Filename != "PO_MM-042-25-26.pdf" {
		t.Errorf("filename = %s", doc.Filename)
	}
	if len(*composers) != 1 {
		t.Fatalf("render used %d composers, want 1", len(*composers))
	}
	comp := (*composers)[0]

	for _, want := range []string{"4,425,090.00", "IGST 18%", "796,516.20", "5,221,606.20"} {
		if !comp.contains(want) {
			t.Errorf("stamp %q missing", want)
		}
	}

	words, err := docgen.AmountInWords(dec("5221606.20"))
	if err != nil {
		t.Fatal(err)
	}
	var stamped []string
	for _, line := range docgen.WrapChunks(words, 3, 64) {
		if !comp.contains(line) {
			t.Errorf("amount-in-words line %q missing", line)
		}
		stamped = append(stamped, line)
	}
	if got := strings.Join(stamped, " "); got != words {
		t.Errorf("wrapped words %q lost content from %q", got, words)
	}
}

func TestRenderIntraStateSupplier(t *testing.T) {
	engine, composers := newTestEngine(&fakeSource{})
	p := sampleProjection()
	p.Supplier.TaxID = "27AABCS1429B1ZP" // same state as the UNIT_I issuer

	if _, err := engine.Render(context.Background(), p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	comp := (*composers)[0]
	if !comp.contains("SGST 9%") || !comp.contains("CGST 9%") {
		t.Error("intra-state supplier did not produce split tax lines")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})

	first, err := engine.Render(context.Background(), sampleProjection())
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Render(context.Background(), sampleProjection())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("two renders of the same projection differ")
	}
}

func TestRenderPreviewMatchesDownload(t *testing.T) {
	engine, _ := newTestEngine(&fakeSource{})
	doc, err := engine.Render(context.Background(), sampleProjection())
	if err != nil {
		t.Fatal(err)
	}

	uri := doc.DataURI()
	const prefix = "data:application/pdf;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected uri prefix: %.40s", uri)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decoding preview payload: %v", err)
	}
	if !bytes.Equal(decoded, doc.Data) {
		t.Error("preview not derived from the download bytes")
	}
}
