package docgen_test

import (
	"strings"
	"testing"

	"backend/internal/docgen"

	"github.com/shopspring/decimal"
)

func assembleSample(t *testing.T, p *docgen.Projection, intra bool) *fakeComposer {
	t.Helper()
	layout, ok := docgen.LayoutFor(p.Entity)
	if !ok {
		t.Fatalf("no layout for %s", p.Entity)
	}
	tax := docgen.ComputeTax(p.Items, intra, docgen.DefaultTaxRate, p.Adjustment)
	comp := &fakeComposer{}
	if _, err := docgen.NewAssembler(comp, layout, "noto").Assemble(p, tax); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return comp
}

func TestAssembleWritesHeaderFieldsAtAnchors(t *testing.T) {
	p := sampleProjection()
	comp := assembleSample(t, p, false)

	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	po, ok := comp.find("MM/042/25-26")
	if !ok {
		t.Fatal("PO number not stamped")
	}
	want := layout.Anchor(docgen.FieldPONumber)
	if po.X != want.X || po.Y != want.Y || po.Size != want.Size {
		t.Errorf("PO number at (%v, %v, %v), want %+v", po.X, po.Y, po.Size, want)
	}

	if !comp.contains("14-08-2025") {
		t.Error("PO date not stamped in dd-mm-yyyy form")
	}
	if !comp.contains("INR") {
		t.Error("currency not stamped")
	}
}

func TestAssembleWritesPartyBlock(t *testing.T) {
	comp := assembleSample(t, sampleProjection(), false)

	if !comp.contains("Shree Polymers Pvt Ltd") {
		t.Error("supplier name not stamped")
	}
	if !comp.contains("GSTIN: 29AABCS1429B1ZP") {
		t.Error("supplier tax-ID line not stamped")
	}
	// address lines sit below the name with fixed spacing
	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	block := layout.Anchor(docgen.FieldSupplierBlock)
	first, ok := comp.find("Plot 12, KIADB Industrial Area")
	if !ok {
		t.Fatal("first address line not stamped")
	}
	if got, want := first.Y, block.Y-layout.PartyLineHeight; got != want {
		t.Errorf("first address line at y=%v, want %v", got, want)
	}
}

func TestAssembleItemRows(t *testing.T) {
	p := sampleProjection()
	p.Items = append(p.Items, docgen.Item{
		Kind:           docgen.ItemPhysical,
		Description:    "LLDPE Granules 36RA045",
		SubDescription: "Film grade, MFI 4.5",
		HSNCode:        "39014010",
		Quantity:       dec("50"),
		Unit:           "kg",
		Rate:           dec("102.00"),
		Amount:         dec("5100.00"),
		TaxRate:        dec("18"),
	})
	comp := assembleSample(t, p, false)

	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	tab := layout.Table

	seq2, ok := comp.find("2")
	if !ok {
		t.Fatal("row 2 sequence number not stamped")
	}
	if seq2.Y != tab.RowY(1) {
		t.Errorf("row 2 at y=%v, want %v", seq2.Y, tab.RowY(1))
	}

	sub, ok := comp.find("Film grade, MFI 4.5")
	if !ok {
		t.Fatal("sub-description not stamped")
	}
	if sub.Size != tab.SubSize {
		t.Errorf("sub-description size %v, want %v", sub.Size, tab.SubSize)
	}
	if sub.Y >= tab.RowY(1) {
		t.Error("sub-description not below its description line")
	}

	if !comp.contains("5,100.00") {
		t.Error("row amount not grouped with thousands commas")
	}
}

func TestAssembleChargeRowSuppressesGoodsColumns(t *testing.T) {
	p := sampleProjection()
	p.Items = append(p.Items, docgen.Item{
		Kind:        docgen.ItemCharge,
		Description: "Freight Charges",
		Quantity:    dec("1"),
		Unit:        "lot",
		HSNCode:     "996511",
		Rate:        dec("12000.00"),
		Amount:      dec("12000.00"),
		TaxRate:     dec("18"),
	})
	comp := assembleSample(t, p, false)

	if !comp.contains("Freight Charges") {
		t.Fatal("charge description not stamped")
	}
	// goods columns stay blank on the charge row even when populated
	if comp.contains("996511") {
		t.Error("charge row stamped an HSN code")
	}
	if comp.contains("lot") {
		t.Error("charge row stamped a unit")
	}
	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	for _, s := range comp.stamps {
		if s.Text == "1" && s.X == layout.Table.Cols.Quantity {
			t.Error("charge row stamped a quantity")
		}
	}
	if !comp.contains("12,000.00") {
		t.Error("charge amount missing")
	}
}

func TestAssembleTaxBlockInterState(t *testing.T) {
	comp := assembleSample(t, sampleProjection(), false)

	if !comp.contains("IGST 18%") {
		t.Error("IGST line missing")
	}
	if comp.containsPrefix("SGST") || comp.containsPrefix("CGST") {
		t.Error("split lines present on an inter-state document")
	}
	if !comp.contains("796,516.20") {
		t.Error("IGST amount missing")
	}
	if !comp.contains("4,425,090.00") {
		t.Error("subtotal missing")
	}
	if !comp.contains("5,221,606.20") {
		t.Error("grand total missing")
	}
}

func TestAssembleTaxBlockIntraState(t *testing.T) {
	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	comp := assembleSample(t, sampleProjection(), true)

	sgst, ok := comp.find("SGST 9%")
	if !ok {
		t.Fatal("SGST line missing")
	}
	cgst, ok := comp.find("CGST 9%")
	if !ok {
		t.Fatal("CGST line missing")
	}
	if comp.containsPrefix("IGST") {
		t.Error("IGST line present on an intra-state document")
	}
	// stacked with the fixed tax line offset
	if got, want := sgst.Y-cgst.Y, layout.TaxLineHeight; got != want {
		t.Errorf("tax line spacing %v, want %v", got, want)
	}
}

func TestAssembleAdjustmentAndWords(t *testing.T) {
	p := sampleProjection()
	p.Adjustment = dec("-90.20")
	comp := assembleSample(t, p, false)

	if !comp.contains("-90.20") {
		t.Error("signed adjustment missing")
	}
	if !comp.contains("Adjustment") {
		t.Error("adjustment label missing")
	}
	// grand total 5221516.00; its words must appear, wrapped
	words, err := docgen.AmountInWords(decimal.RequireFromString("5221516"))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range docgen.WrapChunks(words, 3, 64) {
		if !comp.contains(line) {
			t.Errorf("amount-in-words line %q missing", line)
		}
	}
}

// The words box must survive the largest amount the speller accepts:
// 99,999,999,999,999.99 spells to 158 characters and every character has
// to reach the page.
func TestAssembleLongestAmountInWordsComplete(t *testing.T) {
	layout, _ := docgen.LayoutFor(docgen.EntityUnitI)
	grand := dec("99999999999999.99")
	tax := docgen.Breakdown{
		Kind:       docgen.BreakdownSingle,
		Buckets:    []docgen.RateBucket{{Rate: dec("18"), Amount: dec("0.00")}},
		Subtotal:   grand,
		TaxTotal:   dec("0"),
		Adjustment: decimal.Zero,
		GrandTotal: grand,
	}

	comp := &fakeComposer{}
	if _, err := docgen.NewAssembler(comp, layout, "noto").Assemble(sampleProjection(), tax); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	words, err := docgen.AmountInWords(grand)
	if err != nil {
		t.Fatal(err)
	}
	lines := docgen.WrapChunks(words, 3, 64)
	if got := strings.Join(lines, " "); got != words {
		t.Fatalf("wrapping lost content: %q", got)
	}

	terms := layout.Anchor(docgen.FieldTermsText)
	for _, line := range lines {
		stamp, ok := comp.find(line)
		if !ok {
			t.Fatalf("amount-in-words line %q missing", line)
		}
		if stamp.Y <= terms.Y {
			t.Errorf("words line %q at y=%v runs into the terms block at %v", line, stamp.Y, terms.Y)
		}
	}
}

func TestAssemblePositiveAdjustmentShowsSign(t *testing.T) {
	p := sampleProjection()
	p.Adjustment = dec("150")
	comp := assembleSample(t, p, false)
	if !comp.contains("+150.00") {
		t.Error("positive adjustment not stamped with explicit sign")
	}
}
