package docgen

import "fmt"

// Template variants, one per issuing entity.
const (
	EntityUnitI  = "UNIT_I"
	EntityUnitII = "UNIT_II"
)

// Logical field names. The anchor tables enumerate all of them for both
// template variants; asking for anything else is a programming error.
const (
	FieldPONumber      = "po_number"
	FieldPODate        = "po_date"
	FieldCurrency      = "currency"
	FieldPaymentTerms  = "payment_terms"
	FieldDeliveryTerms = "delivery_terms"
	FieldTermsText     = "terms_text"
	FieldSupplierBlock = "supplier_block"
	FieldFreightBlock  = "freight_block"
	FieldSubtotal      = "subtotal"
	FieldTaxBlock      = "tax_block"
	FieldAdjustment    = "adjustment"
	FieldGrandTotal    = "grand_total"
	FieldAmountWords   = "amount_words"
)

// Anchor is a fixed coordinate plus font size, in PDF points with the
// origin at the bottom-left of the page.
type Anchor struct {
	X, Y, Size float64
}

// ItemColumns holds the x offset of each line-item column.
type ItemColumns struct {
	Seq         float64
	Description float64
	HSN         float64
	Quantity    float64
	Rate        float64
	Amount      float64
}

// ItemTable describes the line-item grid: one header position plus fixed
// row geometry, from which every cell is derived arithmetically instead
// of being stored per row.
type ItemTable struct {
	HeaderY   float64
	RowHeight float64
	Cols      ItemColumns
	FontSize  float64
	SubSize   float64 // secondary-description sub-line
	MaxRows   int     // rows that fit above the totals block
	DescChars int     // description characters before the HSN column
	SubChars  int     // sub-description characters at the smaller size
}

// RowY returns the baseline of data row i (0-based); the first data row
// sits one row step below the header.
func (t ItemTable) RowY(i int) float64 {
	return t.HeaderY - float64(i+1)*t.RowHeight
}

// TemplateLayout is the immutable anchor table of one template variant.
// Tables are package constants shared read-only across renders.
type TemplateLayout struct {
	Entity          string
	IssuerStateCode string // GSTIN state-code prefix of the issuing entity
	PartyLineHeight float64
	TaxLineHeight   float64
	MaxTaxLines     int // tax lines that fit between the tax block and the adjustment row
	Table           ItemTable

	fields map[string]Anchor
}

// Anchor resolves a logical field name. The tables are exhaustive at
// build time, so a miss is a bug in the caller, not a runtime condition.
func (l *TemplateLayout) Anchor(field string) Anchor {
	a, ok := l.fields[field]
	if !ok {
		panic(fmt.Sprintf("docgen: no anchor for field %q in template %s", field, l.Entity))
	}
	return a
}

// LayoutFor returns the layout of an issuing entity's template, or false
// for an unknown entity (entity comes from order data, so this one is a
// validation concern rather than a panic).
func LayoutFor(entity string) (*TemplateLayout, bool) {
	l, ok := layouts[entity]
	return l, ok
}

var layouts = map[string]*TemplateLayout{
	EntityUnitI: {
		Entity:          EntityUnitI,
		IssuerStateCode: "27",
		PartyLineHeight: 12,
		TaxLineHeight:   14,
		MaxTaxLines:     6, // (236-152)/14
		Table: ItemTable{
			HeaderY:   536,
			RowHeight: 26,
			Cols:      ItemColumns{Seq: 48, Description: 72, HSN: 268, Quantity: 330, Rate: 408, Amount: 486},
			FontSize:  9,
			SubSize:   7,
			MaxRows:   10,
			DescChars: 42, // 196pt column at size 9
			SubChars:  54,
		},
		fields: map[string]Anchor{
			FieldPONumber:      {X: 452, Y: 756, Size: 10},
			FieldPODate:        {X: 452, Y: 738, Size: 10},
			FieldCurrency:      {X: 452, Y: 720, Size: 10},
			FieldSupplierBlock: {X: 58, Y: 742, Size: 9},
			FieldFreightBlock:  {X: 58, Y: 652, Size: 9},
			FieldPaymentTerms:  {X: 58, Y: 596, Size: 8},
			FieldDeliveryTerms: {X: 300, Y: 596, Size: 8},
			FieldSubtotal:      {X: 486, Y: 252, Size: 9},
			FieldTaxBlock:      {X: 336, Y: 236, Size: 9},
			FieldAdjustment:    {X: 486, Y: 152, Size: 9},
			FieldGrandTotal:    {X: 486, Y: 134, Size: 10},
			FieldAmountWords:   {X: 58, Y: 110, Size: 9},
			FieldTermsText:     {X: 58, Y: 78, Size: 7},
		},
	},
	EntityUnitII: {
		Entity:          EntityUnitII,
		IssuerStateCode: "24",
		PartyLineHeight: 11,
		TaxLineHeight:   13,
		MaxTaxLines:     6, // (228-148)/13
		Table: ItemTable{
			HeaderY:   520,
			RowHeight: 24,
			Cols:      ItemColumns{Seq: 52, Description: 78, HSN: 262, Quantity: 324, Rate: 402, Amount: 480},
			FontSize:  9,
			SubSize:   7,
			MaxRows:   11,
			DescChars: 40, // 184pt column at size 9
			SubChars:  52,
		},
		fields: map[string]Anchor{
			FieldPONumber:      {X: 446, Y: 770, Size: 10},
			FieldPODate:        {X: 446, Y: 752, Size: 10},
			FieldCurrency:      {X: 446, Y: 734, Size: 10},
			FieldSupplierBlock: {X: 62, Y: 756, Size: 9},
			FieldFreightBlock:  {X: 62, Y: 664, Size: 9},
			FieldPaymentTerms:  {X: 62, Y: 584, Size: 8},
			FieldDeliveryTerms: {X: 306, Y: 584, Size: 8},
			FieldSubtotal:      {X: 480, Y: 244, Size: 9},
			FieldTaxBlock:      {X: 330, Y: 228, Size: 9},
			FieldAdjustment:    {X: 480, Y: 148, Size: 9},
			FieldGrandTotal:    {X: 480, Y: 130, Size: 10},
			FieldAmountWords:   {X: 62, Y: 106, Size: 9},
			FieldTermsText:     {X: 62, Y: 74, Size: 7},
		},
	},
}
