package docgen

import (
	"strconv"
	"strings"

	"backend/internal/pdfs"

	"github.com/shopspring/decimal"
)

// Layout budgets fixed by the template artwork. Measured against the
// printed boxes, not derived.
const (
	partyAddressLines = 4
	partyAddressWidth = 38
	termsLineWidth    = 34
	termsTextLines    = 3
	termsTextWidth    = 88
	// The amount-in-words box must hold the longest amount AmountInWords
	// accepts: 99,999,999,999,999.99 spells to 158 characters, and greedy
	// wrapping at 64 never needs more than three lines for it.
	wordsLines     = 3
	wordsLineWidth = 64

	subLineOffset  = 9 // sub-description baseline below the description
	unitLineOffset = 9 // unit printed on the line beneath quantity
	termsLineStep  = 10

	dateLayout = "02-01-2006"
)

// Assembler writes one order projection into a composer seeded with the
// template page. Rows advance by the fixed table row height regardless of
// content; overflow past the row budget is rejected upstream by the
// pipeline before an Assembler ever sees the order.
type Assembler struct {
	comp   pdfs.Composer
	layout *TemplateLayout
	family string
}

func NewAssembler(comp pdfs.Composer, layout *TemplateLayout, fontFamily string) *Assembler {
	return &Assembler{comp: comp, layout: layout, family: fontFamily}
}

// Assemble writes every field and serializes the finished document. On
// any failure the partial in-memory document is discarded with the
// composer; no bytes are returned.
func (a *Assembler) Assemble(p *Projection, tax Breakdown) ([]byte, error) {
	if err := a.writeHeader(p); err != nil {
		return nil, err
	}
	if err := a.writeParty(a.layout.Anchor(FieldSupplierBlock), p.Supplier); err != nil {
		return nil, err
	}
	if p.FreightParty != nil {
		if err := a.writeParty(a.layout.Anchor(FieldFreightBlock), p.FreightParty); err != nil {
			return nil, err
		}
	}
	if err := a.writeItems(p); err != nil {
		return nil, err
	}
	if err := a.writeTotals(tax); err != nil {
		return nil, err
	}
	return a.comp.ProduceBytes()
}

func (a *Assembler) writeHeader(p *Projection) error {
	if err := a.write(a.layout.Anchor(FieldPONumber), p.PONumber); err != nil {
		return err
	}
	if err := a.write(a.layout.Anchor(FieldPODate), p.PODate.Format(dateLayout)); err != nil {
		return err
	}
	if err := a.write(a.layout.Anchor(FieldCurrency), p.Currency); err != nil {
		return err
	}
	if err := a.writeStack(a.layout.Anchor(FieldPaymentTerms), WrapTwoLines(p.PaymentTerms, termsLineWidth), termsLineStep); err != nil {
		return err
	}
	if err := a.writeStack(a.layout.Anchor(FieldDeliveryTerms), WrapTwoLines(p.DeliveryTerms, termsLineWidth), termsLineStep); err != nil {
		return err
	}
	return a.writeStack(a.layout.Anchor(FieldTermsText), WrapChunks(p.TermsText, termsTextLines, termsTextWidth), termsLineStep)
}

// writeParty prints a name line, the wrapped address (country appended as
// a final chunk), then the tax-ID line when present. Block-internal
// spacing uses the variant's party line height.
func (a *Assembler) writeParty(anchor Anchor, party *Party) error {
	if err := a.write(anchor, party.Name); err != nil {
		return err
	}

	address := party.Address
	if party.Country != "" {
		address += ", " + party.Country
	}
	lines := WrapChunks(address, partyAddressLines, partyAddressWidth)
	y := anchor.Y
	for _, line := range lines {
		y -= a.layout.PartyLineHeight
		if err := a.writeAt(anchor.X, y, anchor.Size, line); err != nil {
			return err
		}
	}

	if party.TaxID != "" {
		y -= a.layout.PartyLineHeight
		return a.writeAt(anchor.X, y, anchor.Size, "GSTIN: "+party.TaxID)
	}
	return nil
}

func (a *Assembler) writeItems(p *Projection) error {
	t := a.layout.Table
	for i, it := range p.Items {
		y := t.RowY(i)

		if err := a.writeAt(t.Cols.Seq, y, t.FontSize, strconv.Itoa(i+1)); err != nil {
			return err
		}
		if err := a.writeAt(t.Cols.Description, y, t.FontSize, it.Description); err != nil {
			return err
		}
		if it.SubDescription != "" {
			if err := a.writeAt(t.Cols.Description, y-subLineOffset, t.SubSize, it.SubDescription); err != nil {
				return err
			}
		}

		// charge rows carry no goods classification or measurable quantity
		if it.Kind != ItemCharge {
			if err := a.writeAt(t.Cols.HSN, y, t.FontSize, it.HSNCode); err != nil {
				return err
			}
			if err := a.writeAt(t.Cols.Quantity, y, t.FontSize, it.Quantity.String()); err != nil {
				return err
			}
			if err := a.writeAt(t.Cols.Quantity, y-unitLineOffset, t.SubSize, it.Unit); err != nil {
				return err
			}
		}

		if err := a.writeAt(t.Cols.Rate, y, t.FontSize, formatMoney(it.Rate)); err != nil {
			return err
		}
		if err := a.writeAt(t.Cols.Amount, y, t.FontSize, formatMoney(it.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) writeTotals(tax Breakdown) error {
	amountX := a.layout.Table.Cols.Amount

	if err := a.write(a.layout.Anchor(FieldSubtotal), formatMoney(tax.Subtotal)); err != nil {
		return err
	}

	block := a.layout.Anchor(FieldTaxBlock)
	line := 0
	writeTaxLine := func(label string, amount decimal.Decimal) error {
		y := block.Y - float64(line)*a.layout.TaxLineHeight
		line++
		if err := a.writeAt(block.X, y, block.Size, label); err != nil {
			return err
		}
		return a.writeAt(amountX, y, block.Size, formatMoney(amount))
	}

	switch tax.Kind {
	case BreakdownSplit:
		for _, b := range tax.Buckets {
			if err := writeTaxLine("SGST "+b.Rate.String()+"%", b.Amount); err != nil {
				return err
			}
		}
		for _, b := range tax.Buckets {
			if err := writeTaxLine("CGST "+b.Rate.String()+"%", b.Amount); err != nil {
				return err
			}
		}
	default:
		for _, b := range tax.Buckets {
			if err := writeTaxLine("IGST "+b.Rate.String()+"%", b.Amount); err != nil {
				return err
			}
		}
	}

	adj := a.layout.Anchor(FieldAdjustment)
	if err := a.writeAt(block.X, adj.Y, adj.Size, "Adjustment"); err != nil {
		return err
	}
	if err := a.write(adj, formatSigned(tax.Adjustment)); err != nil {
		return err
	}

	if err := a.write(a.layout.Anchor(FieldGrandTotal), formatMoney(tax.GrandTotal)); err != nil {
		return err
	}

	words, err := AmountInWords(tax.GrandTotal)
	if err != nil {
		return err
	}
	return a.writeStack(a.layout.Anchor(FieldAmountWords), WrapChunks(words, wordsLines, wordsLineWidth), a.layout.PartyLineHeight)
}

// write stamps text at an anchor; empty strings stamp nothing.
func (a *Assembler) write(anchor Anchor, text string) error {
	return a.writeAt(anchor.X, anchor.Y, anchor.Size, text)
}

func (a *Assembler) writeAt(x, y, size float64, text string) error {
	if text == "" {
		return nil
	}
	if err := a.comp.SetFont(a.family, "", size); err != nil {
		return err
	}
	return a.comp.Text(x, y, text)
}

// writeStack stamps wrapped lines downward from an anchor with a fixed
// step between baselines.
func (a *Assembler) writeStack(anchor Anchor, lines []string, step float64) error {
	for i, line := range lines {
		if err := a.writeAt(anchor.X, anchor.Y-float64(i)*step, anchor.Size, line); err != nil {
			return err
		}
	}
	return nil
}

// formatMoney renders a 2-decimal amount with comma thousands grouping.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatSigned always shows the sign, matching the adjustment row on the
// printed form.
func formatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return formatMoney(d)
	}
	return "+" + formatMoney(d)
}
