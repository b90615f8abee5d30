package docgen

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BreakdownKind selects the GST presentation of a document.
type BreakdownKind string

const (
	// BreakdownSplit is the intra-state form: every bucket prints twice,
	// once as SGST and once as CGST, each at half the line tax rate.
	BreakdownSplit BreakdownKind = "SPLIT"
	// BreakdownSingle is the inter-state form: one IGST bucket per rate.
	BreakdownSingle BreakdownKind = "SINGLE"
)

// RateBucket accumulates tax for one distinct rate. For BreakdownSplit
// the rate is the half rate and Amount is the per-leg amount (the SGST
// line and the CGST line each show it once).
type RateBucket struct {
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Breakdown is the computed tax summary of one render call. It is
// derived, never persisted.
type Breakdown struct {
	Kind       BreakdownKind
	Buckets    []RateBucket // ascending by rate
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Adjustment decimal.Decimal
	GrandTotal decimal.Decimal
}

var (
	decTwo     = decimal.NewFromInt(2)
	decHundred = decimal.NewFromInt(100)
)

// ComputeTax groups per-line GST into rate buckets and totals the order.
//
// Each line's contribution is rounded to 2 decimals on its own BEFORE
// accumulation. That matches per-line tax disclosure on the printed
// document, so two lines at the same rate can differ by a paisa from
// taxing their sum once. Do not "fix" this by rounding once at the end.
//
// When no line carries a tax rate the whole subtotal is taxed at
// defaultRate through the same split/single logic. This is a
// compatibility shim for order records predating per-line tax data; new
// orders always carry line rates.
func ComputeTax(items []Item, intraState bool, defaultRate, adjustment decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}

	taxed := make([]Item, 0, len(items))
	for _, it := range items {
		if it.TaxRate.IsPositive() {
			taxed = append(taxed, it)
		}
	}
	if len(taxed) == 0 && defaultRate.IsPositive() {
		// legacy orders: single order-level rate over the subtotal
		taxed = []Item{{Amount: subtotal, TaxRate: defaultRate}}
	}

	kind := BreakdownSingle
	if intraState {
		kind = BreakdownSplit
	}

	buckets := map[string]*RateBucket{}
	taxTotal := decimal.Zero
	for _, it := range taxed {
		rate := it.TaxRate
		if intraState {
			rate = rate.Div(decTwo)
		}
		line := it.Amount.Mul(rate).Div(decHundred).Round(2)

		key := rate.String()
		b, ok := buckets[key]
		if !ok {
			b = &RateBucket{Rate: rate}
			buckets[key] = b
		}
		b.Amount = b.Amount.Add(line)

		if intraState {
			taxTotal = taxTotal.Add(line).Add(line) // SGST leg + CGST leg
		} else {
			taxTotal = taxTotal.Add(line)
		}
	}

	sorted := make([]RateBucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, *b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rate.LessThan(sorted[j].Rate) })

	return Breakdown{
		Kind:       kind,
		Buckets:    sorted,
		Subtotal:   subtotal.Round(2),
		TaxTotal:   taxTotal.Round(2),
		Adjustment: adjustment,
		GrandTotal: subtotal.Add(taxTotal).Add(adjustment).Round(2),
	}
}
