// Package docgen fills the fixed-layout purchase-order PDF templates with
// computed field values. Everything in here is pure computation over an
// order projection; the only I/O is the template bytes handed to the
// composer. One render call is fully independent of any other, so callers
// may render concurrently.
package docgen

import (
	"encoding/base64"
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind tags a projection line item. Charge rows (freight surcharges
// etc.) suppress HSN/quantity/unit on the printed document.
type ItemKind string

const (
	ItemPhysical ItemKind = "PHYSICAL"
	ItemCharge   ItemKind = "CHARGE"
)

// Party is a contact block printed on the document (supplier or
// freight/transport handler).
type Party struct {
	Name    string
	Address string // comma/semicolon separated, wrapped at render time
	TaxID   string // GSTIN; first two characters carry the state code
	Country string
}

// Item is one printable order row. Amount is taken as given — totals use
// it directly and never recompute Quantity*Rate.
type Item struct {
	Kind           ItemKind
	Description    string
	SubDescription string // printed smaller, directly beneath Description
	HSNCode        string
	Quantity       decimal.Decimal
	Unit           string
	Rate           decimal.Decimal
	Amount         decimal.Decimal
	TaxRate        decimal.Decimal // GST percentage; zero means untaxed
}

// Projection is the immutable input of one render call.
type Projection struct {
	PONumber      string
	PODate        time.Time
	Entity        string // template variant discriminator (EntityUnitI / EntityUnitII)
	Supplier      *Party
	FreightParty  *Party // optional
	Currency      string
	PaymentTerms  string
	DeliveryTerms string
	TermsText     string // free-text terms block
	Adjustment    decimal.Decimal
	Items         []Item
}

// RenderedDocument is the finished output. Ownership transfers to the
// caller; the engine keeps nothing.
type RenderedDocument struct {
	Filename string
	Data     []byte
}

// DataURI returns an inline-preview representation of the document. It is
// derived from the same bytes as the download payload, so preview and
// download can never diverge.
func (d *RenderedDocument) DataURI() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(d.Data)
}
