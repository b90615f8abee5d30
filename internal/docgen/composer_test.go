package docgen_test

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"backend/internal/docgen"

	"github.com/shopspring/decimal"
)

// fakeComposer records every stamp in order. ProduceBytes serializes the
// log, so two identical write sequences yield identical bytes — which is
// exactly what the idempotence tests need.
type stamp struct {
	X, Y, Size float64
	Text       string
}

type fakeComposer struct {
	size   float64
	stamps []stamp
}

func (f *fakeComposer) SetFont(_, _ string, size float64) error {
	f.size = size
	return nil
}

func (f *fakeComposer) Text(x, y float64, text string) error {
	f.stamps = append(f.stamps, stamp{X: x, Y: y, Size: f.size, Text: text})
	return nil
}

func (f *fakeComposer) ProduceBytes() ([]byte, error) {
	var b bytes.Buffer
	for _, s := range f.stamps {
		fmt.Fprintf(&b, "%.2f|%.2f|%.2f|%s\n", s.X, s.Y, s.Size, s.Text)
	}
	return b.Bytes(), nil
}

func (f *fakeComposer) find(text string) (stamp, bool) {
	for _, s := range f.stamps {
		if s.Text == text {
			return s, true
		}
	}
	return stamp{}, false
}

func (f *fakeComposer) contains(text string) bool {
	_, ok := f.find(text)
	return ok
}

func (f *fakeComposer) containsPrefix(prefix string) bool {
	for _, s := range f.stamps {
		if strings.HasPrefix(s.Text, prefix) {
			return true
		}
	}
	return false
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleProjection returns a renderable inter-state order for UNIT_I:
// one physical line (300 kg at 14750.30 = 4,425,090.00, 18% GST) and a
// Karnataka supplier ("29" prefix) against the Maharashtra issuer ("27").
func sampleProjection() *docgen.Projection {
	return &docgen.Projection{
		PONumber: "MM/042/25-26",
		PODate:   time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC),
		Entity:   docgen.EntityUnitI,
		Supplier: &docgen.Party{
			Name:    "Shree Polymers Pvt Ltd",
			Address: "Plot 12, KIADB Industrial Area, Hoskote, Bengaluru 562114",
			TaxID:   "29AABCS1429B1ZP",
			Country: "India",
		},
		Currency:      "INR",
		PaymentTerms:  "100% Advance against Proforma Invoice",
		DeliveryTerms: "Ex-Works within 15 days",
		TermsText:     "Material to be packed in 25kg HDPE bags, test certificate with each lot",
		Adjustment:    decimal.Zero,
		Items: []docgen.Item{
			{
				Kind:        docgen.ItemPhysical,
				Description: "LDPE Granules 24FS040",
				HSNCode:     "39011010",
				Quantity:    dec("300"),
				Unit:        "kg",
				Rate:        dec("14750.30"),
				Amount:      dec("4425090.00"),
				TaxRate:     dec("18"),
			},
		},
	}
}
