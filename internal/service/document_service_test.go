package service

import (
	"testing"
	"time"

	"backend/internal/docgen"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func sampleOrder() *model.PurchaseOrder {
	supplierID := uuid.New()
	return &model.PurchaseOrder{
		ID:         uuid.New(),
		PONumber:   "MM/042/25-26",
		PODate:     time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		Entity:     model.EntityUnitI,
		SupplierID: supplierID,
		Supplier: &model.Supplier{
			ID:      supplierID,
			Name:    "Shree Polymers Pvt Ltd",
			Address: "Plot 12, KIADB Industrial Area, Hoskote, Bengaluru 562114",
			GSTIN:   "29AABCS1429B1ZP",
			Country: "India",
		},
		Currency:   "INR",
		Adjustment: decimal.Zero,
		Items: []model.POLineItem{
			{
				Position:    1,
				Kind:        model.ItemKindPhysical,
				Description: "LDPE Granules",
				HSNCode:     "39011010",
				Quantity:    decimal.NewFromInt(300),
				Unit:        "Kgs",
				Rate:        decimal.RequireFromString("14750.30"),
				Amount:      decimal.RequireFromString("4425090.00"),
				TaxRate:     decimal.NewFromInt(18),
			},
		},
	}
}

func TestBuildProjection(t *testing.T) {
	order := sampleOrder()
	p := buildProjection(order)

	if p.PONumber != order.PONumber {
		t.Errorf("PONumber = %q, want %q", p.PONumber, order.PONumber)
	}
	if p.Entity != model.EntityUnitI {
		t.Errorf("Entity = %q, want %q", p.Entity, model.EntityUnitI)
	}
	if p.Supplier == nil {
		t.Fatal("Supplier is nil")
	}
	if p.Supplier.TaxID != "29AABCS1429B1ZP" {
		t.Errorf("Supplier.TaxID = %q", p.Supplier.TaxID)
	}
	if p.FreightParty != nil {
		t.Errorf("FreightParty should be nil when the order has none")
	}
	if len(p.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(p.Items))
	}
	it := p.Items[0]
	if it.Kind != docgen.ItemPhysical {
		t.Errorf("Kind = %q, want %q", it.Kind, docgen.ItemPhysical)
	}
	if !it.Amount.Equal(decimal.RequireFromString("4425090.00")) {
		t.Errorf("Amount = %s", it.Amount)
	}
}

func TestBuildProjectionFreightParty(t *testing.T) {
	order := sampleOrder()
	order.FreightParty = &model.Supplier{
		Name:    "Sharma Roadlines",
		Address: "Transport Nagar, Indore 452001",
		GSTIN:   "23AACFS7781C1ZK",
		Country: "India",
	}

	p := buildProjection(order)
	if p.FreightParty == nil {
		t.Fatal("FreightParty is nil")
	}
	if p.FreightParty.Name != "Sharma Roadlines" {
		t.Errorf("FreightParty.Name = %q", p.FreightParty.Name)
	}
}

func TestItemKindLegacyFallback(t *testing.T) {
	cases := []struct {
		name string
		item model.POLineItem
		want docgen.ItemKind
	}{
		{
			name: "explicit charge",
			item: model.POLineItem{Kind: model.ItemKindCharge, Description: "Handling Fee"},
			want: docgen.ItemCharge,
		},
		{
			name: "explicit physical with freight description",
			item: model.POLineItem{Kind: model.ItemKindPhysical, Description: "Freight & Transport Charges"},
			want: docgen.ItemPhysical,
		},
		{
			name: "untagged freight literal",
			item: model.POLineItem{Description: "Freight & Transport Charges"},
			want: docgen.ItemCharge,
		},
		{
			name: "untagged freight literal with whitespace",
			item: model.POLineItem{Description: "  freight & transport charges "},
			want: docgen.ItemCharge,
		},
		{
			name: "untagged ordinary row",
			item: model.POLineItem{Description: "LDPE Granules"},
			want: docgen.ItemPhysical,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := itemKind(tc.item); got != tc.want {
				t.Errorf("itemKind = %q, want %q", got, tc.want)
			}
		})
	}
}
