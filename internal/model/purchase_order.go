package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IssuingEntity enum constants — each entity has its own document template
const (
	EntityUnitI  = "UNIT_I"
	EntityUnitII = "UNIT_II"
)

// POStatus constants
const (
	POStatusDraft     = "DRAFT"
	POStatusIssued    = "ISSUED"
	POStatusClosed    = "CLOSED"
	POStatusCancelled = "CANCELLED"
)

// ItemKind enum constants. CHARGE marks a non-physical cost row (freight
// surcharge etc.) — the document suppresses HSN/quantity/unit for it.
const (
	ItemKindPhysical = "PHYSICAL"
	ItemKindCharge   = "CHARGE"
)

// PurchaseOrder represents an order placed on a supplier
type PurchaseOrder struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"po_number"`
	PODate         time.Time       `gorm:"type:date;not null" json:"po_date"`
	Entity         string          `gorm:"type:varchar(20);not null;default:'UNIT_I'" json:"entity"` // UNIT_I, UNIT_II
	Status         string          `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier       *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	FreightPartyID *uuid.UUID      `gorm:"type:uuid;index" json:"freight_party_id"` // Nullable — transporter shown on the document
	FreightParty   *Supplier       `gorm:"foreignKey:FreightPartyID" json:"freight_party,omitempty"`
	Currency       string          `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	PaymentTerms   string          `gorm:"type:varchar(255)" json:"payment_terms"`
	DeliveryTerms  string          `gorm:"type:varchar(255)" json:"delivery_terms"`
	TermsText      string          `gorm:"type:text" json:"terms_text"` // Free-text terms printed at the bottom of the document
	Adjustment     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"adjustment"`
	Items          []POLineItem    `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// POLineItem represents one row of a purchase order.
// Amount is caller-supplied and trusted for totals — it is never
// recomputed from Quantity*Rate.
type POLineItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Position        int             `gorm:"type:int;not null" json:"position"` // Print order on the document
	Kind            string          `gorm:"type:varchar(20);not null;default:'PHYSICAL'" json:"kind"`
	Description     string          `gorm:"type:varchar(255);not null" json:"description"`
	SubDescription  string          `gorm:"type:varchar(255)" json:"sub_description"` // Printed smaller, directly beneath Description
	HSNCode         string          `gorm:"type:varchar(20)" json:"hsn_code"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"quantity"`
	Unit            string          `gorm:"type:varchar(20)" json:"unit"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"rate"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_rate"` // GST percentage, 0 = untaxed
}
