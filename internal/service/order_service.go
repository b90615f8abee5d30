package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateLineItemRequest struct {
	Kind           string `json:"kind" binding:"omitempty,oneof=PHYSICAL CHARGE"`
	Description    string `json:"description" binding:"required"`
	SubDescription string `json:"sub_description"`
	HSNCode        string `json:"hsn_code"`
	Quantity       string `json:"quantity"` // decimal strings, e.g. "300"
	Unit           string `json:"unit"`
	Rate           string `json:"rate"`
	Amount         string `json:"amount" binding:"required"`
	TaxRate        string `json:"tax_rate"`
}

type CreatePurchaseOrderRequest struct {
	PONumber       string                  `json:"po_number" binding:"required"`
	PODate         string                  `json:"po_date" binding:"required"` // YYYY-MM-DD
	Entity         string                  `json:"entity" binding:"required,oneof=UNIT_I UNIT_II"`
	SupplierID     string                  `json:"supplier_id" binding:"required"`
	FreightPartyID string                  `json:"freight_party_id"`
	Currency       string                  `json:"currency" binding:"required"`
	PaymentTerms   string                  `json:"payment_terms"`
	DeliveryTerms  string                  `json:"delivery_terms"`
	TermsText      string                  `json:"terms_text"`
	Adjustment     string                  `json:"adjustment"`
	Items          []CreateLineItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ISSUED CLOSED CANCELLED"`
}

type LineItemResponse struct {
	ID             string `json:"id"`
	Position       int    `json:"position"`
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	SubDescription string `json:"sub_description,omitempty"`
	HSNCode        string `json:"hsn_code,omitempty"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit,omitempty"`
	Rate           string `json:"rate"`
	Amount         string `json:"amount"`
	TaxRate        string `json:"tax_rate"`
}

type PurchaseOrderResponse struct {
	ID            string             `json:"id"`
	PONumber      string             `json:"po_number"`
	PODate        string             `json:"po_date"`
	Entity        string             `json:"entity"`
	Status        string             `json:"status"`
	SupplierID    string             `json:"supplier_id"`
	Supplier      *SupplierResponse  `json:"supplier,omitempty"`
	FreightParty  *SupplierResponse  `json:"freight_party,omitempty"`
	Currency      string             `json:"currency"`
	PaymentTerms  string             `json:"payment_terms"`
	DeliveryTerms string             `json:"delivery_terms"`
	TermsText     string             `json:"terms_text"`
	Adjustment    string             `json:"adjustment"`
	Items         []LineItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

type PurchaseOrderFilter struct {
	Status string
	Entity string
	Page   int
	Limit  int
}

// --- Interface ---

type PurchaseOrderService interface {
	CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest, userID string) (PurchaseOrderResponse, error)
	GetPurchaseOrder(ctx context.Context, id string) (PurchaseOrderResponse, error)
	ListPurchaseOrders(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrderResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req UpdatePurchaseOrderStatusRequest, userID string) (PurchaseOrderResponse, error)
	DeletePurchaseOrder(ctx context.Context, id string, userID string) error
}

type purchaseOrderService struct {
	db *gorm.DB
}

func NewPurchaseOrderService(db *gorm.DB) PurchaseOrderService {
	return &purchaseOrderService{db: db}
}

// --- Implementation ---

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest, userID string) (PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("invalid supplier id: %w", err)
	}

	poDate, err := time.Parse("2006-01-02", req.PODate)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("invalid po_date (expected YYYY-MM-DD): %w", err)
	}

	adjustment := decimal.Zero
	if req.Adjustment != "" {
		if adjustment, err = decimal.NewFromString(req.Adjustment); err != nil {
			return PurchaseOrderResponse{}, fmt.Errorf("invalid adjustment value: %w", err)
		}
	}

	order := model.PurchaseOrder{
		PONumber:      req.PONumber,
		PODate:        poDate,
		Entity:        req.Entity,
		Status:        model.POStatusDraft,
		SupplierID:    supplierID,
		Currency:      req.Currency,
		PaymentTerms:  req.PaymentTerms,
		DeliveryTerms: req.DeliveryTerms,
		TermsText:     req.TermsText,
		Adjustment:    adjustment,
	}

	if req.FreightPartyID != "" {
		freightID, err := uuid.Parse(req.FreightPartyID)
		if err != nil {
			return PurchaseOrderResponse{}, fmt.Errorf("invalid freight_party_id: %w", err)
		}
		order.FreightPartyID = &freightID
	}

	items, err := buildLineItems(req.Items)
	if err != nil {
		return PurchaseOrderResponse{}, err
	}
	order.Items = items

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.First(&supplier, "id = ?", supplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("supplier not found")
			}
			return fmt.Errorf("failed to verify supplier: %w", err)
		}
		if !supplier.IsActive {
			return fmt.Errorf("supplier %s is inactive", supplier.Name)
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}
		return nil
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	writeAuditLog(ctx, s.db, userID, model.ActionCreatePurchaseOrder, order.ID.String(), order.PONumber, req)

	return s.GetPurchaseOrder(ctx, order.ID.String())
}

func (s *purchaseOrderService) GetPurchaseOrder(ctx context.Context, id string) (PurchaseOrderResponse, error) {
	order, err := fetchPurchaseOrder(ctx, s.db, id)
	if err != nil {
		return PurchaseOrderResponse{}, err
	}
	return toPurchaseOrderResponse(*order), nil
}

func (s *purchaseOrderService) ListPurchaseOrders(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrderResponse, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.PurchaseOrder{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	var orders []model.PurchaseOrder
	err := query.
		Preload("Supplier").
		Order("po_date DESC, po_number DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchase orders: %w", err)
	}

	res := make([]PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toPurchaseOrderResponse(o))
	}
	return res, total, nil
}

func (s *purchaseOrderService) UpdateStatus(ctx context.Context, id string, req UpdatePurchaseOrderStatusRequest, userID string) (PurchaseOrderResponse, error) {
	order, err := fetchPurchaseOrder(ctx, s.db, id)
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	if order.Status == model.POStatusCancelled {
		return PurchaseOrderResponse{}, fmt.Errorf("cancelled orders cannot change status")
	}

	order.Status = req.Status
	if err := s.db.WithContext(ctx).Model(&model.PurchaseOrder{}).Where("id = ?", order.ID).Update("status", req.Status).Error; err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("failed to update status: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.PONumber, req)

	return toPurchaseOrderResponse(*order), nil
}

func (s *purchaseOrderService) DeletePurchaseOrder(ctx context.Context, id string, userID string) error {
	order, err := fetchPurchaseOrder(ctx, s.db, id)
	if err != nil {
		return err
	}

	if order.Status != model.POStatusDraft {
		return fmt.Errorf("only draft orders can be deleted")
	}

	if err := s.db.WithContext(ctx).Select("Items").Delete(order).Error; err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionDeletePurchaseOrder, order.ID.String(), order.PONumber, map[string]string{"deleted_id": id})

	return nil
}

// --- Helpers ---

func buildLineItems(reqs []CreateLineItemRequest) ([]model.POLineItem, error) {
	items := make([]model.POLineItem, 0, len(reqs))
	charges := 0
	for i, r := range reqs {
		kind := r.Kind
		if kind == "" {
			kind = model.ItemKindPhysical
		}
		if kind == model.ItemKindCharge {
			charges++
		}

		quantity, err := parseDecimalField(r.Quantity, "quantity", i)
		if err != nil {
			return nil, err
		}
		rate, err := parseDecimalField(r.Rate, "rate", i)
		if err != nil {
			return nil, err
		}
		amount, err := parseDecimalField(r.Amount, "amount", i)
		if err != nil {
			return nil, err
		}
		taxRate, err := parseDecimalField(r.TaxRate, "tax_rate", i)
		if err != nil {
			return nil, err
		}
		if quantity.IsNegative() || rate.IsNegative() {
			return nil, fmt.Errorf("item %d: quantity and rate must not be negative", i+1)
		}

		items = append(items, model.POLineItem{
			Position:       i + 1,
			Kind:           kind,
			Description:    r.Description,
			SubDescription: r.SubDescription,
			HSNCode:        r.HSNCode,
			Quantity:       quantity,
			Unit:           r.Unit,
			Rate:           rate,
			Amount:         amount,
			TaxRate:        taxRate,
		})
	}
	if charges > 1 {
		return nil, fmt.Errorf("at most one charge row is allowed per order")
	}
	return items, nil
}

func parseDecimalField(value, name string, index int) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("item %d: invalid %s value: %w", index+1, name, err)
	}
	return d, nil
}

func fetchPurchaseOrder(ctx context.Context, db *gorm.DB, id string) (*model.PurchaseOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase order id: %w", err)
	}

	var order model.PurchaseOrder
	err = db.WithContext(ctx).
		Preload("Supplier").
		Preload("FreightParty").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchase order not found")
		}
		return nil, fmt.Errorf("failed to fetch purchase order: %w", err)
	}
	return &order, nil
}

func toPurchaseOrderResponse(o model.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:            o.ID.String(),
		PONumber:      o.PONumber,
		PODate:        o.PODate.Format("2006-01-02"),
		Entity:        o.Entity,
		Status:        o.Status,
		SupplierID:    o.SupplierID.String(),
		Currency:      o.Currency,
		PaymentTerms:  o.PaymentTerms,
		DeliveryTerms: o.DeliveryTerms,
		TermsText:     o.TermsText,
		Adjustment:    o.Adjustment.StringFixed(2),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if o.Supplier != nil {
		r := toSupplierResponse(*o.Supplier)
		resp.Supplier = &r
	}
	if o.FreightParty != nil {
		r := toSupplierResponse(*o.FreightParty)
		resp.FreightParty = &r
	}
	resp.Items = make([]LineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:             it.ID.String(),
			Position:       it.Position,
			Kind:           it.Kind,
			Description:    it.Description,
			SubDescription: it.SubDescription,
			HSNCode:        it.HSNCode,
			Quantity:       it.Quantity.String(),
			Unit:           it.Unit,
			Rate:           it.Rate.StringFixed(2),
			Amount:         it.Amount.StringFixed(2),
			TaxRate:        it.TaxRate.String(),
		})
	}
	return resp
}
