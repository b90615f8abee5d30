package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	GSTIN         string `json:"gstin"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
}

type UpdateSupplierRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	IsActive      *bool  `json:"is_active"`
}

type SupplierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IsActive      bool   `json:"is_active"`
}

// --- Interface ---

type SupplierService interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest, userID string) (SupplierResponse, error)
	GetSupplier(ctx context.Context, id string) (SupplierResponse, error)
	ListSuppliers(ctx context.Context, page, limit int) ([]SupplierResponse, int64, error)
	UpdateSupplier(ctx context.Context, id string, req UpdateSupplierRequest, userID string) (SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id string, userID string) error
}

type supplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) SupplierService {
	return &supplierService{db: db}
}

// --- Implementation ---

func (s *supplierService) CreateSupplier(ctx context.Context, req CreateSupplierRequest, userID string) (SupplierResponse, error) {
	supplier := model.Supplier{
		Name:          req.Name,
		Address:       req.Address,
		GSTIN:         req.GSTIN,
		Country:       req.Country,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
	}
	if supplier.Country == "" {
		supplier.Country = "India"
	}

	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return SupplierResponse{}, fmt.Errorf("failed to create supplier: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionCreateSupplier, supplier.ID.String(), supplier.Name, req)

	return toSupplierResponse(supplier), nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (SupplierResponse, error) {
	supplier, err := s.fetch(ctx, id)
	if err != nil {
		return SupplierResponse{}, err
	}
	return toSupplierResponse(*supplier), nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, page, limit int) ([]SupplierResponse, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	var suppliers []model.Supplier
	err := s.db.WithContext(ctx).
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&suppliers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch suppliers: %w", err)
	}

	res := make([]SupplierResponse, 0, len(suppliers))
	for _, sup := range suppliers {
		res = append(res, toSupplierResponse(sup))
	}
	return res, total, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, req UpdateSupplierRequest, userID string) (SupplierResponse, error) {
	supplier, err := s.fetch(ctx, id)
	if err != nil {
		return SupplierResponse{}, err
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.Address != "" {
		supplier.Address = req.Address
	}
	if req.GSTIN != "" {
		supplier.GSTIN = req.GSTIN
	}
	if req.Country != "" {
		supplier.Country = req.Country
	}
	if req.ContactPerson != "" {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return SupplierResponse{}, fmt.Errorf("failed to update supplier: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionUpdateSupplier, supplier.ID.String(), supplier.Name, req)

	return toSupplierResponse(*supplier), nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id string, userID string) error {
	supplier, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	var openOrders int64
	err = s.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("supplier_id = ? AND status IN ?", supplier.ID, []string{model.POStatusDraft, model.POStatusIssued}).
		Count(&openOrders).Error
	if err != nil {
		return fmt.Errorf("failed to check open orders: %w", err)
	}
	if openOrders > 0 {
		return fmt.Errorf("supplier has %d open purchase orders", openOrders)
	}

	if err := s.db.WithContext(ctx).Delete(supplier).Error; err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionDeleteSupplier, supplier.ID.String(), supplier.Name, map[string]string{"deleted_id": id})

	return nil
}

// --- Helpers ---

func (s *supplierService) fetch(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}

	var supplier model.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier not found")
		}
		return nil, fmt.Errorf("failed to fetch supplier: %w", err)
	}
	return &supplier, nil
}

func toSupplierResponse(s model.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Address:       s.Address,
		GSTIN:         s.GSTIN,
		Country:       s.Country,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		IsActive:      s.IsActive,
	}
}
