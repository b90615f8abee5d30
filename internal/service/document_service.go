package service

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/docgen"
	"backend/internal/model"
	"backend/internal/websocket"

	"gorm.io/gorm"
)

// legacyFreightLiteral marks charge rows in records imported from the
// spreadsheet era, which had no kind column and flagged the freight row
// by its description alone.
const legacyFreightLiteral = "freight & transport charges"

// DocumentPreviewResponse carries an inline data URI for browser preview
type DocumentPreviewResponse struct {
	PONumber string `json:"po_number"`
	Filename string `json:"filename"`
	DataURI  string `json:"data_uri"`
}

type DocumentService interface {
	RenderDocument(ctx context.Context, orderID string, userID string) (*docgen.RenderedDocument, error)
	PreviewDocument(ctx context.Context, orderID string, userID string) (DocumentPreviewResponse, error)
}

type documentService struct {
	db     *gorm.DB
	engine *docgen.Engine
	hub    *websocket.Hub
}

func NewDocumentService(db *gorm.DB, engine *docgen.Engine, hub *websocket.Hub) DocumentService {
	return &documentService{db: db, engine: engine, hub: hub}
}

func (s *documentService) RenderDocument(ctx context.Context, orderID string, userID string) (*docgen.RenderedDocument, error) {
	_, doc, err := s.render(ctx, orderID, userID)
	return doc, err
}

func (s *documentService) PreviewDocument(ctx context.Context, orderID string, userID string) (DocumentPreviewResponse, error) {
	order, doc, err := s.render(ctx, orderID, userID)
	if err != nil {
		return DocumentPreviewResponse{}, err
	}
	return DocumentPreviewResponse{
		PONumber: order.PONumber,
		Filename: doc.Filename,
		DataURI:  doc.DataURI(),
	}, nil
}

// render fetches the order once and produces the document, recording the
// audit row and broadcasting the generated event.
func (s *documentService) render(ctx context.Context, orderID string, userID string) (*model.PurchaseOrder, *docgen.RenderedDocument, error) {
	order, err := fetchPurchaseOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.engine.Render(ctx, buildProjection(order))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render document for %s: %w", order.PONumber, err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionRenderDocument, order.ID.String(), order.PONumber, map[string]string{
		"filename": doc.Filename,
	})

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventDocumentGenerated, map[string]string{
			"purchase_order_id": order.ID.String(),
			"po_number":         order.PONumber,
			"filename":          doc.Filename,
		})
	}

	return order, doc, nil
}

// buildProjection maps a stored order onto the render input. It is pure
// so it can be tested without a database.
func buildProjection(order *model.PurchaseOrder) *docgen.Projection {
	p := &docgen.Projection{
		PONumber:      order.PONumber,
		PODate:        order.PODate,
		Entity:        order.Entity,
		Supplier:      toParty(order.Supplier),
		FreightParty:  toParty(order.FreightParty),
		Currency:      order.Currency,
		PaymentTerms:  order.PaymentTerms,
		DeliveryTerms: order.DeliveryTerms,
		TermsText:     order.TermsText,
		Adjustment:    order.Adjustment,
	}

	p.Items = make([]docgen.Item, 0, len(order.Items))
	for _, it := range order.Items {
		p.Items = append(p.Items, docgen.Item{
			Kind:           itemKind(it),
			Description:    it.Description,
			SubDescription: it.SubDescription,
			HSNCode:        it.HSNCode,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Rate:           it.Rate,
			Amount:         it.Amount,
			TaxRate:        it.TaxRate,
		})
	}
	return p
}

// itemKind resolves the row kind, honouring rows created before the kind
// column existed.
func itemKind(it model.POLineItem) docgen.ItemKind {
	switch it.Kind {
	case model.ItemKindCharge:
		return docgen.ItemCharge
	case model.ItemKindPhysical:
		return docgen.ItemPhysical
	}
	if strings.EqualFold(strings.TrimSpace(it.Description), legacyFreightLiteral) {
		return docgen.ItemCharge
	}
	return docgen.ItemPhysical
}

func toParty(s *model.Supplier) *docgen.Party {
	if s == nil {
		return nil
	}
	return &docgen.Party{
		Name:    s.Name,
		Address: s.Address,
		TaxID:   s.GSTIN,
		Country: s.Country,
	}
}
