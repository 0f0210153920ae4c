package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// PurchaseOrderReaderSvc defines read operations for purchase order data
type PurchaseOrderReaderSvc interface {
	// GetPurchaseOrderByID retrieves a PO with its items.
	GetPurchaseOrderByID(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error)

	// ListPurchaseOrders retrieves a paginated list of POs.
	ListPurchaseOrders(ctx context.Context, organizationID string, status *domain.PurchaseOrderStatus, limit, offset int, requestingUserID string) ([]domain.PurchaseOrder, int, error)
}

// PurchaseOrderWriterSvc defines write operations for purchase order data
type PurchaseOrderWriterSvc interface {
	// CreatePurchaseOrder drafts a PO with a generated number and computed totals.
	CreatePurchaseOrder(ctx context.Context, organizationID string, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error)

	// CreateFromSupplierQuote drafts a PO from a selected supplier quote,
	// carrying over its items and after-commission prices.
	CreateFromSupplierQuote(ctx context.Context, organizationID, supplierQuoteID, creatorUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error)

	// UpdatePurchaseOrder edits a draft PO and recomputes totals. Finalized
	// orders return ErrDocumentFinalized.
	UpdatePurchaseOrder(ctx context.Context, organizationID, poID string, req dto.UpdatePurchaseOrderRequest, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error)

	// SendPurchaseOrder finalizes the PO: locks the conversion rate to the
	// base currency, freezes totals and marks it sent.
	SendPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error)

	// ConfirmPurchaseOrder marks a sent PO as confirmed by the supplier and
	// opens the matching payable in the ledger.
	ConfirmPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error)

	// CancelPurchaseOrder cancels a PO that has not been confirmed.
	CancelPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error)

	// ReviseFinalizedPurchaseOrder clones a finalized PO into a new draft
	// revision; the original stays immutable.
	ReviseFinalizedPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error)
}

// PurchaseOrderSvcFacade combines all purchase order-related service interfaces
type PurchaseOrderSvcFacade interface {
	PurchaseOrderReaderSvc
	PurchaseOrderWriterSvc
}
