package repositories

import (
	"context"
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// PurchaseOrderReader defines read operations for purchase order data
type PurchaseOrderReader interface {
	FindPurchaseOrderByID(ctx context.Context, organizationID, poID string) (*domain.PurchaseOrder, error)
	FindPurchaseOrderItems(ctx context.Context, poID string) ([]domain.PurchaseOrderItem, error)
	ListPurchaseOrders(ctx context.Context, organizationID string, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, int, error)
	ListPurchaseOrdersByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.PurchaseOrder, error)

	// CountPurchaseOrdersForMonth counts POs issued in the month of onDate,
	// used for sequence numbering.
	CountPurchaseOrdersForMonth(ctx context.Context, organizationID string, onDate time.Time) (int, error)
}

// PurchaseOrderWriter defines write operations for purchase order data
type PurchaseOrderWriter interface {
	// SavePurchaseOrder persists a purchase order and its items atomically.
	SavePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, items []domain.PurchaseOrderItem) error
	UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error
	ReplacePurchaseOrderItems(ctx context.Context, poID string, items []domain.PurchaseOrderItem) error
}

// PurchaseOrderRepositoryFacade combines all purchase order repository interfaces
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
