package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// ShipmentReader defines read operations for shipment data
type ShipmentReader interface {
	FindShipmentByID(ctx context.Context, organizationID, shipmentID string) (*domain.Shipment, error)
	FindShipmentItems(ctx context.Context, shipmentID string) ([]domain.ShipmentItem, error)
	ListShipments(ctx context.Context, organizationID string, status *domain.ShipmentStatus, limit, offset int) ([]domain.Shipment, int, error)

	// ListShipmentsByRFQ finds shipments belonging to any purchase order
	// raised against the RFQ.
	ListShipmentsByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.Shipment, error)
	CountShipmentsForYear(ctx context.Context, organizationID string, year int) (int, error)
}

// ShipmentWriter defines write operations for shipment data
type ShipmentWriter interface {
	SaveShipment(ctx context.Context, shipment domain.Shipment, items []domain.ShipmentItem) error
	UpdateShipment(ctx context.Context, shipment domain.Shipment) error
	ReplaceShipmentItems(ctx context.Context, shipmentID string, items []domain.ShipmentItem) error
}

// ShipmentRepositoryFacade combines all shipment repository interfaces
type ShipmentRepositoryFacade interface {
	ShipmentReader
	ShipmentWriter
}
