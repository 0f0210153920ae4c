package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// ShipmentReaderSvc defines read operations for shipment data
type ShipmentReaderSvc interface {
	// GetShipmentByID retrieves a shipment with its items.
	GetShipmentByID(ctx context.Context, organizationID, shipmentID, requestingUserID string) (*domain.Shipment, []domain.ShipmentItem, error)

	// ListShipments retrieves a paginated list of shipments.
	ListShipments(ctx context.Context, organizationID string, status *domain.ShipmentStatus, limit, offset int, requestingUserID string) ([]domain.Shipment, int, error)
}

// ShipmentWriterSvc defines write operations for shipment data
type ShipmentWriterSvc interface {
	// CreateShipment drafts a shipment against a confirmed purchase order.
	CreateShipment(ctx context.Context, organizationID string, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, []domain.ShipmentItem, error)

	// UpdateShipment edits a draft shipment and recomputes the total cost.
	UpdateShipment(ctx context.Context, organizationID, shipmentID string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, []domain.ShipmentItem, error)

	// UpdateShipmentStatus advances the shipment lifecycle. Confirming locks
	// the base-currency rate and freezes costs.
	UpdateShipmentStatus(ctx context.Context, organizationID, shipmentID string, status domain.ShipmentStatus, requestingUserID string) (*domain.Shipment, error)
}

// ShipmentSvcFacade combines all shipment-related service interfaces
type ShipmentSvcFacade interface {
	ShipmentReaderSvc
	ShipmentWriterSvc
}
