package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/numbering"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/trade"
)

// ShipmentService handles shipment lifecycle and costs.
type ShipmentService struct {
	shipmentRepo     portsrepo.ShipmentRepositoryFacade
	poRepo           portsrepo.PurchaseOrderRepositoryFacade
	rateService      portssvc.ExchangeRateReaderSvc
	invoiceService   portssvc.InvoiceWriterSvc
	authorizer       portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode string
}

// NewShipmentService creates a new ShipmentService. invoiceService may be nil
// in contexts that never confirm shipments.
func NewShipmentService(shipmentRepo portsrepo.ShipmentRepositoryFacade, poRepo portsrepo.PurchaseOrderRepositoryFacade, rateService portssvc.ExchangeRateReaderSvc, invoiceService portssvc.InvoiceWriterSvc, authorizer portssvc.OrganizationAuthorizerSvc, baseCurrencyCode string) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:     shipmentRepo,
		poRepo:           poRepo,
		rateService:      rateService,
		invoiceService:   invoiceService,
		authorizer:       authorizer,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.ShipmentSvcFacade = (*ShipmentService)(nil)

func buildShipmentItems(shipmentID string, reqItems []dto.ShipmentItemRequest) []domain.ShipmentItem {
	items := make([]domain.ShipmentItem, len(reqItems))
	for i, reqItem := range reqItems {
		items[i] = domain.ShipmentItem{
			ShipmentItemID:      uuid.NewString(),
			ShipmentID:          shipmentID,
			PurchaseOrderItemID: reqItem.PurchaseOrderItemID,
			ProductName:         reqItem.ProductName,
			Quantity:            reqItem.Quantity,
		}
	}
	return items
}

func recalculateShipmentCost(s *domain.Shipment) {
	s.TotalCostMinorUnits = s.ShippingCostMinorUnits + s.InsuranceCostMinorUnits + s.OtherCostsMinorUnits
}

// CreateShipment drafts a shipment against a confirmed purchase order.
func (s *ShipmentService) CreateShipment(ctx context.Context, organizationID string, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, []domain.ShipmentItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, req.PurchaseOrderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order for shipment: %w", err)
	}
	if po.Status != domain.POConfirmed {
		return nil, nil, fmt.Errorf("%w: purchase order %s is not confirmed", apperrors.ErrValidation, po.PONumber)
	}

	now := time.Now()
	seq, err := s.shipmentRepo.CountShipmentsForYear(ctx, organizationID, now.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count shipments for numbering: %w", err)
	}

	shipment := domain.Shipment{
		ShipmentID:              uuid.NewString(),
		OrganizationID:          organizationID,
		ShipmentNumber:          numbering.ShipmentNumber(now, seq+1),
		PurchaseOrderID:         req.PurchaseOrderID,
		CurrencyCode:            req.CurrencyCode,
		Status:                  domain.ShipmentDraft,
		Carrier:                 req.Carrier,
		TrackingNumber:          req.TrackingNumber,
		ShippingCostMinorUnits:  req.ShippingCostMinorUnits,
		InsuranceCostMinorUnits: req.InsuranceCostMinorUnits,
		OtherCostsMinorUnits:    req.OtherCostsMinorUnits,
		EstimatedDeparture:      req.EstimatedDeparture,
		EstimatedArrival:        req.EstimatedArrival,
		Notes:                   req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	recalculateShipmentCost(&shipment)

	items := buildShipmentItems(shipment.ShipmentID, req.Items)
	if err := s.shipmentRepo.SaveShipment(ctx, shipment, items); err != nil {
		logger.Error("Failed to save shipment", slog.String("error", err.Error()), slog.String("shipment_number", shipment.ShipmentNumber))
		return nil, nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	logger.Info("Shipment drafted", slog.String("shipment_id", shipment.ShipmentID), slog.String("shipment_number", shipment.ShipmentNumber))
	return &shipment, items, nil
}

// GetShipmentByID retrieves a shipment with its items.
func (s *ShipmentService) GetShipmentByID(ctx context.Context, organizationID, shipmentID, requestingUserID string) (*domain.Shipment, []domain.ShipmentItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	shipment, err := s.shipmentRepo.FindShipmentByID(ctx, organizationID, shipmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	items, err := s.shipmentRepo.FindShipmentItems(ctx, shipmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get shipment items: %w", err)
	}
	return shipment, items, nil
}

// ListShipments retrieves a paginated list of shipments.
func (s *ShipmentService) ListShipments(ctx context.Context, organizationID string, status *domain.ShipmentStatus, limit, offset int, requestingUserID string) ([]domain.Shipment, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	shipments, total, err := s.shipmentRepo.ListShipments(ctx, organizationID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}
	return shipments, total, nil
}

// UpdateShipment edits a draft shipment and recomputes the total cost.
func (s *ShipmentService) UpdateShipment(ctx context.Context, organizationID, shipmentID string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, []domain.ShipmentItem, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}

	shipment, err := s.shipmentRepo.FindShipmentByID(ctx, organizationID, shipmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get shipment for update: %w", err)
	}
	if shipment.IsFinalized() {
		return nil, nil, fmt.Errorf("%w: shipment %s", apperrors.ErrDocumentFinalized, shipment.ShipmentNumber)
	}

	if req.Carrier != nil {
		shipment.Carrier = *req.Carrier
	}
	if req.TrackingNumber != nil {
		shipment.TrackingNumber = *req.TrackingNumber
	}
	if req.ShippingCostMinorUnits != nil {
		shipment.ShippingCostMinorUnits = *req.ShippingCostMinorUnits
	}
	if req.InsuranceCostMinorUnits != nil {
		shipment.InsuranceCostMinorUnits = *req.InsuranceCostMinorUnits
	}
	if req.OtherCostsMinorUnits != nil {
		shipment.OtherCostsMinorUnits = *req.OtherCostsMinorUnits
	}
	if req.EstimatedDeparture != nil {
		shipment.EstimatedDeparture = req.EstimatedDeparture
	}
	if req.EstimatedArrival != nil {
		shipment.EstimatedArrival = req.EstimatedArrival
	}
	if req.Notes != nil {
		shipment.Notes = *req.Notes
	}

	items, err := s.shipmentRepo.FindShipmentItems(ctx, shipmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get shipment items for update: %w", err)
	}
	if req.Items != nil {
		items = buildShipmentItems(shipmentID, req.Items)
		if err := s.shipmentRepo.ReplaceShipmentItems(ctx, shipmentID, items); err != nil {
			return nil, nil, fmt.Errorf("failed to replace shipment items: %w", err)
		}
	}

	recalculateShipmentCost(shipment)
	shipment.LastUpdatedAt = time.Now()
	shipment.LastUpdatedBy = requestingUserID
	if err := s.shipmentRepo.UpdateShipment(ctx, *shipment); err != nil {
		return nil, nil, fmt.Errorf("failed to update shipment: %w", err)
	}
	return shipment, items, nil
}

// UpdateShipmentStatus advances the shipment lifecycle. Confirming locks the
// base-currency rate and freezes costs.
func (s *ShipmentService) UpdateShipmentStatus(ctx context.Context, organizationID, shipmentID string, status domain.ShipmentStatus, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	shipment, err := s.shipmentRepo.FindShipmentByID(ctx, organizationID, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment for status update: %w", err)
	}

	valid := map[domain.ShipmentStatus]domain.ShipmentStatus{
		domain.ShipmentDraft:     domain.ShipmentConfirmed,
		domain.ShipmentConfirmed: domain.ShipmentInTransit,
		domain.ShipmentInTransit: domain.ShipmentDelivered,
	}
	if next, ok := valid[shipment.Status]; !ok || next != status {
		return nil, fmt.Errorf("%w: shipment %s cannot move from %s to %s", apperrors.ErrValidation, shipment.ShipmentNumber, shipment.Status, status)
	}

	now := time.Now()
	var confirmedItems []domain.ShipmentItem
	switch status {
	case domain.ShipmentConfirmed:
		items, err := s.shipmentRepo.FindShipmentItems(ctx, shipmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get shipment items for confirmation: %w", err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: shipment %s has no items", apperrors.ErrValidation, shipment.ShipmentNumber)
		}
		confirmedItems = items

		rate, rateDate, err := s.rateService.GetConversionRate(ctx, shipment.CurrencyCode, s.baseCurrencyCode, now)
		if err != nil {
			return nil, err
		}
		totalBase, err := trade.ConvertTotal(shipment.TotalCostMinorUnits, rate)
		if err != nil {
			return nil, fmt.Errorf("failed to convert shipment cost to base currency: %w", err)
		}
		shipment.LockedExchangeRate = &rate
		shipment.LockedExchangeRateDate = &rateDate
		shipment.TotalCostBaseCurrencyMinor = &totalBase
		shipment.ConfirmedAt = &now
		shipment.ConfirmedBy = requestingUserID
	case domain.ShipmentDelivered:
		shipment.DeliveredAt = &now
	}

	shipment.Status = status
	shipment.LastUpdatedAt = now
	shipment.LastUpdatedBy = requestingUserID
	if err := s.shipmentRepo.UpdateShipment(ctx, *shipment); err != nil {
		return nil, fmt.Errorf("failed to update shipment status: %w", err)
	}

	if status == domain.ShipmentConfirmed && s.invoiceService != nil {
		if err := s.generateCommercialInvoice(ctx, shipment, confirmedItems, requestingUserID); err != nil {
			logger.Error("Failed to draft commercial invoice for confirmed shipment",
				slog.String("error", err.Error()),
				slog.String("shipment_id", shipmentID),
			)
		}
	}

	logger.Info("Shipment status updated", slog.String("shipment_id", shipmentID), slog.String("status", string(status)))
	return shipment, nil
}

// generateCommercialInvoice drafts the commercial invoice for a confirmed
// shipment, pricing the shipped quantities from the purchase order lines.
func (s *ShipmentService) generateCommercialInvoice(ctx context.Context, shipment *domain.Shipment, items []domain.ShipmentItem, creatorUserID string) error {
	po, err := s.poRepo.FindPurchaseOrderByID(ctx, shipment.OrganizationID, shipment.PurchaseOrderID)
	if err != nil {
		return fmt.Errorf("failed to get purchase order for invoice: %w", err)
	}
	poItems, err := s.poRepo.FindPurchaseOrderItems(ctx, shipment.PurchaseOrderID)
	if err != nil {
		return fmt.Errorf("failed to get purchase order items for invoice: %w", err)
	}
	pricesByItem := make(map[string]int64, len(poItems))
	for _, poItem := range poItems {
		pricesByItem[poItem.PurchaseOrderItemID] = poItem.UnitPriceMinorUnits
	}

	invoiceItems := make([]dto.InvoiceItemRequest, len(items))
	for i, item := range items {
		invoiceItems[i] = dto.InvoiceItemRequest{
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			UnitPriceMinorUnits: pricesByItem[item.PurchaseOrderItemID],
		}
	}

	_, _, err = s.invoiceService.CreateInvoice(ctx, shipment.OrganizationID, dto.CreateInvoiceRequest{
		Kind:             string(domain.InvoiceCommercial),
		ShipmentID:       &shipment.ShipmentID,
		PurchaseOrderID:  &shipment.PurchaseOrderID,
		CounterpartyName: po.SupplierName,
		CurrencyCode:     po.CurrencyCode,
		Items:            invoiceItems,
	}, creatorUserID)
	return err
}
