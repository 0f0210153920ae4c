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
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/numbering"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/trade"
)

// PurchaseOrderService handles purchase order lifecycle and totals. Draft
// orders recalculate freely; sending locks the base-currency rate and
// freezes every money field. Later corrections clone into a new revision.
type PurchaseOrderService struct {
	poRepo           portsrepo.PurchaseOrderRepositoryFacade
	quoteRepo        portsrepo.SupplierQuoteRepositoryFacade
	rfqRepo          portsrepo.RFQRepositoryFacade
	rateService      portssvc.ExchangeRateReaderSvc
	financeService   portssvc.FinanceWriterSvc
	authorizer       portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode string
}

// NewPurchaseOrderService creates a new PurchaseOrderService. financeService
// may be nil in contexts that never confirm orders.
func NewPurchaseOrderService(poRepo portsrepo.PurchaseOrderRepositoryFacade, quoteRepo portsrepo.SupplierQuoteRepositoryFacade, rfqRepo portsrepo.RFQRepositoryFacade, rateService portssvc.ExchangeRateReaderSvc, financeService portssvc.FinanceWriterSvc, authorizer portssvc.OrganizationAuthorizerSvc, baseCurrencyCode string) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:           poRepo,
		quoteRepo:        quoteRepo,
		rfqRepo:          rfqRepo,
		rateService:      rateService,
		financeService:   financeService,
		authorizer:       authorizer,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.PurchaseOrderSvcFacade = (*PurchaseOrderService)(nil)

// roundingToleranceMinorUnits is the allowed drift between a persisted
// document total and its recomputation before the read path logs a warning.
const roundingToleranceMinorUnits = int64(1)

// recalculateTotals recomputes the PO money fields from its items and fees.
func recalculateTotals(po *domain.PurchaseOrder, items []domain.PurchaseOrderItem) {
	lineItems := make([]trade.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = trade.LineItem{Quantity: item.Quantity, UnitPriceMinorUnits: item.UnitPriceMinorUnits}
	}
	totals := trade.Recalculate(lineItems, trade.Fees{
		DiscountMinorUnits:  po.DiscountAmountMinorUnits,
		TaxMinorUnits:       po.TaxAmountMinorUnits,
		ShippingMinorUnits:  po.ShippingCostMinorUnits,
		ShippingIncluded:    po.ShippingIncludedInPrice,
		InsuranceMinorUnits: po.InsuranceCostMinorUnits,
		InsuranceIncluded:   po.InsuranceIncludedInPrice,
		OtherMinorUnits:     po.OtherCostsMinorUnits,
	})
	po.SubtotalMinorUnits = totals.SubtotalMinorUnits
	po.TotalAmountMinorUnits = totals.TotalMinorUnits
}

func buildPOItems(poID string, reqItems []dto.PurchaseOrderItemRequest) []domain.PurchaseOrderItem {
	items := make([]domain.PurchaseOrderItem, len(reqItems))
	for i, reqItem := range reqItems {
		items[i] = domain.PurchaseOrderItem{
			PurchaseOrderItemID: uuid.NewString(),
			PurchaseOrderID:     poID,
			ProductName:         reqItem.ProductName,
			SKU:                 reqItem.SKU,
			Quantity:            reqItem.Quantity,
			UnitPriceMinorUnits: reqItem.UnitPriceMinorUnits,
			TotalMinorUnits:     money.MulQuantity(reqItem.Quantity, reqItem.UnitPriceMinorUnits),
		}
	}
	return items
}

// CreatePurchaseOrder drafts a PO with a generated PO-[YYYYMM]-[NNNN] number.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, organizationID string, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	seq, err := s.poRepo.CountPurchaseOrdersForMonth(ctx, organizationID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count POs for numbering: %w", err)
	}

	po := domain.PurchaseOrder{
		PurchaseOrderID:          uuid.NewString(),
		OrganizationID:           organizationID,
		PONumber:                 numbering.PurchaseOrderNumber(now, seq+1),
		Revision:                 1,
		SupplierQuoteID:          req.SupplierQuoteID,
		SupplierName:             req.SupplierName,
		CurrencyCode:             req.CurrencyCode,
		Status:                   domain.PODraft,
		Incoterm:                 req.Incoterm,
		DeliveryAddress:          req.DeliveryAddress,
		ShippingCostMinorUnits:   req.ShippingCostMinorUnits,
		ShippingIncludedInPrice:  req.ShippingIncludedInPrice,
		InsuranceCostMinorUnits:  req.InsuranceCostMinorUnits,
		InsuranceIncludedInPrice: req.InsuranceIncludedInPrice,
		OtherCostsMinorUnits:     req.OtherCostsMinorUnits,
		TaxAmountMinorUnits:      req.TaxAmountMinorUnits,
		DiscountAmountMinorUnits: req.DiscountAmountMinorUnits,
		Notes:                    req.Notes,
		InternalNotes:            req.InternalNotes,
		ExpectedDeliveryDate:     req.ExpectedDeliveryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := buildPOItems(po.PurchaseOrderID, req.Items)
	recalculateTotals(&po, items)
	if po.TotalAmountMinorUnits < 0 {
		logger.Warn("Purchase order drafted with negative total", slog.String("po_number", po.PONumber), slog.Int64("total", po.TotalAmountMinorUnits))
	}

	if err := s.poRepo.SavePurchaseOrder(ctx, po, items); err != nil {
		logger.Error("Failed to save purchase order", slog.String("error", err.Error()), slog.String("po_number", po.PONumber))
		return nil, nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	logger.Info("Purchase order drafted", slog.String("po_id", po.PurchaseOrderID), slog.String("po_number", po.PONumber))
	return &po, items, nil
}

// CreateFromSupplierQuote drafts a PO from a selected supplier quote,
// carrying over its items and after-commission prices.
func (s *PurchaseOrderService) CreateFromSupplierQuote(ctx context.Context, organizationID, supplierQuoteID, creatorUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	quote, err := s.quoteRepo.FindSupplierQuoteByID(ctx, organizationID, supplierQuoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get supplier quote for PO: %w", err)
	}
	if quote.Status != domain.QuoteSelected {
		return nil, nil, fmt.Errorf("%w: quote %s was not selected", apperrors.ErrValidation, quote.QuoteNumber)
	}
	quoteItems, err := s.quoteRepo.FindSupplierQuoteItems(ctx, supplierQuoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get supplier quote items for PO: %w", err)
	}

	reqItems := make([]dto.PurchaseOrderItemRequest, len(quoteItems))
	for i, qi := range quoteItems {
		reqItems[i] = dto.PurchaseOrderItemRequest{
			ProductName:         qi.ProductName,
			Quantity:            qi.Quantity,
			UnitPriceMinorUnits: qi.UnitPriceAfterCommissionMinorUnits,
		}
	}

	po, items, err := s.CreatePurchaseOrder(ctx, organizationID, dto.CreatePurchaseOrderRequest{
		SupplierQuoteID: &supplierQuoteID,
		SupplierName:    quote.SupplierName,
		CurrencyCode:    quote.CurrencyCode,
		Items:           reqItems,
	}, creatorUserID)
	if err != nil {
		return nil, nil, err
	}

	po.RFQID = &quote.RFQID
	po.LastUpdatedAt = time.Now()
	po.LastUpdatedBy = creatorUserID
	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po); err != nil {
		return nil, nil, fmt.Errorf("failed to link PO to RFQ: %w", err)
	}
	return po, items, nil
}

// GetPurchaseOrderByID retrieves a PO with its items.
func (s *PurchaseOrderService) GetPurchaseOrderByID(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	items, err := s.poRepo.FindPurchaseOrderItems(ctx, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order items: %w", err)
	}

	// Drift between the persisted total and a recomputation is a soft
	// diagnostic: the persisted figure stays authoritative, the warning
	// flags the document for review.
	recomputed := *po
	recalculateTotals(&recomputed, items)
	if !trade.CheckRoundingConsistency(po.TotalAmountMinorUnits, recomputed.TotalAmountMinorUnits, roundingToleranceMinorUnits) {
		middleware.GetLoggerFromCtx(ctx).Warn("Purchase order total drifted from recomputed value",
			slog.String("po_number", po.PONumber),
			slog.Int64("persisted_total", po.TotalAmountMinorUnits),
			slog.Int64("recomputed_total", recomputed.TotalAmountMinorUnits))
	}
	return po, items, nil
}

// ListPurchaseOrders retrieves a paginated list of POs.
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, organizationID string, status *domain.PurchaseOrderStatus, limit, offset int, requestingUserID string) ([]domain.PurchaseOrder, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	pos, total, err := s.poRepo.ListPurchaseOrders(ctx, organizationID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return pos, total, nil
}

// UpdatePurchaseOrder edits a draft PO and recomputes totals.
func (s *PurchaseOrderService) UpdatePurchaseOrder(ctx context.Context, organizationID, poID string, req dto.UpdatePurchaseOrderRequest, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order for update: %w", err)
	}
	if po.IsFinalized() {
		return nil, nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrDocumentFinalized, po.PONumber)
	}

	if req.Incoterm != nil {
		po.Incoterm = *req.Incoterm
	}
	if req.DeliveryAddress != nil {
		po.DeliveryAddress = *req.DeliveryAddress
	}
	if req.ShippingCostMinorUnits != nil {
		po.ShippingCostMinorUnits = *req.ShippingCostMinorUnits
	}
	if req.ShippingIncludedInPrice != nil {
		po.ShippingIncludedInPrice = *req.ShippingIncludedInPrice
	}
	if req.InsuranceCostMinorUnits != nil {
		po.InsuranceCostMinorUnits = *req.InsuranceCostMinorUnits
	}
	if req.InsuranceIncludedInPrice != nil {
		po.InsuranceIncludedInPrice = *req.InsuranceIncludedInPrice
	}
	if req.OtherCostsMinorUnits != nil {
		po.OtherCostsMinorUnits = *req.OtherCostsMinorUnits
	}
	if req.TaxAmountMinorUnits != nil {
		po.TaxAmountMinorUnits = *req.TaxAmountMinorUnits
	}
	if req.DiscountAmountMinorUnits != nil {
		po.DiscountAmountMinorUnits = *req.DiscountAmountMinorUnits
	}
	if req.Notes != nil {
		po.Notes = *req.Notes
	}
	if req.InternalNotes != nil {
		po.InternalNotes = *req.InternalNotes
	}
	if req.ExpectedDeliveryDate != nil {
		po.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	}

	items, err := s.poRepo.FindPurchaseOrderItems(ctx, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order items for update: %w", err)
	}
	if req.Items != nil {
		items = buildPOItems(poID, req.Items)
		if err := s.poRepo.ReplacePurchaseOrderItems(ctx, poID, items); err != nil {
			return nil, nil, fmt.Errorf("failed to replace purchase order items: %w", err)
		}
	}

	recalculateTotals(po, items)
	po.LastUpdatedAt = time.Now()
	po.LastUpdatedBy = requestingUserID
	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po); err != nil {
		return nil, nil, fmt.Errorf("failed to update purchase order: %w", err)
	}
	return po, items, nil
}

// SendPurchaseOrder finalizes the PO: locks the base-currency rate, freezes
// totals and marks it sent.
func (s *PurchaseOrderService) SendPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order for sending: %w", err)
	}
	if po.IsFinalized() {
		return nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrDocumentFinalized, po.PONumber)
	}

	now := time.Now()
	rate, rateDate, err := s.rateService.GetConversionRate(ctx, po.CurrencyCode, s.baseCurrencyCode, now)
	if err != nil {
		return nil, err
	}
	totalBase, err := trade.ConvertTotal(po.TotalAmountMinorUnits, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert PO total to base currency: %w", err)
	}

	po.Status = domain.POSent
	po.SentAt = &now
	po.LockedExchangeRate = &rate
	po.LockedExchangeRateDate = &rateDate
	po.TotalBaseCurrencyMinorUnits = &totalBase
	po.LastUpdatedAt = now
	po.LastUpdatedBy = requestingUserID

	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po); err != nil {
		return nil, fmt.Errorf("failed to send purchase order: %w", err)
	}

	logger.Info("Purchase order sent",
		slog.String("po_id", poID),
		slog.String("po_number", po.PONumber),
		slog.String("locked_rate", rate.String()),
	)
	return po, nil
}

// ConfirmPurchaseOrder marks a sent PO as confirmed and opens the matching
// payable in the ledger.
func (s *PurchaseOrderService) ConfirmPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order for confirmation: %w", err)
	}
	if po.Status != domain.POSent {
		return nil, fmt.Errorf("%w: purchase order %s is not in sent state", apperrors.ErrValidation, po.PONumber)
	}

	now := time.Now()
	po.Status = domain.POConfirmed
	po.ConfirmedAt = &now
	po.LastUpdatedAt = now
	po.LastUpdatedBy = requestingUserID
	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po); err != nil {
		return nil, fmt.Errorf("failed to confirm purchase order: %w", err)
	}

	if s.financeService != nil {
		_, err := s.financeService.CreateTransaction(ctx, organizationID, dto.CreateTransactionRequest{
			Kind:             string(domain.Payable),
			Description:      fmt.Sprintf("Purchase order %s", po.PONumber),
			CounterpartyName: po.SupplierName,
			CurrencyCode:     po.CurrencyCode,
			AmountMinorUnits: po.TotalAmountMinorUnits,
			DueDate:          po.ExpectedDeliveryDate,
			DocumentType:     "purchase_order",
			DocumentID:       po.PurchaseOrderID,
		}, requestingUserID)
		if err != nil {
			logger.Error("Failed to open payable for confirmed PO", slog.String("error", err.Error()), slog.String("po_id", poID))
		}
	}

	logger.Info("Purchase order confirmed", slog.String("po_id", poID), slog.String("po_number", po.PONumber))
	return po, nil
}

// CancelPurchaseOrder cancels a PO that has not been confirmed.
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order for cancellation: %w", err)
	}
	if po.Status == domain.POConfirmed || po.Status == domain.POCancelled {
		return nil, fmt.Errorf("%w: purchase order %s cannot be cancelled from %s", apperrors.ErrValidation, po.PONumber, po.Status)
	}

	po.Status = domain.POCancelled
	po.LastUpdatedAt = time.Now()
	po.LastUpdatedBy = requestingUserID
	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po); err != nil {
		return nil, fmt.Errorf("failed to cancel purchase order: %w", err)
	}
	return po, nil
}

// ReviseFinalizedPurchaseOrder clones a finalized PO into a new draft
// revision; the original stays immutable.
func (s *PurchaseOrderService) ReviseFinalizedPurchaseOrder(ctx context.Context, organizationID, poID, requestingUserID string) (*domain.PurchaseOrder, []domain.PurchaseOrderItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}

	original, err := s.poRepo.FindPurchaseOrderByID(ctx, organizationID, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order for revision: %w", err)
	}
	if !original.IsFinalized() {
		return nil, nil, fmt.Errorf("%w: purchase order %s is still a draft", apperrors.ErrValidation, original.PONumber)
	}
	originalItems, err := s.poRepo.FindPurchaseOrderItems(ctx, poID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get purchase order items for revision: %w", err)
	}

	now := time.Now()
	revised := *original
	revised.PurchaseOrderID = uuid.NewString()
	revised.Revision = original.Revision + 1
	revised.Status = domain.PODraft
	// The clone renegotiates its own rate when it is sent.
	revised.LockedExchangeRate = nil
	revised.LockedExchangeRateDate = nil
	revised.TotalBaseCurrencyMinorUnits = nil
	revised.SentAt = nil
	revised.ConfirmedAt = nil
	revised.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	items := make([]domain.PurchaseOrderItem, len(originalItems))
	for i, item := range originalItems {
		items[i] = item
		items[i].PurchaseOrderItemID = uuid.NewString()
		items[i].PurchaseOrderID = revised.PurchaseOrderID
	}

	if err := s.poRepo.SavePurchaseOrder(ctx, revised, items); err != nil {
		return nil, nil, fmt.Errorf("failed to save PO revision: %w", err)
	}

	logger.Info("Purchase order revised",
		slog.String("original_po_id", poID),
		slog.String("new_po_id", revised.PurchaseOrderID),
		slog.Int("revision", revised.Revision),
	)
	return &revised, items, nil
}
