package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
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

// RFQService handles business logic for requests for quotation.
type RFQService struct {
	rfqRepo           portsrepo.RFQRepositoryFacade
	quoteRepo         portsrepo.SupplierQuoteRepositoryFacade
	customerQuoteRepo portsrepo.CustomerQuoteReader
	poRepo            portsrepo.PurchaseOrderReader
	shipmentRepo      portsrepo.ShipmentReader
	rateService       portssvc.ExchangeRateReaderSvc
	authorizer        portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode  string
}

// NewRFQService creates a new RFQService.
func NewRFQService(
	rfqRepo portsrepo.RFQRepositoryFacade,
	quoteRepo portsrepo.SupplierQuoteRepositoryFacade,
	customerQuoteRepo portsrepo.CustomerQuoteReader,
	poRepo portsrepo.PurchaseOrderReader,
	shipmentRepo portsrepo.ShipmentReader,
	rateService portssvc.ExchangeRateReaderSvc,
	authorizer portssvc.OrganizationAuthorizerSvc,
	baseCurrencyCode string,
) *RFQService {
	return &RFQService{
		rfqRepo:           rfqRepo,
		quoteRepo:         quoteRepo,
		customerQuoteRepo: customerQuoteRepo,
		poRepo:            poRepo,
		shipmentRepo:      shipmentRepo,
		rateService:       rateService,
		authorizer:        authorizer,
		baseCurrencyCode:  baseCurrencyCode,
	}
}

var _ portssvc.RFQSvcFacade = (*RFQService)(nil)

// CreateRFQ creates an RFQ with a generated [CLIENT]-[YY]-[NNNN] number.
func (s *RFQService) CreateRFQ(ctx context.Context, organizationID string, req dto.CreateRFQRequest, creatorUserID string) (*domain.RFQ, []domain.RFQItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	seq, err := s.rfqRepo.CountRFQsForClientYear(ctx, organizationID, req.ClientCode, now.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count RFQs for numbering: %w", err)
	}

	rfq := domain.RFQ{
		RFQID:             uuid.NewString(),
		OrganizationID:    organizationID,
		RFQNumber:         numbering.RFQNumber(req.ClientCode, now, seq+1),
		ClientName:        req.ClientName,
		ClientCode:        req.ClientCode,
		CurrencyCode:      req.CurrencyCode,
		CommissionPercent: req.CommissionPercent,
		CommissionType:    domain.CommissionType(req.CommissionType),
		Status:            domain.RFQOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := make([]domain.RFQItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.RFQItem{
			RFQItemID:                 uuid.NewString(),
			RFQID:                     rfq.RFQID,
			ProductName:               item.ProductName,
			SKU:                       item.SKU,
			Quantity:                  item.Quantity,
			TargetUnitPriceMinorUnits: item.TargetUnitPriceMinorUnits,
		}
	}

	if err := s.rfqRepo.SaveRFQ(ctx, rfq, items); err != nil {
		logger.Error("Failed to save RFQ", slog.String("error", err.Error()), slog.String("rfq_number", rfq.RFQNumber))
		return nil, nil, fmt.Errorf("failed to create RFQ: %w", err)
	}

	logger.Info("RFQ created", slog.String("rfq_id", rfq.RFQID), slog.String("rfq_number", rfq.RFQNumber))
	return &rfq, items, nil
}

// GetRFQByID retrieves an RFQ with its items.
func (s *RFQService) GetRFQByID(ctx context.Context, organizationID, rfqID, requestingUserID string) (*domain.RFQ, []domain.RFQItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	rfq, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get RFQ: %w", err)
	}
	items, err := s.rfqRepo.FindRFQItems(ctx, rfqID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get RFQ items: %w", err)
	}
	return rfq, items, nil
}

// ListRFQs retrieves a paginated list of RFQs.
func (s *RFQService) ListRFQs(ctx context.Context, organizationID string, status *domain.RFQStatus, limit, offset int, requestingUserID string) ([]domain.RFQ, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	rfqs, total, err := s.rfqRepo.ListRFQs(ctx, organizationID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list RFQs: %w", err)
	}
	return rfqs, total, nil
}

// CompareQuotes returns the RFQ's supplier quotes ordered by converted total,
// cheapest first. Quotes without a locked rate sort last.
func (s *RFQService) CompareQuotes(ctx context.Context, organizationID, rfqID, requestingUserID string) ([]domain.SupplierQuote, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	if _, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID); err != nil {
		return nil, fmt.Errorf("failed to get RFQ for comparison: %w", err)
	}

	quotes, err := s.quoteRepo.ListSupplierQuotesByRFQ(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes for comparison: %w", err)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i].ConvertedTotalMinorUnits, quotes[j].ConvertedTotalMinorUnits
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return quotes, nil
}

// GetRFQMargin computes the RFQ's realized margin in the base currency.
// Revenue is the approved customer quote total, purchase costs the totals of
// the non-cancelled purchase orders raised against the RFQ and project
// expenses the costs of their shipments. Amounts with a locked exchange rate
// use the locked base figure; the rest convert at the current rate.
func (s *RFQService) GetRFQMargin(ctx context.Context, organizationID, rfqID, requestingUserID string) (*dto.RFQMarginResponse, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	rfq, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to get RFQ for margin: %w", err)
	}

	now := time.Now()

	var revenue int64
	hasRevenue := false
	cq, err := s.customerQuoteRepo.FindApprovedCustomerQuoteByRFQ(ctx, organizationID, rfqID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get customer quote for margin: %w", err)
	}
	if cq != nil {
		hasRevenue = true
		revenue, err = s.toBaseCurrency(ctx, cq.TotalAmountMinorUnits, cq.CurrencyCode, cq.TotalBaseCurrencyMinorUnits, now)
		if err != nil {
			return nil, fmt.Errorf("failed to convert customer quote %s: %w", cq.QuoteNumber, err)
		}
	}

	pos, err := s.poRepo.ListPurchaseOrdersByRFQ(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders for margin: %w", err)
	}
	var purchaseCosts int64
	for _, po := range pos {
		if po.Status == domain.POCancelled {
			continue
		}
		amount, err := s.toBaseCurrency(ctx, po.TotalAmountMinorUnits, po.CurrencyCode, po.TotalBaseCurrencyMinorUnits, now)
		if err != nil {
			return nil, fmt.Errorf("failed to convert purchase order %s: %w", po.PONumber, err)
		}
		purchaseCosts += amount
	}

	shipments, err := s.shipmentRepo.ListShipmentsByRFQ(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments for margin: %w", err)
	}
	var expenses int64
	for _, shipment := range shipments {
		amount, err := s.toBaseCurrency(ctx, shipment.TotalCostMinorUnits, shipment.CurrencyCode, shipment.TotalCostBaseCurrencyMinor, now)
		if err != nil {
			return nil, fmt.Errorf("failed to convert shipment %s: %w", shipment.ShipmentNumber, err)
		}
		expenses += amount
	}

	margin := trade.ComputeMargin(revenue, purchaseCosts, expenses)
	return &dto.RFQMarginResponse{
		RFQID:                     rfq.RFQID,
		RFQNumber:                 rfq.RFQNumber,
		BaseCurrencyCode:          s.baseCurrencyCode,
		RevenueMinorUnits:         margin.RevenueMinorUnits,
		PurchaseCostsMinorUnits:   margin.PurchaseCostsMinorUnits,
		ProjectExpensesMinorUnits: margin.ExpensesMinorUnits,
		MarginMinorUnits:          margin.MarginMinorUnits,
		MarginPercent:             margin.MarginPercent,
		HasApprovedCustomerQuote:  hasRevenue,
	}, nil
}

// toBaseCurrency prefers a locked base-currency amount over a fresh
// conversion.
func (s *RFQService) toBaseCurrency(ctx context.Context, amountMinorUnits int64, currencyCode string, lockedBaseMinorUnits *int64, onDate time.Time) (int64, error) {
	if lockedBaseMinorUnits != nil {
		return *lockedBaseMinorUnits, nil
	}
	if currencyCode == s.baseCurrencyCode {
		return amountMinorUnits, nil
	}
	rate, _, err := s.rateService.GetConversionRate(ctx, currencyCode, s.baseCurrencyCode, onDate)
	if err != nil {
		return 0, err
	}
	return money.Convert(amountMinorUnits, rate)
}

// UpdateRFQStatus moves an RFQ through its lifecycle.
func (s *RFQService) UpdateRFQStatus(ctx context.Context, organizationID, rfqID string, status domain.RFQStatus, requestingUserID string) (*domain.RFQ, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	rfq, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to get RFQ for status update: %w", err)
	}
	if rfq.Status == domain.RFQClosed || rfq.Status == domain.RFQCancelled {
		return nil, fmt.Errorf("%w: RFQ %s is already %s", apperrors.ErrValidation, rfq.RFQNumber, rfq.Status)
	}

	rfq.Status = status
	rfq.LastUpdatedAt = time.Now()
	rfq.LastUpdatedBy = requestingUserID
	if err := s.rfqRepo.UpdateRFQ(ctx, *rfq); err != nil {
		return nil, fmt.Errorf("failed to update RFQ status: %w", err)
	}
	return rfq, nil
}

// SelectQuote marks a supplier quote as the RFQ winner, rejects the rest and
// closes the RFQ.
func (s *RFQService) SelectQuote(ctx context.Context, organizationID, rfqID, supplierQuoteID, requestingUserID string) (*domain.RFQ, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	rfq, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to get RFQ for selection: %w", err)
	}
	if rfq.Status != domain.RFQOpen {
		return nil, fmt.Errorf("%w: RFQ %s is not open for selection", apperrors.ErrValidation, rfq.RFQNumber)
	}

	quotes, err := s.quoteRepo.ListSupplierQuotesByRFQ(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes for selection: %w", err)
	}

	// Validate the winner before persisting anything so a bad selection
	// leaves every quote untouched.
	var selected *domain.SupplierQuote
	for i := range quotes {
		if quotes[i].SupplierQuoteID == supplierQuoteID {
			selected = &quotes[i]
			break
		}
	}
	if selected == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("supplier quote %s not found on RFQ %s", supplierQuoteID, rfqID))
	}
	if selected.IsExpired() {
		return nil, fmt.Errorf("%w: quote %s has expired", apperrors.ErrValidation, selected.QuoteNumber)
	}

	now := time.Now()
	selected.Status = domain.QuoteSelected
	selected.LastUpdatedAt = now
	selected.LastUpdatedBy = requestingUserID
	if err := s.quoteRepo.UpdateSupplierQuote(ctx, *selected); err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", selected.SupplierQuoteID, err)
	}
	for i := range quotes {
		q := &quotes[i]
		if q.SupplierQuoteID == supplierQuoteID || q.Status == domain.QuoteRejected {
			continue
		}
		q.Status = domain.QuoteRejected
		q.LastUpdatedAt = now
		q.LastUpdatedBy = requestingUserID
		if err := s.quoteRepo.UpdateSupplierQuote(ctx, *q); err != nil {
			return nil, fmt.Errorf("failed to update quote %s: %w", q.SupplierQuoteID, err)
		}
	}

	rfq.Status = domain.RFQClosed
	rfq.SelectedQuoteID = &selected.SupplierQuoteID
	if selected.ConvertedTotalMinorUnits != nil {
		rfq.TotalAmountMinorUnits = *selected.ConvertedTotalMinorUnits
	}
	rfq.LastUpdatedAt = now
	rfq.LastUpdatedBy = requestingUserID
	if err := s.rfqRepo.UpdateRFQ(ctx, *rfq); err != nil {
		return nil, fmt.Errorf("failed to close RFQ after selection: %w", err)
	}

	logger.Info("Supplier quote selected", slog.String("rfq_id", rfqID), slog.String("quote_id", supplierQuoteID))
	return rfq, nil
}
