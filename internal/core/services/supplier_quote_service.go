package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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

var oneHundred = decimal.NewFromInt(100)

// SupplierQuoteService registers and reads supplier quotes. Registration is
// where commission is applied and the conversion rate to the RFQ currency is
// locked; after that the quote's money fields never change.
type SupplierQuoteService struct {
	quoteRepo   portsrepo.SupplierQuoteRepositoryFacade
	rfqRepo     portsrepo.RFQRepositoryFacade
	rateService portssvc.ExchangeRateReaderSvc
	authorizer  portssvc.OrganizationAuthorizerSvc
}

// NewSupplierQuoteService creates a new SupplierQuoteService.
func NewSupplierQuoteService(quoteRepo portsrepo.SupplierQuoteRepositoryFacade, rfqRepo portsrepo.RFQRepositoryFacade, rateService portssvc.ExchangeRateReaderSvc, authorizer portssvc.OrganizationAuthorizerSvc) *SupplierQuoteService {
	return &SupplierQuoteService{
		quoteRepo:   quoteRepo,
		rfqRepo:     rfqRepo,
		rateService: rateService,
		authorizer:  authorizer,
	}
}

var _ portssvc.SupplierQuoteSvcFacade = (*SupplierQuoteService)(nil)

// applyCommission returns the after-commission unit price for an embedded
// commission quote, rounded half up. Separate commission leaves unit prices
// untouched.
func applyCommission(unitPriceMinorUnits int64, commissionType domain.CommissionType, commissionPercent decimal.Decimal) (int64, error) {
	if commissionType != domain.CommissionEmbedded || commissionPercent.IsZero() {
		return unitPriceMinorUnits, nil
	}
	factor := decimal.NewFromInt(1).Add(commissionPercent.Div(oneHundred))
	return money.Convert(unitPriceMinorUnits, factor)
}

// RegisterSupplierQuote records a supplier's quote against an open RFQ.
func (s *SupplierQuoteService) RegisterSupplierQuote(ctx context.Context, organizationID, rfqID string, req dto.CreateSupplierQuoteRequest, creatorUserID string) (*domain.SupplierQuote, []domain.SupplierQuoteItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	rfq, err := s.rfqRepo.FindRFQByID(ctx, organizationID, rfqID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get RFQ for quote registration: %w", err)
	}
	if rfq.Status != domain.RFQOpen {
		return nil, nil, fmt.Errorf("%w: RFQ %s is not collecting quotes", apperrors.ErrValidation, rfq.RFQNumber)
	}

	// Commission defaults come from the RFQ.
	commissionType := rfq.CommissionType
	if req.CommissionType != nil {
		commissionType = domain.CommissionType(*req.CommissionType)
	}
	commissionPercent := rfq.CommissionPercent
	if req.CommissionPercent != nil {
		commissionPercent = *req.CommissionPercent
	}
	if commissionPercent.IsNegative() {
		return nil, nil, fmt.Errorf("%w: commission percent cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	priorQuotes, err := s.quoteRepo.CountQuotesForSupplierRFQ(ctx, organizationID, rfqID, req.SupplierName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count quotes for revision numbering: %w", err)
	}
	revision := priorQuotes + 1

	quote := domain.SupplierQuote{
		SupplierQuoteID:   uuid.NewString(),
		OrganizationID:    organizationID,
		RFQID:             rfqID,
		SupplierName:      req.SupplierName,
		QuoteNumber:       numbering.SupplierQuoteNumber(req.SupplierName, rfq.RFQNumber, revision),
		Revision:          revision,
		CurrencyCode:      req.CurrencyCode,
		CommissionType:    commissionType,
		CommissionPercent: commissionPercent,
		ValidUntil:        req.ValidUntil,
		Status:            domain.QuoteReceived,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := make([]domain.SupplierQuoteItem, len(req.Items))
	var totalBefore, totalAfter int64
	for i, reqItem := range req.Items {
		unitAfter, err := applyCommission(reqItem.UnitPriceMinorUnits, commissionType, commissionPercent)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to apply commission to %s: %w", reqItem.ProductName, err)
		}
		lineBefore := money.MulQuantity(reqItem.Quantity, reqItem.UnitPriceMinorUnits)
		lineAfter := money.MulQuantity(reqItem.Quantity, unitAfter)
		items[i] = domain.SupplierQuoteItem{
			SupplierQuoteItemID:                  uuid.NewString(),
			SupplierQuoteID:                      quote.SupplierQuoteID,
			RFQItemID:                            reqItem.RFQItemID,
			ProductName:                          reqItem.ProductName,
			Quantity:                             reqItem.Quantity,
			UnitPriceBeforeCommissionMinorUnits:  reqItem.UnitPriceMinorUnits,
			UnitPriceAfterCommissionMinorUnits:   unitAfter,
			TotalPriceBeforeCommissionMinorUnits: lineBefore,
			TotalPriceAfterCommissionMinorUnits:  lineAfter,
		}
		totalBefore += lineBefore
		totalAfter += lineAfter
	}

	// Separate commission is added once, on the document total.
	if commissionType == domain.CommissionSeparate && !commissionPercent.IsZero() {
		commission, err := money.Convert(totalBefore, commissionPercent.Div(oneHundred))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute separate commission: %w", err)
		}
		quote.CommissionAmountMinorUnits = commission
		totalAfter = totalBefore + commission
	} else {
		quote.CommissionAmountMinorUnits = totalAfter - totalBefore
	}
	quote.TotalBeforeCommissionMinorUnits = totalBefore
	quote.TotalAfterCommissionMinorUnits = totalAfter

	// Lock the conversion rate to the RFQ currency once, at registration.
	if quote.CurrencyCode != rfq.CurrencyCode {
		rate, rateDate, err := s.rateService.GetConversionRate(ctx, quote.CurrencyCode, rfq.CurrencyCode, now)
		if err != nil {
			return nil, nil, err
		}
		converted, err := trade.ConvertTotal(totalAfter, rate)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert quote total: %w", err)
		}
		quote.LockedExchangeRate = &rate
		quote.LockedExchangeRateDate = &rateDate
		quote.ConvertedTotalMinorUnits = &converted
		for i := range items {
			lineConverted, err := money.Convert(items[i].TotalPriceAfterCommissionMinorUnits, rate)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to convert quote line: %w", err)
			}
			items[i].ConvertedPriceMinorUnits = &lineConverted
		}
	} else {
		one := decimal.NewFromInt(1)
		quote.LockedExchangeRate = &one
		quote.LockedExchangeRateDate = &now
		quote.ConvertedTotalMinorUnits = &totalAfter
		for i := range items {
			converted := items[i].TotalPriceAfterCommissionMinorUnits
			items[i].ConvertedPriceMinorUnits = &converted
		}
	}

	if err := s.quoteRepo.SaveSupplierQuote(ctx, quote, items); err != nil {
		logger.Error("Failed to save supplier quote", slog.String("error", err.Error()), slog.String("quote_number", quote.QuoteNumber))
		return nil, nil, fmt.Errorf("failed to register supplier quote: %w", err)
	}

	// Track the cheapest converted total on the RFQ.
	if quote.ConvertedTotalMinorUnits != nil &&
		(rfq.TotalAmountMinorUnits == 0 || *quote.ConvertedTotalMinorUnits < rfq.TotalAmountMinorUnits) {
		rfq.TotalAmountMinorUnits = *quote.ConvertedTotalMinorUnits
		rfq.LastUpdatedAt = now
		rfq.LastUpdatedBy = creatorUserID
		if err := s.rfqRepo.UpdateRFQ(ctx, *rfq); err != nil {
			logger.Warn("Failed to update RFQ best total", slog.String("error", err.Error()), slog.String("rfq_id", rfqID))
		}
	}

	logger.Info("Supplier quote registered",
		slog.String("quote_id", quote.SupplierQuoteID),
		slog.String("quote_number", quote.QuoteNumber),
		slog.Int("revision", revision),
	)
	return &quote, items, nil
}

// GetSupplierQuoteByID retrieves a supplier quote with its items.
func (s *SupplierQuoteService) GetSupplierQuoteByID(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.SupplierQuote, []domain.SupplierQuoteItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	quote, err := s.quoteRepo.FindSupplierQuoteByID(ctx, organizationID, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get supplier quote: %w", err)
	}
	items, err := s.quoteRepo.FindSupplierQuoteItems(ctx, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get supplier quote items: %w", err)
	}
	return quote, items, nil
}

// ListSupplierQuotesByRFQ lists all quotes against an RFQ.
func (s *SupplierQuoteService) ListSupplierQuotesByRFQ(ctx context.Context, organizationID, rfqID, requestingUserID string) ([]domain.SupplierQuote, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	quotes, err := s.quoteRepo.ListSupplierQuotesByRFQ(ctx, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier quotes: %w", err)
	}
	return quotes, nil
}
