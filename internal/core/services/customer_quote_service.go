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

// CustomerQuoteService handles quotes presented to clients.
type CustomerQuoteService struct {
	quoteRepo        portsrepo.CustomerQuoteRepositoryFacade
	rateService      portssvc.ExchangeRateReaderSvc
	authorizer       portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode string
}

// NewCustomerQuoteService creates a new CustomerQuoteService.
func NewCustomerQuoteService(quoteRepo portsrepo.CustomerQuoteRepositoryFacade, rateService portssvc.ExchangeRateReaderSvc, authorizer portssvc.OrganizationAuthorizerSvc, baseCurrencyCode string) *CustomerQuoteService {
	return &CustomerQuoteService{
		quoteRepo:        quoteRepo,
		rateService:      rateService,
		authorizer:       authorizer,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.CustomerQuoteSvcFacade = (*CustomerQuoteService)(nil)

func buildCustomerQuoteItems(quoteID string, reqItems []dto.CustomerQuoteItemRequest) []domain.CustomerQuoteItem {
	items := make([]domain.CustomerQuoteItem, len(reqItems))
	for i, reqItem := range reqItems {
		items[i] = domain.CustomerQuoteItem{
			CustomerQuoteItemID: uuid.NewString(),
			CustomerQuoteID:     quoteID,
			ProductName:         reqItem.ProductName,
			Quantity:            reqItem.Quantity,
			UnitPriceMinorUnits: reqItem.UnitPriceMinorUnits,
			TotalMinorUnits:     money.MulQuantity(reqItem.Quantity, reqItem.UnitPriceMinorUnits),
		}
	}
	return items
}

func recalculateCustomerQuote(q *domain.CustomerQuote, items []domain.CustomerQuoteItem) {
	lineItems := make([]trade.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = trade.LineItem{Quantity: item.Quantity, UnitPriceMinorUnits: item.UnitPriceMinorUnits}
	}
	totals := trade.Recalculate(lineItems, trade.Fees{
		DiscountMinorUnits: q.DiscountAmountMinorUnits,
		TaxMinorUnits:      q.TaxAmountMinorUnits,
	})
	q.SubtotalMinorUnits = totals.SubtotalMinorUnits
	q.TotalAmountMinorUnits = totals.TotalMinorUnits
}

// CreateCustomerQuote drafts a quote with a generated CQ-[YYYY]-[NNNN] number.
func (s *CustomerQuoteService) CreateCustomerQuote(ctx context.Context, organizationID string, req dto.CreateCustomerQuoteRequest, creatorUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	seq, err := s.quoteRepo.CountCustomerQuotesForYear(ctx, organizationID, now.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count customer quotes for numbering: %w", err)
	}

	quote := domain.CustomerQuote{
		CustomerQuoteID:          uuid.NewString(),
		OrganizationID:           organizationID,
		QuoteNumber:              numbering.CustomerQuoteNumber(now, seq+1),
		RFQID:                    req.RFQID,
		ClientName:               req.ClientName,
		CurrencyCode:             req.CurrencyCode,
		Status:                   domain.CQDraft,
		ValidUntil:               req.ValidUntil,
		DiscountAmountMinorUnits: req.DiscountAmountMinorUnits,
		TaxAmountMinorUnits:      req.TaxAmountMinorUnits,
		Notes:                    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := buildCustomerQuoteItems(quote.CustomerQuoteID, req.Items)
	recalculateCustomerQuote(&quote, items)

	if err := s.quoteRepo.SaveCustomerQuote(ctx, quote, items); err != nil {
		logger.Error("Failed to save customer quote", slog.String("error", err.Error()), slog.String("quote_number", quote.QuoteNumber))
		return nil, nil, fmt.Errorf("failed to create customer quote: %w", err)
	}

	logger.Info("Customer quote drafted", slog.String("quote_id", quote.CustomerQuoteID), slog.String("quote_number", quote.QuoteNumber))
	return &quote, items, nil
}

// GetCustomerQuoteByID retrieves a customer quote with its items.
func (s *CustomerQuoteService) GetCustomerQuoteByID(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	quote, err := s.quoteRepo.FindCustomerQuoteByID(ctx, organizationID, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get customer quote: %w", err)
	}
	items, err := s.quoteRepo.FindCustomerQuoteItems(ctx, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get customer quote items: %w", err)
	}
	return quote, items, nil
}

// ListCustomerQuotes retrieves a paginated list of customer quotes.
func (s *CustomerQuoteService) ListCustomerQuotes(ctx context.Context, organizationID string, status *domain.CustomerQuoteStatus, limit, offset int, requestingUserID string) ([]domain.CustomerQuote, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	quotes, total, err := s.quoteRepo.ListCustomerQuotes(ctx, organizationID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customer quotes: %w", err)
	}
	return quotes, total, nil
}

// UpdateCustomerQuote edits a draft quote and recomputes totals.
func (s *CustomerQuoteService) UpdateCustomerQuote(ctx context.Context, organizationID, quoteID string, req dto.UpdateCustomerQuoteRequest, requestingUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}

	quote, err := s.quoteRepo.FindCustomerQuoteByID(ctx, organizationID, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get customer quote for update: %w", err)
	}
	if quote.IsFinalized() {
		return nil, nil, fmt.Errorf("%w: customer quote %s", apperrors.ErrDocumentFinalized, quote.QuoteNumber)
	}

	if req.ClientName != nil {
		quote.ClientName = *req.ClientName
	}
	if req.ValidUntil != nil {
		quote.ValidUntil = req.ValidUntil
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}
	if req.DiscountAmountMinorUnits != nil {
		quote.DiscountAmountMinorUnits = *req.DiscountAmountMinorUnits
	}
	if req.TaxAmountMinorUnits != nil {
		quote.TaxAmountMinorUnits = *req.TaxAmountMinorUnits
	}

	items, err := s.quoteRepo.FindCustomerQuoteItems(ctx, quoteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get customer quote items for update: %w", err)
	}
	if req.Items != nil {
		items = buildCustomerQuoteItems(quoteID, req.Items)
		if err := s.quoteRepo.ReplaceCustomerQuoteItems(ctx, quoteID, items); err != nil {
			return nil, nil, fmt.Errorf("failed to replace customer quote items: %w", err)
		}
	}

	recalculateCustomerQuote(quote, items)
	quote.LastUpdatedAt = time.Now()
	quote.LastUpdatedBy = requestingUserID
	if err := s.quoteRepo.UpdateCustomerQuote(ctx, *quote); err != nil {
		return nil, nil, fmt.Errorf("failed to update customer quote: %w", err)
	}
	return quote, items, nil
}

// SendCustomerQuote finalizes the quote, locking the base-currency rate.
func (s *CustomerQuoteService) SendCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindCustomerQuoteByID(ctx, organizationID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer quote for sending: %w", err)
	}
	if quote.IsFinalized() {
		return nil, fmt.Errorf("%w: customer quote %s", apperrors.ErrDocumentFinalized, quote.QuoteNumber)
	}

	now := time.Now()
	rate, rateDate, err := s.rateService.GetConversionRate(ctx, quote.CurrencyCode, s.baseCurrencyCode, now)
	if err != nil {
		return nil, err
	}
	totalBase, err := trade.ConvertTotal(quote.TotalAmountMinorUnits, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert quote total to base currency: %w", err)
	}

	quote.Status = domain.CQSent
	quote.SentAt = &now
	quote.LockedExchangeRate = &rate
	quote.LockedExchangeRateDate = &rateDate
	quote.TotalBaseCurrencyMinorUnits = &totalBase
	quote.LastUpdatedAt = now
	quote.LastUpdatedBy = requestingUserID

	if err := s.quoteRepo.UpdateCustomerQuote(ctx, *quote); err != nil {
		return nil, fmt.Errorf("failed to send customer quote: %w", err)
	}

	logger.Info("Customer quote sent", slog.String("quote_id", quoteID), slog.String("quote_number", quote.QuoteNumber))
	return quote, nil
}

// ApproveCustomerQuote records client approval of a sent quote.
func (s *CustomerQuoteService) ApproveCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error) {
	return s.decideCustomerQuote(ctx, organizationID, quoteID, requestingUserID, true)
}

// RejectCustomerQuote records client rejection of a sent quote.
func (s *CustomerQuoteService) RejectCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error) {
	return s.decideCustomerQuote(ctx, organizationID, quoteID, requestingUserID, false)
}

func (s *CustomerQuoteService) decideCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string, approve bool) (*domain.CustomerQuote, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindCustomerQuoteByID(ctx, organizationID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer quote for decision: %w", err)
	}
	if quote.Status != domain.CQSent {
		return nil, fmt.Errorf("%w: customer quote %s is not awaiting a decision", apperrors.ErrValidation, quote.QuoteNumber)
	}
	if approve && quote.IsExpired() {
		return nil, fmt.Errorf("%w: customer quote %s has expired", apperrors.ErrValidation, quote.QuoteNumber)
	}

	now := time.Now()
	if approve {
		quote.Status = domain.CQApproved
		quote.ApprovedAt = &now
		quote.ApprovedBy = requestingUserID
	} else {
		quote.Status = domain.CQRejected
		quote.RejectedAt = &now
	}
	quote.LastUpdatedAt = now
	quote.LastUpdatedBy = requestingUserID

	if err := s.quoteRepo.UpdateCustomerQuote(ctx, *quote); err != nil {
		return nil, fmt.Errorf("failed to record customer quote decision: %w", err)
	}
	return quote, nil
}
