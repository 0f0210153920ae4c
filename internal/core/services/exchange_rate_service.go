package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
)

// rateDecimalPlaces is the stored precision for derived inverse rates.
const rateDecimalPlaces = 10

// ExchangeRateService provides business logic for exchange rates and
// currency conversion. All conversions resolve through approved rate rows;
// rates are stored against the configured base currency, so cross-currency
// pairs are bridged triangularly through it.
type ExchangeRateService struct {
	rateRepo         portsrepo.ExchangeRateRepositoryFacade
	currencyService  *CurrencyService
	rateProvider     portssvc.RateProvider
	baseCurrencyCode string
}

// NewExchangeRateService creates a new ExchangeRateService. rateProvider may
// be nil when no external provider is configured.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService *CurrencyService, rateProvider portssvc.RateProvider, baseCurrencyCode string) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:         rateRepo,
		currencyService:  currencyService,
		rateProvider:     rateProvider,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate registers a manually entered rate. Manual rates start
// pending and must be approved before conversion uses them.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.BaseCurrencyCode == req.TargetCurrencyCode {
		return nil, fmt.Errorf("%w: base and target currency codes cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{req.BaseCurrencyCode, req.TargetCurrencyCode} {
		if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   req.BaseCurrencyCode,
		TargetCurrencyCode: req.TargetCurrencyCode,
		Rate:               req.Rate,
		InverseRate:        decimal.NewFromInt(1).DivRound(req.Rate, rateDecimalPlaces),
		Date:               req.Date,
		Source:             domain.RateSourceManual,
		Status:             domain.RateStatusPending,
		Notes:              req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	return &rate, nil
}

// ReviewExchangeRate approves or rejects a pending rate row.
func (s *ExchangeRateService) ReviewExchangeRate(ctx context.Context, rateID string, approve bool, reviewerUserID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.GetExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate for review: %w", err)
	}
	if rate.Status != domain.RateStatusPending {
		return nil, fmt.Errorf("%w: rate %s is not pending review", apperrors.ErrValidation, rateID)
	}
	if rate.CreatedBy == reviewerUserID {
		return nil, fmt.Errorf("%w: a rate cannot be reviewed by its creator", apperrors.ErrForbidden)
	}

	status := domain.RateStatusRejected
	if approve {
		status = domain.RateStatusApproved
	}
	now := time.Now()
	if err := s.rateRepo.UpdateRateStatus(ctx, rateID, status, reviewerUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update rate status: %w", err)
	}

	rate.Status = status
	rate.ApprovedBy = reviewerUserID
	rate.ApprovedAt = &now
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = reviewerUserID
	return rate, nil
}

// GetExchangeRateByID retrieves a single rate row.
func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.GetExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves rate rows, optionally filtered by pair.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	rates, total, err := s.rateRepo.ListExchangeRates(ctx, baseCode, targetCode, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	return rates, total, nil
}

// GetConversionRate resolves the effective rate from fromCode to toCode on a
// date. Resolution order: identity for the same pair, a direct approved rate,
// the inverse of the opposite pair, then a triangular path through the base
// currency. A missing path yields *apperrors.MissingExchangeRateError.
func (s *ExchangeRateService) GetConversionRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (decimal.Decimal, time.Time, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fromCode == toCode {
		return decimal.NewFromInt(1), onDate, nil
	}

	// Direct rate.
	if rate, err := s.rateRepo.FindLatestApprovedRate(ctx, fromCode, toCode, onDate); err == nil {
		return rate.Rate, rate.Date, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to look up direct rate: %w", err)
	}

	// Inverse of the opposite pair.
	if rate, err := s.rateRepo.FindLatestApprovedRate(ctx, toCode, fromCode, onDate); err == nil {
		if rate.Rate.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, time.Time{}, fmt.Errorf("%w: stored rate for %s/%s", apperrors.ErrInvalidRate, toCode, fromCode)
		}
		return decimal.NewFromInt(1).DivRound(rate.Rate, rateDecimalPlaces), rate.Date, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to look up inverse rate: %w", err)
	}

	// Triangular path through the base currency: from -> base -> to.
	if fromCode != s.baseCurrencyCode && toCode != s.baseCurrencyCode {
		toBase, toBaseDate, errFrom := s.GetConversionRate(ctx, fromCode, s.baseCurrencyCode, onDate)
		if errFrom == nil {
			fromBase, fromBaseDate, errTo := s.GetConversionRate(ctx, s.baseCurrencyCode, toCode, onDate)
			if errTo == nil {
				rateDate := toBaseDate
				if fromBaseDate.Before(rateDate) {
					rateDate = fromBaseDate
				}
				return toBase.Mul(fromBase), rateDate, nil
			}
		}
	}

	middleware.GetLoggerFromCtx(ctx).Warn("No exchange rate path found",
		slog.String("from", fromCode),
		slog.String("to", toCode),
		slog.Time("date", onDate),
	)
	return decimal.Zero, time.Time{}, apperrors.NewMissingExchangeRateError(fromCode, toCode, onDate)
}

// ConvertAmount converts a minor-units amount between currencies with
// half-up rounding on the result.
func (s *ExchangeRateService) ConvertAmount(ctx context.Context, fromCode, toCode string, amountMinorUnits int64, onDate time.Time) (*portssvc.ConversionResult, error) {
	rate, rateDate, err := s.GetConversionRate(ctx, fromCode, toCode, onDate)
	if err != nil {
		return nil, err
	}
	converted, err := money.Convert(amountMinorUnits, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert amount: %w", err)
	}

	var formatted string
	if currency, err := s.currencyService.GetCurrencyByCode(ctx, strings.ToUpper(toCode)); err == nil {
		formatted = utils.FormatWithSymbol(converted, *currency)
	}

	return &portssvc.ConversionResult{
		Rate:                      rate,
		RateDate:                  rateDate,
		ConvertedAmountMinorUnits: converted,
		ConvertedAmountFormatted:  formatted,
	}, nil
}

// RefreshRatesFromProvider pulls the provider's latest base-currency rates
// and appends them as approved api rows for today, keeping earlier rows for
// the same pair and date as history. Unknown or inactive currencies are
// skipped.
func (s *ExchangeRateService) RefreshRatesFromProvider(ctx context.Context, requestingUserID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.rateProvider == nil {
		return 0, fmt.Errorf("%w: no exchange rate provider configured", apperrors.ErrValidation)
	}

	fetched, err := s.rateProvider.FetchLatestRates(ctx, s.baseCurrencyCode)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates from provider: %w", err)
	}

	currencies, err := s.currencyService.ListCurrencies(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list currencies for rate refresh: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stored := 0
	for _, currency := range currencies {
		if currency.CurrencyCode == s.baseCurrencyCode {
			continue
		}
		rateValue, ok := fetched[currency.CurrencyCode]
		if !ok || rateValue.LessThanOrEqual(decimal.Zero) {
			continue
		}

		rate := domain.ExchangeRate{
			ExchangeRateID:     uuid.NewString(),
			BaseCurrencyCode:   s.baseCurrencyCode,
			TargetCurrencyCode: currency.CurrencyCode,
			Rate:               rateValue,
			InverseRate:        decimal.NewFromInt(1).DivRound(rateValue, rateDecimalPlaces),
			Date:               today,
			Source:             domain.RateSourceAPI,
			SourceName:         s.rateProvider.Name(),
			Status:             domain.RateStatusApproved,
			ApprovedBy:         requestingUserID,
			ApprovedAt:         &now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
		if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
			logger.Error("Failed to store provider rate", slog.String("error", err.Error()), slog.String("target", currency.CurrencyCode))
			continue
		}
		stored++
	}

	logger.Info("Exchange rates refreshed from provider", slog.String("provider", s.rateProvider.Name()), slog.Int("stored", stored))
	return stored, nil
}
