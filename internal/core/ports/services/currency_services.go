package services

import (
	"context"
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves available currencies, optionally only active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrency updates mutable currency attributes.
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ConversionResult carries a resolved rate and the converted minor-units amount.
type ConversionResult struct {
	Rate                      decimal.Decimal
	RateDate                  time.Time
	ConvertedAmountMinorUnits int64

	// ConvertedAmountFormatted is the converted amount rendered with the
	// target currency's precision and symbol, for display. Empty when the
	// target currency row is unavailable.
	ConvertedAmountFormatted string
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRateByID retrieves a rate row by ID.
	GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rate rows, optionally filtered by pair.
	ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error)

	// GetConversionRate resolves the effective rate from one currency to
	// another on a date. Resolution tries, in order: identity for same pair,
	// a direct approved rate, the inverse of the opposite pair, and a
	// triangular path through the base currency. It returns a
	// *apperrors.MissingExchangeRateError when no path exists.
	GetConversionRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (decimal.Decimal, time.Time, error)

	// ConvertAmount converts a minor-units amount using GetConversionRate and
	// half-up rounding.
	ConvertAmount(ctx context.Context, fromCode, toCode string, amountMinorUnits int64, onDate time.Time) (*ConversionResult, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new manually entered rate (pending approval).
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// ReviewExchangeRate approves or rejects a pending rate row.
	ReviewExchangeRate(ctx context.Context, rateID string, approve bool, reviewerUserID string) (*domain.ExchangeRate, error)

	// RefreshRatesFromProvider pulls current rates from the external provider
	// and appends them as approved api-sourced rows. Returns how many pairs
	// were stored.
	RefreshRatesFromProvider(ctx context.Context, requestingUserID string) (int, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
