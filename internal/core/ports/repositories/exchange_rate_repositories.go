package repositories

import (
	"context"
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestApprovedRate retrieves the most recent approved rate row for
	// the pair with date <= onDate. Returns apperrors.ErrNotFound when no such
	// row exists; it never falls back to future-dated rates.
	FindLatestApprovedRate(ctx context.Context, baseCode, targetCode string, onDate time.Time) (*domain.ExchangeRate, error)

	// GetExchangeRateByID retrieves an exchange rate row by its ID.
	GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rate history with optional pair filtering,
	// newest first.
	ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a rate row, or updates the existing row for the
	// same (base, target, date) triple.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateRateStatus moves a rate row between pending/approved/rejected.
	UpdateRateStatus(ctx context.Context, rateID string, status domain.RateStatus, reviewerUserID string, reviewedAt time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
