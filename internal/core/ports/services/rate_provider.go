package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is the outbound port for an external exchange rate source.
// Implementations return the latest rates for every currency quoted against
// the given base.
type RateProvider interface {
	FetchLatestRates(ctx context.Context, baseCurrencyCode string) (map[string]decimal.Decimal, error)

	// Name identifies the provider in stored rate rows.
	Name() string
}
