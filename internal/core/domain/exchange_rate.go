package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource indicates where an exchange rate row came from.
type RateSource string

const (
	RateSourceAPI    RateSource = "api"
	RateSourceManual RateSource = "manual"
	RateSourceImport RateSource = "import"
)

// RateStatus is the approval state of a rate row. Only approved rows are ever
// used for conversion.
type RateStatus string

const (
	RateStatusPending  RateStatus = "pending"
	RateStatusApproved RateStatus = "approved"
	RateStatusRejected RateStatus = "rejected"
)

// ExchangeRate stores the conversion rate from the base currency to a target
// currency for a specific date. Rows are historical: a pair may have many
// rows, and conversion uses the latest approved row at or before the
// reference date, never a future-dated one.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`     // Primary Key (UUID)
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`   // FK -> Currency.currencyCode
	TargetCurrencyCode string          `json:"targetCurrencyCode"` // FK -> Currency.currencyCode
	Rate               decimal.Decimal `json:"rate"`               // must be > 0
	InverseRate        decimal.Decimal `json:"inverseRate"`        // derived, 1/rate
	Date               time.Time       `json:"date"`
	Source             RateSource      `json:"source"`
	SourceName         string          `json:"sourceName"` // e.g. provider name for api rows
	Status             RateStatus      `json:"status"`
	ApprovedBy         string          `json:"approvedBy,omitempty"` // UserID reference
	ApprovedAt         *time.Time      `json:"approvedAt,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	AuditFields
}
