package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for registering a manual exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase"`
	Rate               decimal.Decimal `json:"rate" binding:"required"`
	Date               time.Time       `json:"date" binding:"required"`
	Notes              string          `json:"notes,omitempty"`
}

// ReviewExchangeRateRequest approves or rejects a pending rate.
type ReviewExchangeRateRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}

// ConvertAmountRequest asks for a minor-units amount conversion between two currencies.
type ConvertAmountRequest struct {
	FromCurrencyCode string     `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string     `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	AmountMinorUnits int64      `json:"amountMinorUnits" binding:"required"`
	Date             *time.Time `json:"date,omitempty"`
}

// ConvertAmountResponse carries the converted amount and the rate that produced it.
type ConvertAmountResponse struct {
	FromCurrencyCode          string          `json:"fromCurrencyCode"`
	ToCurrencyCode            string          `json:"toCurrencyCode"`
	AmountMinorUnits          int64           `json:"amountMinorUnits"`
	ConvertedAmountMinorUnits int64           `json:"convertedAmountMinorUnits"`
	ConvertedAmountFormatted  string          `json:"convertedAmountFormatted,omitempty"`
	Rate                      decimal.Decimal `json:"rate"`
	RateDate                  time.Time       `json:"rateDate"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	InverseRate        decimal.Decimal `json:"inverseRate"`
	Date               time.Time       `json:"date"`
	Source             string          `json:"source"`
	SourceName         string          `json:"sourceName,omitempty"`
	Status             string          `json:"status"`
	ApprovedBy         string          `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time      `json:"approvedAt,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     rate.ExchangeRateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               rate.Rate,
		InverseRate:        rate.InverseRate,
		Date:               rate.Date,
		Source:             string(rate.Source),
		SourceName:         rate.SourceName,
		Status:             string(rate.Status),
		ApprovedBy:         rate.ApprovedBy,
		ApprovedAt:         rate.ApprovedAt,
		Notes:              rate.Notes,
		CreatedAt:          rate.CreatedAt,
		LastUpdatedAt:      rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
