package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerQuoteItemRequest is one offered product line.
type CustomerQuoteItemRequest struct {
	ProductName         string          `json:"productName" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits" binding:"required"`
}

// CreateCustomerQuoteRequest drafts a quote for a client, optionally derived
// from an RFQ's selected supplier quote.
type CreateCustomerQuoteRequest struct {
	RFQID        *string                    `json:"rfqID,omitempty"`
	ClientName   string                     `json:"clientName" binding:"required"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3,uppercase"`
	ValidUntil   *time.Time                 `json:"validUntil,omitempty"`
	Notes        string                     `json:"notes,omitempty"`
	Items        []CustomerQuoteItemRequest `json:"items" binding:"required,min=1,dive"`

	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits,omitempty"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits,omitempty"`
}

// UpdateCustomerQuoteRequest edits a draft customer quote.
type UpdateCustomerQuoteRequest struct {
	ClientName               *string                    `json:"clientName,omitempty"`
	ValidUntil               *time.Time                 `json:"validUntil,omitempty"`
	Notes                    *string                    `json:"notes,omitempty"`
	DiscountAmountMinorUnits *int64                     `json:"discountAmountMinorUnits,omitempty"`
	TaxAmountMinorUnits      *int64                     `json:"taxAmountMinorUnits,omitempty"`
	Items                    []CustomerQuoteItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
}

// CustomerQuoteItemResponse defines the data returned for a quote line.
type CustomerQuoteItemResponse struct {
	CustomerQuoteItemID string          `json:"customerQuoteItemID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"`
}

// CustomerQuoteResponse defines the data returned for a customer quote.
type CustomerQuoteResponse struct {
	CustomerQuoteID string  `json:"customerQuoteID"`
	OrganizationID  string  `json:"organizationID"`
	QuoteNumber     string  `json:"quoteNumber"`
	RFQID           *string `json:"rfqID,omitempty"`
	ClientName      string  `json:"clientName"`
	CurrencyCode    string  `json:"currencyCode"`
	Status          string  `json:"status"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	ValidUntil    *time.Time                  `json:"validUntil,omitempty"`
	SentAt        *time.Time                  `json:"sentAt,omitempty"`
	ApprovedAt    *time.Time                  `json:"approvedAt,omitempty"`
	RejectedAt    *time.Time                  `json:"rejectedAt,omitempty"`
	Notes         string                      `json:"notes,omitempty"`
	Items         []CustomerQuoteItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
	CreatedBy     string                      `json:"createdBy"`
	LastUpdatedAt time.Time                   `json:"lastUpdatedAt"`
}

// ToCustomerQuoteResponse converts a domain.CustomerQuote and its items to a DTO.
func ToCustomerQuoteResponse(q *domain.CustomerQuote, items []domain.CustomerQuoteItem) CustomerQuoteResponse {
	resp := CustomerQuoteResponse{
		CustomerQuoteID:             q.CustomerQuoteID,
		OrganizationID:              q.OrganizationID,
		QuoteNumber:                 q.QuoteNumber,
		RFQID:                       q.RFQID,
		ClientName:                  q.ClientName,
		CurrencyCode:                q.CurrencyCode,
		Status:                      string(q.Status),
		SubtotalMinorUnits:          q.SubtotalMinorUnits,
		DiscountAmountMinorUnits:    q.DiscountAmountMinorUnits,
		TaxAmountMinorUnits:         q.TaxAmountMinorUnits,
		TotalAmountMinorUnits:       q.TotalAmountMinorUnits,
		LockedExchangeRate:          q.LockedExchangeRate,
		LockedExchangeRateDate:      q.LockedExchangeRateDate,
		TotalBaseCurrencyMinorUnits: q.TotalBaseCurrencyMinorUnits,
		ValidUntil:                  q.ValidUntil,
		SentAt:                      q.SentAt,
		ApprovedAt:                  q.ApprovedAt,
		RejectedAt:                  q.RejectedAt,
		Notes:                       q.Notes,
		CreatedAt:                   q.CreatedAt,
		CreatedBy:                   q.CreatedBy,
		LastUpdatedAt:               q.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]CustomerQuoteItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = CustomerQuoteItemResponse{
				CustomerQuoteItemID: item.CustomerQuoteItemID,
				ProductName:         item.ProductName,
				Quantity:            item.Quantity,
				UnitPriceMinorUnits: item.UnitPriceMinorUnits,
				TotalMinorUnits:     item.TotalMinorUnits,
			}
		}
	}
	return resp
}

// ToListCustomerQuoteResponse converts customer quotes (without items) to DTOs.
func ToListCustomerQuoteResponse(quotes []domain.CustomerQuote) []CustomerQuoteResponse {
	res := make([]CustomerQuoteResponse, len(quotes))
	for i := range quotes {
		res[i] = ToCustomerQuoteResponse(&quotes[i], nil)
	}
	return res
}
