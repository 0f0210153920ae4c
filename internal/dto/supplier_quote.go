package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SupplierQuoteItemRequest is one priced line of an incoming supplier quote.
// Prices are minor units of the quote currency, before commission.
type SupplierQuoteItemRequest struct {
	RFQItemID           string          `json:"rfqItemID,omitempty"`
	ProductName         string          `json:"productName" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits" binding:"required"`
}

// CreateSupplierQuoteRequest registers a supplier's quote against an RFQ.
// Commission defaults to the RFQ's settings when omitted.
type CreateSupplierQuoteRequest struct {
	SupplierName      string                     `json:"supplierName" binding:"required"`
	CurrencyCode      string                     `json:"currencyCode" binding:"required,len=3,uppercase"`
	CommissionPercent *decimal.Decimal           `json:"commissionPercent,omitempty"`
	CommissionType    *string                    `json:"commissionType,omitempty" binding:"omitempty,oneof=EMBEDDED SEPARATE"`
	ValidUntil        *time.Time                 `json:"validUntil,omitempty"`
	Notes             string                     `json:"notes,omitempty"`
	Items             []SupplierQuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SupplierQuoteItemResponse defines the data returned for a quote line.
type SupplierQuoteItemResponse struct {
	SupplierQuoteItemID                  string          `json:"supplierQuoteItemID"`
	RFQItemID                            string          `json:"rfqItemID,omitempty"`
	ProductName                          string          `json:"productName"`
	Quantity                             decimal.Decimal `json:"quantity"`
	UnitPriceBeforeCommissionMinorUnits  int64           `json:"unitPriceBeforeCommissionMinorUnits"`
	UnitPriceAfterCommissionMinorUnits   int64           `json:"unitPriceAfterCommissionMinorUnits"`
	TotalPriceBeforeCommissionMinorUnits int64           `json:"totalPriceBeforeCommissionMinorUnits"`
	TotalPriceAfterCommissionMinorUnits  int64           `json:"totalPriceAfterCommissionMinorUnits"`
	ConvertedPriceMinorUnits             *int64          `json:"convertedPriceMinorUnits,omitempty"`
}

// SupplierQuoteResponse defines the data returned for a supplier quote.
type SupplierQuoteResponse struct {
	SupplierQuoteID                 string                      `json:"supplierQuoteID"`
	OrganizationID                  string                      `json:"organizationID"`
	RFQID                           string                      `json:"rfqID"`
	SupplierName                    string                      `json:"supplierName"`
	QuoteNumber                     string                      `json:"quoteNumber"`
	Revision                        int                         `json:"revision"`
	CurrencyCode                    string                      `json:"currencyCode"`
	CommissionType                  string                      `json:"commissionType"`
	CommissionPercent               decimal.Decimal             `json:"commissionPercent"`
	TotalBeforeCommissionMinorUnits int64                       `json:"totalBeforeCommissionMinorUnits"`
	TotalAfterCommissionMinorUnits  int64                       `json:"totalAfterCommissionMinorUnits"`
	CommissionAmountMinorUnits      int64                       `json:"commissionAmountMinorUnits"`
	LockedExchangeRate              *decimal.Decimal            `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate          *time.Time                  `json:"lockedExchangeRateDate,omitempty"`
	ConvertedTotalMinorUnits        *int64                      `json:"convertedTotalMinorUnits,omitempty"`
	ValidUntil                      *time.Time                  `json:"validUntil,omitempty"`
	Status                          string                      `json:"status"`
	Notes                           string                      `json:"notes,omitempty"`
	Items                           []SupplierQuoteItemResponse `json:"items,omitempty"`
	CreatedAt                       time.Time                   `json:"createdAt"`
	CreatedBy                       string                      `json:"createdBy"`
	LastUpdatedAt                   time.Time                   `json:"lastUpdatedAt"`
}

// ToSupplierQuoteResponse converts a domain.SupplierQuote and its items to a DTO.
func ToSupplierQuoteResponse(q *domain.SupplierQuote, items []domain.SupplierQuoteItem) SupplierQuoteResponse {
	resp := SupplierQuoteResponse{
		SupplierQuoteID:                 q.SupplierQuoteID,
		OrganizationID:                  q.OrganizationID,
		RFQID:                           q.RFQID,
		SupplierName:                    q.SupplierName,
		QuoteNumber:                     q.QuoteNumber,
		Revision:                        q.Revision,
		CurrencyCode:                    q.CurrencyCode,
		CommissionType:                  string(q.CommissionType),
		CommissionPercent:               q.CommissionPercent,
		TotalBeforeCommissionMinorUnits: q.TotalBeforeCommissionMinorUnits,
		TotalAfterCommissionMinorUnits:  q.TotalAfterCommissionMinorUnits,
		CommissionAmountMinorUnits:      q.CommissionAmountMinorUnits,
		LockedExchangeRate:              q.LockedExchangeRate,
		LockedExchangeRateDate:          q.LockedExchangeRateDate,
		ConvertedTotalMinorUnits:        q.ConvertedTotalMinorUnits,
		ValidUntil:                      q.ValidUntil,
		Status:                          string(q.Status),
		Notes:                           q.Notes,
		CreatedAt:                       q.CreatedAt,
		CreatedBy:                       q.CreatedBy,
		LastUpdatedAt:                   q.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]SupplierQuoteItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = SupplierQuoteItemResponse{
				SupplierQuoteItemID:                  item.SupplierQuoteItemID,
				RFQItemID:                            item.RFQItemID,
				ProductName:                          item.ProductName,
				Quantity:                             item.Quantity,
				UnitPriceBeforeCommissionMinorUnits:  item.UnitPriceBeforeCommissionMinorUnits,
				UnitPriceAfterCommissionMinorUnits:   item.UnitPriceAfterCommissionMinorUnits,
				TotalPriceBeforeCommissionMinorUnits: item.TotalPriceBeforeCommissionMinorUnits,
				TotalPriceAfterCommissionMinorUnits:  item.TotalPriceAfterCommissionMinorUnits,
				ConvertedPriceMinorUnits:             item.ConvertedPriceMinorUnits,
			}
		}
	}
	return resp
}

// ToListSupplierQuoteResponse converts quotes (without items) to DTOs.
func ToListSupplierQuoteResponse(quotes []domain.SupplierQuote) []SupplierQuoteResponse {
	res := make([]SupplierQuoteResponse, len(quotes))
	for i := range quotes {
		res[i] = ToSupplierQuoteResponse(&quotes[i], nil)
	}
	return res
}
