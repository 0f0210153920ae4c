package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierQuoteStatus indicates the state of a supplier quote.
type SupplierQuoteStatus string

const (
	QuoteReceived SupplierQuoteStatus = "RECEIVED"
	QuoteSelected SupplierQuoteStatus = "SELECTED"
	QuoteRejected SupplierQuoteStatus = "REJECTED"
)

// SupplierQuote is a priced response from a supplier against an RFQ. Prices
// arrive in the supplier's currency; the exchange rate to the RFQ currency is
// locked once, at quote registration, and kept immutable so later rate-table
// changes never rewrite a quote comparison.
type SupplierQuote struct {
	SupplierQuoteID string `json:"supplierQuoteID"` // Primary Key (UUID)
	OrganizationID  string `json:"organizationID"`
	RFQID           string `json:"rfqID"`
	SupplierName    string `json:"supplierName"`
	QuoteNumber     string `json:"quoteNumber"` // [SUP3]-[RFQ number]-Rev[N]
	Revision        int    `json:"revision"`    // per supplier+RFQ, starts at 1
	CurrencyCode    string `json:"currencyCode"`

	CommissionType    CommissionType  `json:"commissionType"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`

	TotalBeforeCommissionMinorUnits int64 `json:"totalBeforeCommissionMinorUnits"`
	TotalAfterCommissionMinorUnits  int64 `json:"totalAfterCommissionMinorUnits"`
	CommissionAmountMinorUnits      int64 `json:"commissionAmountMinorUnits"`

	LockedExchangeRate     *decimal.Decimal `json:"lockedExchangeRate,omitempty"` // to RFQ currency
	LockedExchangeRateDate *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	// ConvertedTotalMinorUnits is the after-commission total expressed in the
	// RFQ currency via the locked rate.
	ConvertedTotalMinorUnits *int64 `json:"convertedTotalMinorUnits,omitempty"`

	ValidUntil *time.Time          `json:"validUntil,omitempty"`
	Status     SupplierQuoteStatus `json:"status"`
	Notes      string              `json:"notes,omitempty"`
	AuditFields
}

// IsExpired reports whether the quote's validity window has passed.
func (q *SupplierQuote) IsExpired() bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(time.Now())
}

// SupplierQuoteItem is one priced line of a supplier quote. Before/after
// commission pairs are kept so embedded commission stays auditable.
type SupplierQuoteItem struct {
	SupplierQuoteItemID string          `json:"supplierQuoteItemID"`
	SupplierQuoteID     string          `json:"supplierQuoteID"`
	RFQItemID           string          `json:"rfqItemID,omitempty"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`

	UnitPriceBeforeCommissionMinorUnits  int64 `json:"unitPriceBeforeCommissionMinorUnits"`
	UnitPriceAfterCommissionMinorUnits   int64 `json:"unitPriceAfterCommissionMinorUnits"`
	TotalPriceBeforeCommissionMinorUnits int64 `json:"totalPriceBeforeCommissionMinorUnits"`
	TotalPriceAfterCommissionMinorUnits  int64 `json:"totalPriceAfterCommissionMinorUnits"`

	// ConvertedPriceMinorUnits is the after-commission line total in the RFQ
	// currency, set when the quote's rate is locked.
	ConvertedPriceMinorUnits *int64 `json:"convertedPriceMinorUnits,omitempty"`
}
