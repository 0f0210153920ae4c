package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerQuoteStatus indicates the state of a quote sent to a client.
type CustomerQuoteStatus string

const (
	CQDraft    CustomerQuoteStatus = "DRAFT"
	CQSent     CustomerQuoteStatus = "SENT"
	CQApproved CustomerQuoteStatus = "APPROVED"
	CQRejected CustomerQuoteStatus = "REJECTED"
)

// CustomerQuote is the priced offer presented to the client for an RFQ.
type CustomerQuote struct {
	CustomerQuoteID string  `json:"customerQuoteID"` // Primary Key (UUID)
	OrganizationID  string  `json:"organizationID"`
	QuoteNumber     string  `json:"quoteNumber"` // CQ-[YYYY]-[NNNN]
	RFQID           *string `json:"rfqID,omitempty"`
	ClientName      string  `json:"clientName"`
	CurrencyCode    string  `json:"currencyCode"`

	Status     CustomerQuoteStatus `json:"status"`
	ValidUntil *time.Time          `json:"validUntil,omitempty"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	SentAt     *time.Time `json:"sentAt,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy string     `json:"approvedBy,omitempty"` // UserID reference
	RejectedAt *time.Time `json:"rejectedAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	AuditFields
}

// IsFinalized reports whether the quote left draft state.
func (q *CustomerQuote) IsFinalized() bool {
	return q.Status != CQDraft
}

// IsExpired reports whether the quote's validity window has passed.
func (q *CustomerQuote) IsExpired() bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(time.Now())
}

// IsPending reports whether the quote awaits a client decision.
func (q *CustomerQuote) IsPending() bool {
	return q.Status == CQSent && !q.IsExpired()
}

// CustomerQuoteItem is a single offered product line.
type CustomerQuoteItem struct {
	CustomerQuoteItemID string          `json:"customerQuoteItemID"`
	CustomerQuoteID     string          `json:"customerQuoteID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"`
}
