package domain

import "github.com/shopspring/decimal"

// RFQStatus indicates the state of a request-for-quotation.
type RFQStatus string

const (
	RFQDraft     RFQStatus = "DRAFT"
	RFQOpen      RFQStatus = "OPEN"    // sent to suppliers, collecting quotes
	RFQClosed    RFQStatus = "CLOSED"  // a supplier quote was selected
	RFQCancelled RFQStatus = "CANCELLED"
)

// CommissionType determines how the trading commission is applied to supplier
// quote prices. Embedded commission inflates the unit prices themselves;
// separate commission is added as a distinct amount on top of the total.
type CommissionType string

const (
	CommissionEmbedded CommissionType = "EMBEDDED"
	CommissionSeparate CommissionType = "SEPARATE"
)

// RFQ represents a client request for quotation, the root document suppliers
// quote against and purchase orders trace back to.
type RFQ struct {
	RFQID             string          `json:"rfqID"` // Primary Key (UUID)
	OrganizationID    string          `json:"organizationID"`
	RFQNumber         string          `json:"rfqNumber"` // [CLIENT]-[YY]-[NNNN], e.g. AMA-25-0001
	ClientName        string          `json:"clientName"`
	ClientCode        string          `json:"clientCode"` // short code used in the RFQ number
	CurrencyCode      string          `json:"currencyCode"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"` // e.g. 5 for 5%
	CommissionType    CommissionType  `json:"commissionType"`
	Status            RFQStatus       `json:"status"`
	SelectedQuoteID   *string         `json:"selectedQuoteID,omitempty"` // winning supplier quote
	// TotalAmountMinorUnits tracks the current best (cheapest) quote total in
	// the RFQ currency; updated as quotes arrive.
	TotalAmountMinorUnits int64 `json:"totalAmountMinorUnits"`
	AuditFields
}

// RFQItem is a single requested product line on an RFQ.
type RFQItem struct {
	RFQItemID                 string          `json:"rfqItemID"`
	RFQID                     string          `json:"rfqID"`
	ProductName               string          `json:"productName"`
	SKU                       string          `json:"sku,omitempty"`
	Quantity                  decimal.Decimal `json:"quantity"`
	TargetUnitPriceMinorUnits int64           `json:"targetUnitPriceMinorUnits"` // client's target, may be 0
}
