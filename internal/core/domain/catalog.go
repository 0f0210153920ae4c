package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry for goods traded through the back office.
// Document lines still carry their own product name and price snapshot; the
// catalog supplies defaults and trade metadata when drafting.
type Product struct {
	ProductID      string `json:"productID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`

	// Trade metadata carried onto export paperwork.
	HSCode        string `json:"hsCode,omitempty"`
	OriginCountry string `json:"originCountry,omitempty"` // ISO 3166-1 alpha-2
	MOQ           int    `json:"moq,omitempty"`
	LeadTimeDays  int    `json:"leadTimeDays,omitempty"`

	CurrencyCode       string `json:"currencyCode"`
	UnitCostMinorUnits int64  `json:"unitCostMinorUnits"` // current reference purchase cost

	IsActive bool `json:"isActive"`
	AuditFields
}

// ProductCostEntry records one change to a product's reference unit cost.
// Rows are append-only history; the product row holds the current value.
type ProductCostEntry struct {
	CostEntryID          string          `json:"costEntryID"` // Primary Key (UUID)
	ProductID            string          `json:"productID"`
	OldCostMinorUnits    int64           `json:"oldCostMinorUnits"`
	NewCostMinorUnits    int64           `json:"newCostMinorUnits"`
	DifferenceMinorUnits int64           `json:"differenceMinorUnits"`
	PercentChange        decimal.Decimal `json:"percentChange"` // 2 decimal places, zero when old cost was zero
	Reason               string          `json:"reason,omitempty"`
	ChangedBy            string          `json:"changedBy"` // UserID reference
	ChangedAt            time.Time       `json:"changedAt"`
}

// Client is a customer the organization quotes and sells to. The client code
// is the short prefix used in RFQ numbers.
type Client struct {
	ClientID       string `json:"clientID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"` // e.g. "AMAZO", unique per organization
	Name           string `json:"name"`
	ContactName    string `json:"contactName,omitempty"`
	Email          string `json:"email,omitempty"`
	Country        string `json:"country,omitempty"` // ISO 3166-1 alpha-2
	Notes          string `json:"notes,omitempty"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
