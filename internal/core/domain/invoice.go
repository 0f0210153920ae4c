package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes the invoice documents the back office issues.
type InvoiceKind string

const (
	InvoiceProforma   InvoiceKind = "PROFORMA"
	InvoiceCommercial InvoiceKind = "COMMERCIAL"
	InvoiceSales      InvoiceKind = "SALES"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoiceIssued InvoiceStatus = "ISSUED"
	InvoicePaid   InvoiceStatus = "PAID"
	InvoiceVoid   InvoiceStatus = "VOID"
)

// Invoice covers proforma, commercial and sales invoices with one shape;
// the kind drives numbering and which upstream document it references.
type Invoice struct {
	InvoiceID        string      `json:"invoiceID"` // Primary Key (UUID)
	OrganizationID   string      `json:"organizationID"`
	InvoiceNumber    string      `json:"invoiceNumber"` // e.g. INV-COM-2025-0001
	Kind             InvoiceKind `json:"kind"`
	ShipmentID       *string     `json:"shipmentID,omitempty"`
	PurchaseOrderID  *string     `json:"purchaseOrderID,omitempty"`
	RFQID            *string     `json:"rfqID,omitempty"`
	CounterpartyName string      `json:"counterpartyName"`
	CurrencyCode     string      `json:"currencyCode"`

	Status  InvoiceStatus `json:"status"`
	DueDate *time.Time    `json:"dueDate,omitempty"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	IssuedAt *time.Time `json:"issuedAt,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	AuditFields
}

// IsFinalized reports whether the invoice left draft state.
func (inv *Invoice) IsFinalized() bool {
	return inv.Status != InvoiceDraft
}

// InvoiceItem is one invoiced product line.
type InvoiceItem struct {
	InvoiceItemID       string          `json:"invoiceItemID"`
	InvoiceID           string          `json:"invoiceID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"`
}
