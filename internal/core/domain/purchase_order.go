package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus indicates the lifecycle state of a purchase order.
// Draft orders are freely mutable; once sent the document is finalized and
// its totals (including the base-currency total) are frozen. Corrections go
// through a new revision, never through in-place edits.
type PurchaseOrderStatus string

const (
	PODraft     PurchaseOrderStatus = "DRAFT"
	POSent      PurchaseOrderStatus = "SENT"
	POConfirmed PurchaseOrderStatus = "CONFIRMED"
	POCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder is an order placed with a supplier, usually derived from a
// selected supplier quote. All money fields are minor units of CurrencyCode.
type PurchaseOrder struct {
	PurchaseOrderID string  `json:"purchaseOrderID"` // Primary Key (UUID)
	OrganizationID  string  `json:"organizationID"`
	PONumber        string  `json:"poNumber"` // PO-[YYYYMM]-[NNNN]
	Revision        int     `json:"revision"` // starts at 1, bumped by corrections
	RFQID           *string `json:"rfqID,omitempty"`
	SupplierQuoteID *string `json:"supplierQuoteID,omitempty"`
	SupplierName    string  `json:"supplierName"`
	CurrencyCode    string  `json:"currencyCode"`

	Status          PurchaseOrderStatus `json:"status"`
	Incoterm        string              `json:"incoterm,omitempty"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	ShippingCostMinorUnits   int64 `json:"shippingCostMinorUnits"`
	ShippingIncludedInPrice  bool  `json:"shippingIncludedInPrice"`
	InsuranceCostMinorUnits  int64 `json:"insuranceCostMinorUnits"`
	InsuranceIncludedInPrice bool  `json:"insuranceIncludedInPrice"`
	OtherCostsMinorUnits     int64 `json:"otherCostsMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	// LockedExchangeRate converts TotalAmountMinorUnits to the base currency.
	// Captured once via the rate lookup and immutable for this PO instance so
	// historical totals survive rate-table updates.
	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	Notes         string `json:"notes,omitempty"`
	InternalNotes string `json:"internalNotes,omitempty"`

	SentAt               *time.Time `json:"sentAt,omitempty"`
	ConfirmedAt          *time.Time `json:"confirmedAt,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actualDeliveryDate,omitempty"`
	AuditFields
}

// IsFinalized reports whether the PO left draft state. Finalized orders
// reject recalculation and item mutation.
func (po *PurchaseOrder) IsFinalized() bool {
	return po.Status != PODraft
}

// PurchaseOrderItem is a single ordered product line.
type PurchaseOrderItem struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID"`
	PurchaseOrderID     string          `json:"purchaseOrderID"`
	ProductName         string          `json:"productName"`
	SKU                 string          `json:"sku,omitempty"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"` // round(quantity * unitPrice)
}
