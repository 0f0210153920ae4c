package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus tracks a shipment through its physical lifecycle.
type ShipmentStatus string

const (
	ShipmentDraft     ShipmentStatus = "DRAFT"
	ShipmentConfirmed ShipmentStatus = "CONFIRMED"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
)

// Shipment groups goods from a confirmed purchase order into one physical
// movement, with its own cost structure in the shipment currency.
type Shipment struct {
	ShipmentID      string `json:"shipmentID"` // Primary Key (UUID)
	OrganizationID  string `json:"organizationID"`
	ShipmentNumber  string `json:"shipmentNumber"` // SHP-[YYYY]-[NNNN]
	PurchaseOrderID string `json:"purchaseOrderID"`
	CurrencyCode    string `json:"currencyCode"`

	Status         ShipmentStatus `json:"status"`
	Carrier        string         `json:"carrier,omitempty"`
	TrackingNumber string         `json:"trackingNumber,omitempty"`

	ShippingCostMinorUnits  int64 `json:"shippingCostMinorUnits"`
	InsuranceCostMinorUnits int64 `json:"insuranceCostMinorUnits"`
	OtherCostsMinorUnits    int64 `json:"otherCostsMinorUnits"`
	TotalCostMinorUnits     int64 `json:"totalCostMinorUnits"`

	LockedExchangeRate         *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate     *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalCostBaseCurrencyMinor *int64           `json:"totalCostBaseCurrencyMinorUnits,omitempty"`

	EstimatedDeparture *time.Time `json:"estimatedDeparture,omitempty"`
	EstimatedArrival   *time.Time `json:"estimatedArrival,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	ConfirmedBy        string     `json:"confirmedBy,omitempty"` // UserID reference
	DeliveredAt        *time.Time `json:"deliveredAt,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	AuditFields
}

// IsFinalized reports whether the shipment left draft state; cost fields are
// frozen from then on.
func (s *Shipment) IsFinalized() bool {
	return s.Status != ShipmentDraft
}

// ShipmentItem is one shipped product line.
type ShipmentItem struct {
	ShipmentItemID      string          `json:"shipmentItemID"`
	ShipmentID          string          `json:"shipmentID"`
	PurchaseOrderItemID string          `json:"purchaseOrderItemID,omitempty"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
}
