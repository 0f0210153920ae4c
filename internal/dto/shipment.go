package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ShipmentItemRequest is one shipped product line.
type ShipmentItemRequest struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID,omitempty"`
	ProductName         string          `json:"productName" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateShipmentRequest drafts a shipment against a confirmed purchase order.
type CreateShipmentRequest struct {
	PurchaseOrderID string `json:"purchaseOrderID" binding:"required"`
	CurrencyCode    string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Carrier         string `json:"carrier,omitempty"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`

	ShippingCostMinorUnits  int64 `json:"shippingCostMinorUnits,omitempty"`
	InsuranceCostMinorUnits int64 `json:"insuranceCostMinorUnits,omitempty"`
	OtherCostsMinorUnits    int64 `json:"otherCostsMinorUnits,omitempty"`

	EstimatedDeparture *time.Time            `json:"estimatedDeparture,omitempty"`
	EstimatedArrival   *time.Time            `json:"estimatedArrival,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	Items              []ShipmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateShipmentRequest edits a draft shipment.
type UpdateShipmentRequest struct {
	Carrier                 *string               `json:"carrier,omitempty"`
	TrackingNumber          *string               `json:"trackingNumber,omitempty"`
	ShippingCostMinorUnits  *int64                `json:"shippingCostMinorUnits,omitempty"`
	InsuranceCostMinorUnits *int64                `json:"insuranceCostMinorUnits,omitempty"`
	OtherCostsMinorUnits    *int64                `json:"otherCostsMinorUnits,omitempty"`
	EstimatedDeparture      *time.Time            `json:"estimatedDeparture,omitempty"`
	EstimatedArrival        *time.Time            `json:"estimatedArrival,omitempty"`
	Notes                   *string               `json:"notes,omitempty"`
	Items                   []ShipmentItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
}

// UpdateShipmentStatusRequest moves a shipment through its lifecycle.
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED IN_TRANSIT DELIVERED"`
}

// ShipmentItemResponse defines the data returned for a shipment line.
type ShipmentItemResponse struct {
	ShipmentItemID      string          `json:"shipmentItemID"`
	PurchaseOrderItemID string          `json:"purchaseOrderItemID,omitempty"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
}

// ShipmentResponse defines the data returned for a shipment.
type ShipmentResponse struct {
	ShipmentID      string `json:"shipmentID"`
	OrganizationID  string `json:"organizationID"`
	ShipmentNumber  string `json:"shipmentNumber"`
	PurchaseOrderID string `json:"purchaseOrderID"`
	CurrencyCode    string `json:"currencyCode"`
	Status          string `json:"status"`
	Carrier         string `json:"carrier,omitempty"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`

	ShippingCostMinorUnits  int64 `json:"shippingCostMinorUnits"`
	InsuranceCostMinorUnits int64 `json:"insuranceCostMinorUnits"`
	OtherCostsMinorUnits    int64 `json:"otherCostsMinorUnits"`
	TotalCostMinorUnits     int64 `json:"totalCostMinorUnits"`

	LockedExchangeRate         *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate     *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalCostBaseCurrencyMinor *int64           `json:"totalCostBaseCurrencyMinorUnits,omitempty"`

	EstimatedDeparture *time.Time             `json:"estimatedDeparture,omitempty"`
	EstimatedArrival   *time.Time             `json:"estimatedArrival,omitempty"`
	ConfirmedAt        *time.Time             `json:"confirmedAt,omitempty"`
	DeliveredAt        *time.Time             `json:"deliveredAt,omitempty"`
	Notes              string                 `json:"notes,omitempty"`
	Items              []ShipmentItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
	LastUpdatedAt      time.Time              `json:"lastUpdatedAt"`
}

// ToShipmentResponse converts a domain.Shipment and its items to a DTO.
func ToShipmentResponse(s *domain.Shipment, items []domain.ShipmentItem) ShipmentResponse {
	resp := ShipmentResponse{
		ShipmentID:                 s.ShipmentID,
		OrganizationID:             s.OrganizationID,
		ShipmentNumber:             s.ShipmentNumber,
		PurchaseOrderID:            s.PurchaseOrderID,
		CurrencyCode:               s.CurrencyCode,
		Status:                     string(s.Status),
		Carrier:                    s.Carrier,
		TrackingNumber:             s.TrackingNumber,
		ShippingCostMinorUnits:     s.ShippingCostMinorUnits,
		InsuranceCostMinorUnits:    s.InsuranceCostMinorUnits,
		OtherCostsMinorUnits:       s.OtherCostsMinorUnits,
		TotalCostMinorUnits:        s.TotalCostMinorUnits,
		LockedExchangeRate:         s.LockedExchangeRate,
		LockedExchangeRateDate:     s.LockedExchangeRateDate,
		TotalCostBaseCurrencyMinor: s.TotalCostBaseCurrencyMinor,
		EstimatedDeparture:         s.EstimatedDeparture,
		EstimatedArrival:           s.EstimatedArrival,
		ConfirmedAt:                s.ConfirmedAt,
		DeliveredAt:                s.DeliveredAt,
		Notes:                      s.Notes,
		CreatedAt:                  s.CreatedAt,
		CreatedBy:                  s.CreatedBy,
		LastUpdatedAt:              s.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]ShipmentItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = ShipmentItemResponse{
				ShipmentItemID:      item.ShipmentItemID,
				PurchaseOrderItemID: item.PurchaseOrderItemID,
				ProductName:         item.ProductName,
				Quantity:            item.Quantity,
			}
		}
	}
	return resp
}

// ToListShipmentResponse converts shipments (without items) to DTOs.
func ToListShipmentResponse(shipments []domain.Shipment) []ShipmentResponse {
	res := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		res[i] = ToShipmentResponse(&shipments[i], nil)
	}
	return res
}
