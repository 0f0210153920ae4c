package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one ordered product line.
type PurchaseOrderItemRequest struct {
	ProductName         string          `json:"productName" binding:"required"`
	SKU                 string          `json:"sku,omitempty"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits" binding:"required"`
}

// CreatePurchaseOrderRequest defines the data needed to draft a purchase order.
type CreatePurchaseOrderRequest struct {
	SupplierQuoteID *string `json:"supplierQuoteID,omitempty"`
	SupplierName    string  `json:"supplierName" binding:"required"`
	CurrencyCode    string  `json:"currencyCode" binding:"required,len=3,uppercase"`
	Incoterm        string  `json:"incoterm,omitempty"`
	DeliveryAddress string  `json:"deliveryAddress,omitempty"`

	ShippingCostMinorUnits   int64 `json:"shippingCostMinorUnits,omitempty"`
	ShippingIncludedInPrice  bool  `json:"shippingIncludedInPrice,omitempty"`
	InsuranceCostMinorUnits  int64 `json:"insuranceCostMinorUnits,omitempty"`
	InsuranceIncludedInPrice bool  `json:"insuranceIncludedInPrice,omitempty"`
	OtherCostsMinorUnits     int64 `json:"otherCostsMinorUnits,omitempty"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits,omitempty"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits,omitempty"`

	Notes                string                     `json:"notes,omitempty"`
	InternalNotes        string                     `json:"internalNotes,omitempty"`
	ExpectedDeliveryDate *time.Time                 `json:"expectedDeliveryDate,omitempty"`
	Items                []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest edits a draft purchase order. Finalized orders
// reject it.
type UpdatePurchaseOrderRequest struct {
	Incoterm        *string `json:"incoterm,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`

	ShippingCostMinorUnits   *int64 `json:"shippingCostMinorUnits,omitempty"`
	ShippingIncludedInPrice  *bool  `json:"shippingIncludedInPrice,omitempty"`
	InsuranceCostMinorUnits  *int64 `json:"insuranceCostMinorUnits,omitempty"`
	InsuranceIncludedInPrice *bool  `json:"insuranceIncludedInPrice,omitempty"`
	OtherCostsMinorUnits     *int64 `json:"otherCostsMinorUnits,omitempty"`
	TaxAmountMinorUnits      *int64 `json:"taxAmountMinorUnits,omitempty"`
	DiscountAmountMinorUnits *int64 `json:"discountAmountMinorUnits,omitempty"`

	Notes                *string                    `json:"notes,omitempty"`
	InternalNotes        *string                    `json:"internalNotes,omitempty"`
	ExpectedDeliveryDate *time.Time                 `json:"expectedDeliveryDate,omitempty"`
	Items                []PurchaseOrderItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
}

// PurchaseOrderItemResponse defines the data returned for a PO line.
type PurchaseOrderItemResponse struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID"`
	ProductName         string          `json:"productName"`
	SKU                 string          `json:"sku,omitempty"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"`
}

// PurchaseOrderResponse defines the data returned for a purchase order.
type PurchaseOrderResponse struct {
	PurchaseOrderID string  `json:"purchaseOrderID"`
	OrganizationID  string  `json:"organizationID"`
	PONumber        string  `json:"poNumber"`
	Revision        int     `json:"revision"`
	RFQID           *string `json:"rfqID,omitempty"`
	SupplierQuoteID *string `json:"supplierQuoteID,omitempty"`
	SupplierName    string  `json:"supplierName"`
	CurrencyCode    string  `json:"currencyCode"`
	Status          string  `json:"status"`
	Incoterm        string  `json:"incoterm,omitempty"`
	DeliveryAddress string  `json:"deliveryAddress,omitempty"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	ShippingCostMinorUnits   int64 `json:"shippingCostMinorUnits"`
	ShippingIncludedInPrice  bool  `json:"shippingIncludedInPrice"`
	InsuranceCostMinorUnits  int64 `json:"insuranceCostMinorUnits"`
	InsuranceIncludedInPrice bool  `json:"insuranceIncludedInPrice"`
	OtherCostsMinorUnits     int64 `json:"otherCostsMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	Notes                string                      `json:"notes,omitempty"`
	InternalNotes        string                      `json:"internalNotes,omitempty"`
	SentAt               *time.Time                  `json:"sentAt,omitempty"`
	ConfirmedAt          *time.Time                  `json:"confirmedAt,omitempty"`
	ExpectedDeliveryDate *time.Time                  `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time                  `json:"actualDeliveryDate,omitempty"`
	Items                []PurchaseOrderItemResponse `json:"items,omitempty"`
	CreatedAt            time.Time                   `json:"createdAt"`
	CreatedBy            string                      `json:"createdBy"`
	LastUpdatedAt        time.Time                   `json:"lastUpdatedAt"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder and its items to a DTO.
func ToPurchaseOrderResponse(po *domain.PurchaseOrder, items []domain.PurchaseOrderItem) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		PurchaseOrderID:             po.PurchaseOrderID,
		OrganizationID:              po.OrganizationID,
		PONumber:                    po.PONumber,
		Revision:                    po.Revision,
		RFQID:                       po.RFQID,
		SupplierQuoteID:             po.SupplierQuoteID,
		SupplierName:                po.SupplierName,
		CurrencyCode:                po.CurrencyCode,
		Status:                      string(po.Status),
		Incoterm:                    po.Incoterm,
		DeliveryAddress:             po.DeliveryAddress,
		SubtotalMinorUnits:          po.SubtotalMinorUnits,
		ShippingCostMinorUnits:      po.ShippingCostMinorUnits,
		ShippingIncludedInPrice:     po.ShippingIncludedInPrice,
		InsuranceCostMinorUnits:     po.InsuranceCostMinorUnits,
		InsuranceIncludedInPrice:    po.InsuranceIncludedInPrice,
		OtherCostsMinorUnits:        po.OtherCostsMinorUnits,
		TaxAmountMinorUnits:         po.TaxAmountMinorUnits,
		DiscountAmountMinorUnits:    po.DiscountAmountMinorUnits,
		TotalAmountMinorUnits:       po.TotalAmountMinorUnits,
		LockedExchangeRate:          po.LockedExchangeRate,
		LockedExchangeRateDate:      po.LockedExchangeRateDate,
		TotalBaseCurrencyMinorUnits: po.TotalBaseCurrencyMinorUnits,
		Notes:                       po.Notes,
		InternalNotes:               po.InternalNotes,
		SentAt:                      po.SentAt,
		ConfirmedAt:                 po.ConfirmedAt,
		ExpectedDeliveryDate:        po.ExpectedDeliveryDate,
		ActualDeliveryDate:          po.ActualDeliveryDate,
		CreatedAt:                   po.CreatedAt,
		CreatedBy:                   po.CreatedBy,
		LastUpdatedAt:               po.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]PurchaseOrderItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = PurchaseOrderItemResponse{
				PurchaseOrderItemID: item.PurchaseOrderItemID,
				ProductName:         item.ProductName,
				SKU:                 item.SKU,
				Quantity:            item.Quantity,
				UnitPriceMinorUnits: item.UnitPriceMinorUnits,
				TotalMinorUnits:     item.TotalMinorUnits,
			}
		}
	}
	return resp
}

// ToListPurchaseOrderResponse converts purchase orders (without items) to DTOs.
func ToListPurchaseOrderResponse(pos []domain.PurchaseOrder) []PurchaseOrderResponse {
	res := make([]PurchaseOrderResponse, len(pos))
	for i := range pos {
		res[i] = ToPurchaseOrderResponse(&pos[i], nil)
	}
	return res
}
