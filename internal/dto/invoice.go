package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one invoiced product line.
type InvoiceItemRequest struct {
	ProductName         string          `json:"productName" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits" binding:"required"`
}

// CreateInvoiceRequest drafts an invoice of the given kind.
type CreateInvoiceRequest struct {
	Kind             string  `json:"kind" binding:"required,oneof=PROFORMA COMMERCIAL SALES"`
	ShipmentID       *string `json:"shipmentID,omitempty"`
	PurchaseOrderID  *string `json:"purchaseOrderID,omitempty"`
	RFQID            *string `json:"rfqID,omitempty"`
	CounterpartyName string  `json:"counterpartyName" binding:"required"`
	CurrencyCode     string  `json:"currencyCode" binding:"required,len=3,uppercase"`

	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits,omitempty"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits,omitempty"`

	DueDate *time.Time           `json:"dueDate,omitempty"`
	Notes   string               `json:"notes,omitempty"`
	Items   []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest edits a draft invoice.
type UpdateInvoiceRequest struct {
	CounterpartyName         *string              `json:"counterpartyName,omitempty"`
	DiscountAmountMinorUnits *int64               `json:"discountAmountMinorUnits,omitempty"`
	TaxAmountMinorUnits      *int64               `json:"taxAmountMinorUnits,omitempty"`
	DueDate                  *time.Time           `json:"dueDate,omitempty"`
	Notes                    *string              `json:"notes,omitempty"`
	Items                    []InvoiceItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
}

// InvoiceItemResponse defines the data returned for an invoice line.
type InvoiceItemResponse struct {
	InvoiceItemID       string          `json:"invoiceItemID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceMinorUnits int64           `json:"unitPriceMinorUnits"`
	TotalMinorUnits     int64           `json:"totalMinorUnits"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID        string  `json:"invoiceID"`
	OrganizationID   string  `json:"organizationID"`
	InvoiceNumber    string  `json:"invoiceNumber"`
	Kind             string  `json:"kind"`
	ShipmentID       *string `json:"shipmentID,omitempty"`
	PurchaseOrderID  *string `json:"purchaseOrderID,omitempty"`
	RFQID            *string `json:"rfqID,omitempty"`
	CounterpartyName string  `json:"counterpartyName"`
	CurrencyCode     string  `json:"currencyCode"`
	Status           string  `json:"status"`

	SubtotalMinorUnits       int64 `json:"subtotalMinorUnits"`
	DiscountAmountMinorUnits int64 `json:"discountAmountMinorUnits"`
	TaxAmountMinorUnits      int64 `json:"taxAmountMinorUnits"`
	TotalAmountMinorUnits    int64 `json:"totalAmountMinorUnits"`

	LockedExchangeRate          *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	LockedExchangeRateDate      *time.Time       `json:"lockedExchangeRateDate,omitempty"`
	TotalBaseCurrencyMinorUnits *int64           `json:"totalBaseCurrencyMinorUnits,omitempty"`

	DueDate       *time.Time            `json:"dueDate,omitempty"`
	IssuedAt      *time.Time            `json:"issuedAt,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice and its items to a DTO.
func ToInvoiceResponse(inv *domain.Invoice, items []domain.InvoiceItem) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:                   inv.InvoiceID,
		OrganizationID:              inv.OrganizationID,
		InvoiceNumber:               inv.InvoiceNumber,
		Kind:                        string(inv.Kind),
		ShipmentID:                  inv.ShipmentID,
		PurchaseOrderID:             inv.PurchaseOrderID,
		RFQID:                       inv.RFQID,
		CounterpartyName:            inv.CounterpartyName,
		CurrencyCode:                inv.CurrencyCode,
		Status:                      string(inv.Status),
		SubtotalMinorUnits:          inv.SubtotalMinorUnits,
		DiscountAmountMinorUnits:    inv.DiscountAmountMinorUnits,
		TaxAmountMinorUnits:         inv.TaxAmountMinorUnits,
		TotalAmountMinorUnits:       inv.TotalAmountMinorUnits,
		LockedExchangeRate:          inv.LockedExchangeRate,
		LockedExchangeRateDate:      inv.LockedExchangeRateDate,
		TotalBaseCurrencyMinorUnits: inv.TotalBaseCurrencyMinorUnits,
		DueDate:                     inv.DueDate,
		IssuedAt:                    inv.IssuedAt,
		Notes:                       inv.Notes,
		CreatedAt:                   inv.CreatedAt,
		CreatedBy:                   inv.CreatedBy,
		LastUpdatedAt:               inv.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = InvoiceItemResponse{
				InvoiceItemID:       item.InvoiceItemID,
				ProductName:         item.ProductName,
				Quantity:            item.Quantity,
				UnitPriceMinorUnits: item.UnitPriceMinorUnits,
				TotalMinorUnits:     item.TotalMinorUnits,
			}
		}
	}
	return resp
}

// ToListInvoiceResponse converts invoices (without items) to DTOs.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], nil)
	}
	return res
}
