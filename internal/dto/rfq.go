package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RFQItemRequest is one requested product line in an RFQ create/update call.
type RFQItemRequest struct {
	ProductName               string          `json:"productName" binding:"required"`
	SKU                       string          `json:"sku,omitempty"`
	Quantity                  decimal.Decimal `json:"quantity" binding:"required"`
	TargetUnitPriceMinorUnits int64           `json:"targetUnitPriceMinorUnits,omitempty"`
}

// CreateRFQRequest defines the data needed to open a request for quotation.
type CreateRFQRequest struct {
	ClientName        string           `json:"clientName" binding:"required"`
	ClientCode        string           `json:"clientCode" binding:"required,min=2,max=5,uppercase"`
	CurrencyCode      string           `json:"currencyCode" binding:"required,len=3,uppercase"`
	CommissionPercent decimal.Decimal  `json:"commissionPercent"`
	CommissionType    string           `json:"commissionType" binding:"required,oneof=EMBEDDED SEPARATE"`
	Items             []RFQItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateRFQStatusRequest moves an RFQ through its lifecycle.
type UpdateRFQStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT OPEN CLOSED CANCELLED"`
}

// RFQItemResponse defines the data returned for an RFQ line.
type RFQItemResponse struct {
	RFQItemID                 string          `json:"rfqItemID"`
	ProductName               string          `json:"productName"`
	SKU                       string          `json:"sku,omitempty"`
	Quantity                  decimal.Decimal `json:"quantity"`
	TargetUnitPriceMinorUnits int64           `json:"targetUnitPriceMinorUnits"`
}

// RFQResponse defines the data returned for an RFQ.
type RFQResponse struct {
	RFQID                 string            `json:"rfqID"`
	OrganizationID        string            `json:"organizationID"`
	RFQNumber             string            `json:"rfqNumber"`
	ClientName            string            `json:"clientName"`
	ClientCode            string            `json:"clientCode"`
	CurrencyCode          string            `json:"currencyCode"`
	CommissionPercent     decimal.Decimal   `json:"commissionPercent"`
	CommissionType        string            `json:"commissionType"`
	Status                string            `json:"status"`
	SelectedQuoteID       *string           `json:"selectedQuoteID,omitempty"`
	TotalAmountMinorUnits int64             `json:"totalAmountMinorUnits"`
	Items                 []RFQItemResponse `json:"items,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	CreatedBy             string            `json:"createdBy"`
	LastUpdatedAt         time.Time         `json:"lastUpdatedAt"`
}

// RFQMarginResponse reports the realized economics of an RFQ in the
// organization's base currency. Revenue comes from the approved customer
// quote, purchase costs from the purchase orders raised against the RFQ and
// project expenses from their shipments. Locked exchange rates are preferred;
// amounts not yet locked are converted at the current rate.
type RFQMarginResponse struct {
	RFQID                     string          `json:"rfqID"`
	RFQNumber                 string          `json:"rfqNumber"`
	BaseCurrencyCode          string          `json:"baseCurrencyCode"`
	RevenueMinorUnits         int64           `json:"revenueMinorUnits"`
	PurchaseCostsMinorUnits   int64           `json:"purchaseCostsMinorUnits"`
	ProjectExpensesMinorUnits int64           `json:"projectExpensesMinorUnits"`
	MarginMinorUnits          int64           `json:"marginMinorUnits"`
	MarginPercent             decimal.Decimal `json:"marginPercent"`
	HasApprovedCustomerQuote  bool            `json:"hasApprovedCustomerQuote"`
}

// ToRFQResponse converts a domain.RFQ and its items to an RFQResponse DTO.
func ToRFQResponse(rfq *domain.RFQ, items []domain.RFQItem) RFQResponse {
	resp := RFQResponse{
		RFQID:                 rfq.RFQID,
		OrganizationID:        rfq.OrganizationID,
		RFQNumber:             rfq.RFQNumber,
		ClientName:            rfq.ClientName,
		ClientCode:            rfq.ClientCode,
		CurrencyCode:          rfq.CurrencyCode,
		CommissionPercent:     rfq.CommissionPercent,
		CommissionType:        string(rfq.CommissionType),
		Status:                string(rfq.Status),
		SelectedQuoteID:       rfq.SelectedQuoteID,
		TotalAmountMinorUnits: rfq.TotalAmountMinorUnits,
		CreatedAt:             rfq.CreatedAt,
		CreatedBy:             rfq.CreatedBy,
		LastUpdatedAt:         rfq.LastUpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]RFQItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = RFQItemResponse{
				RFQItemID:                 item.RFQItemID,
				ProductName:               item.ProductName,
				SKU:                       item.SKU,
				Quantity:                  item.Quantity,
				TargetUnitPriceMinorUnits: item.TargetUnitPriceMinorUnits,
			}
		}
	}
	return resp
}

// ToListRFQResponse converts RFQs (without items) to DTOs.
func ToListRFQResponse(rfqs []domain.RFQ) []RFQResponse {
	res := make([]RFQResponse, len(rfqs))
	for i := range rfqs {
		res[i] = ToRFQResponse(&rfqs[i], nil)
	}
	return res
}
