package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	SKU                string `json:"sku" binding:"required"`
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description,omitempty"`
	HSCode             string `json:"hsCode,omitempty"`
	OriginCountry      string `json:"originCountry,omitempty" binding:"omitempty,len=2,uppercase"`
	MOQ                int    `json:"moq,omitempty" binding:"omitempty,min=1"`
	LeadTimeDays       int    `json:"leadTimeDays,omitempty" binding:"omitempty,min=0"`
	CurrencyCode       string `json:"currencyCode" binding:"required,len=3,uppercase"`
	UnitCostMinorUnits int64  `json:"unitCostMinorUnits" binding:"min=0"`
}

// UpdateProductRequest edits catalog product fields. A changed unit cost is
// recorded in the product's cost history, with CostChangeReason as the reason.
type UpdateProductRequest struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	HSCode             *string `json:"hsCode,omitempty"`
	OriginCountry      *string `json:"originCountry,omitempty" binding:"omitempty,len=2,uppercase"`
	MOQ                *int    `json:"moq,omitempty" binding:"omitempty,min=1"`
	LeadTimeDays       *int    `json:"leadTimeDays,omitempty" binding:"omitempty,min=0"`
	UnitCostMinorUnits *int64  `json:"unitCostMinorUnits,omitempty" binding:"omitempty,min=0"`
	CostChangeReason   string  `json:"costChangeReason,omitempty"`
	IsActive           *bool   `json:"isActive,omitempty"`
}

// ProductResponse defines the data returned for a catalog product.
type ProductResponse struct {
	ProductID          string    `json:"productID"`
	OrganizationID     string    `json:"organizationID"`
	SKU                string    `json:"sku"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	HSCode             string    `json:"hsCode,omitempty"`
	OriginCountry      string    `json:"originCountry,omitempty"`
	MOQ                int       `json:"moq,omitempty"`
	LeadTimeDays       int       `json:"leadTimeDays,omitempty"`
	CurrencyCode       string    `json:"currencyCode"`
	UnitCostMinorUnits int64     `json:"unitCostMinorUnits"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:          p.ProductID,
		OrganizationID:     p.OrganizationID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		HSCode:             p.HSCode,
		OriginCountry:      p.OriginCountry,
		MOQ:                p.MOQ,
		LeadTimeDays:       p.LeadTimeDays,
		CurrencyCode:       p.CurrencyCode,
		UnitCostMinorUnits: p.UnitCostMinorUnits,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return res
}

// ProductCostEntryResponse is one row of a product's cost change history.
type ProductCostEntryResponse struct {
	CostEntryID          string          `json:"costEntryID"`
	ProductID            string          `json:"productID"`
	OldCostMinorUnits    int64           `json:"oldCostMinorUnits"`
	NewCostMinorUnits    int64           `json:"newCostMinorUnits"`
	DifferenceMinorUnits int64           `json:"differenceMinorUnits"`
	PercentChange        decimal.Decimal `json:"percentChange"`
	Reason               string          `json:"reason,omitempty"`
	ChangedBy            string          `json:"changedBy"`
	ChangedAt            time.Time       `json:"changedAt"`
}

// ToListProductCostEntryResponse converts cost history rows to DTOs
func ToListProductCostEntryResponse(entries []domain.ProductCostEntry) []ProductCostEntryResponse {
	res := make([]ProductCostEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ProductCostEntryResponse{
			CostEntryID:          e.CostEntryID,
			ProductID:            e.ProductID,
			OldCostMinorUnits:    e.OldCostMinorUnits,
			NewCostMinorUnits:    e.NewCostMinorUnits,
			DifferenceMinorUnits: e.DifferenceMinorUnits,
			PercentChange:        e.PercentChange,
			Reason:               e.Reason,
			ChangedBy:            e.ChangedBy,
			ChangedAt:            e.ChangedAt,
		}
	}
	return res
}

// CreateClientRequest adds a client. Code is optional; when omitted it is
// derived from the client name.
type CreateClientRequest struct {
	Code        string `json:"code,omitempty" binding:"omitempty,min=2,max=10,uppercase"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
	Country     string `json:"country,omitempty" binding:"omitempty,len=2,uppercase"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateClientRequest edits mutable client fields. The code is fixed at
// creation because issued RFQ numbers embed it.
type UpdateClientRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Country     *string `json:"country,omitempty" binding:"omitempty,len=2,uppercase"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID       string    `json:"clientID"`
	OrganizationID string    `json:"organizationID"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	ContactName    string    `json:"contactName,omitempty"`
	Email          string    `json:"email,omitempty"`
	Country        string    `json:"country,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:       c.ClientID,
		OrganizationID: c.OrganizationID,
		Code:           c.Code,
		Name:           c.Name,
		ContactName:    c.ContactName,
		Email:          c.Email,
		Country:        c.Country,
		Notes:          c.Notes,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
