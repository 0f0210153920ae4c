package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest registers a payable or receivable in the ledger.
type CreateTransactionRequest struct {
	Kind             string     `json:"kind" binding:"required,oneof=PAYABLE RECEIVABLE"`
	Description      string     `json:"description" binding:"required"`
	CounterpartyName string     `json:"counterpartyName" binding:"required"`
	CurrencyCode     string     `json:"currencyCode" binding:"required,len=3,uppercase"`
	AmountMinorUnits int64      `json:"amountMinorUnits" binding:"required"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	DocumentType     string     `json:"documentType,omitempty" binding:"omitempty,oneof=invoice purchase_order shipment"`
	DocumentID       string     `json:"documentID,omitempty"`
}

// PaymentAllocationRequest applies part of a payment to one transaction.
type PaymentAllocationRequest struct {
	TransactionID    string `json:"transactionID" binding:"required"`
	AmountMinorUnits int64  `json:"amountMinorUnits" binding:"required,gt=0"`
}

// CreatePaymentRequest records a bank movement and its allocations.
type CreatePaymentRequest struct {
	Direction        string                     `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	CounterpartyName string                     `json:"counterpartyName" binding:"required"`
	CurrencyCode     string                     `json:"currencyCode" binding:"required,len=3,uppercase"`
	AmountMinorUnits int64                      `json:"amountMinorUnits" binding:"required,gt=0"`
	PaymentDate      time.Time                  `json:"paymentDate" binding:"required"`
	Reference        string                     `json:"reference,omitempty"`
	Allocations      []PaymentAllocationRequest `json:"allocations" binding:"required,min=1,dive"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID                string           `json:"transactionID"`
	OrganizationID               string           `json:"organizationID"`
	TransactionNumber            string           `json:"transactionNumber"`
	Kind                         string           `json:"kind"`
	Description                  string           `json:"description"`
	CounterpartyName             string           `json:"counterpartyName"`
	CurrencyCode                 string           `json:"currencyCode"`
	AmountMinorUnits             int64            `json:"amountMinorUnits"`
	AmountBaseCurrencyMinorUnits int64            `json:"amountBaseCurrencyMinorUnits"`
	LockedExchangeRate           *decimal.Decimal `json:"lockedExchangeRate,omitempty"`
	DueDate                      *time.Time       `json:"dueDate,omitempty"`
	Status                       string           `json:"status"`
	Overdue                      bool             `json:"overdue"`
	DocumentType                 string           `json:"documentType,omitempty"`
	DocumentID                   string           `json:"documentID,omitempty"`
	CreatedAt                    time.Time        `json:"createdAt"`
	CreatedBy                    string           `json:"createdBy"`
	LastUpdatedAt                time.Time        `json:"lastUpdatedAt"`
}

// PaymentAllocationResponse defines the data returned for an allocation.
type PaymentAllocationResponse struct {
	AllocationID     string    `json:"allocationID"`
	PaymentID        string    `json:"paymentID"`
	TransactionID    string    `json:"transactionID"`
	AmountMinorUnits int64     `json:"amountMinorUnits"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID        string                      `json:"paymentID"`
	OrganizationID   string                      `json:"organizationID"`
	PaymentNumber    string                      `json:"paymentNumber"`
	Direction        string                      `json:"direction"`
	CounterpartyName string                      `json:"counterpartyName"`
	CurrencyCode     string                      `json:"currencyCode"`
	AmountMinorUnits int64                       `json:"amountMinorUnits"`
	PaymentDate      time.Time                   `json:"paymentDate"`
	Reference        string                      `json:"reference,omitempty"`
	Allocations      []PaymentAllocationResponse `json:"allocations,omitempty"`
	CreatedAt        time.Time                   `json:"createdAt"`
	CreatedBy        string                      `json:"createdBy"`
}

// ToTransactionResponse converts a domain.FinancialTransaction to its DTO.
func ToTransactionResponse(t *domain.FinancialTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:                t.TransactionID,
		OrganizationID:               t.OrganizationID,
		TransactionNumber:            t.TransactionNumber,
		Kind:                         string(t.Kind),
		Description:                  t.Description,
		CounterpartyName:             t.CounterpartyName,
		CurrencyCode:                 t.CurrencyCode,
		AmountMinorUnits:             t.AmountMinorUnits,
		AmountBaseCurrencyMinorUnits: t.AmountBaseCurrencyMinorUnits,
		LockedExchangeRate:           t.LockedExchangeRate,
		DueDate:                      t.DueDate,
		Status:                       string(t.Status),
		Overdue:                      t.IsOverdue(),
		DocumentType:                 t.DocumentType,
		DocumentID:                   t.DocumentID,
		CreatedAt:                    t.CreatedAt,
		CreatedBy:                    t.CreatedBy,
		LastUpdatedAt:                t.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts transactions to DTOs.
func ToListTransactionResponse(txns []domain.FinancialTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ToPaymentResponse converts a domain.FinancialPayment and its allocations to a DTO.
func ToPaymentResponse(p *domain.FinancialPayment, allocations []domain.PaymentAllocation) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:        p.PaymentID,
		OrganizationID:   p.OrganizationID,
		PaymentNumber:    p.PaymentNumber,
		Direction:        string(p.Direction),
		CounterpartyName: p.CounterpartyName,
		CurrencyCode:     p.CurrencyCode,
		AmountMinorUnits: p.AmountMinorUnits,
		PaymentDate:      p.PaymentDate,
		Reference:        p.Reference,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
	if len(allocations) > 0 {
		resp.Allocations = make([]PaymentAllocationResponse, len(allocations))
		for i, a := range allocations {
			resp.Allocations[i] = PaymentAllocationResponse{
				AllocationID:     a.AllocationID,
				PaymentID:        a.PaymentID,
				TransactionID:    a.TransactionID,
				AmountMinorUnits: a.AmountMinorUnits,
				CreatedAt:        a.CreatedAt,
			}
		}
	}
	return resp
}

// ToListPaymentResponse converts payments (without allocations) to DTOs.
func ToListPaymentResponse(payments []domain.FinancialPayment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i], nil)
	}
	return res
}
