package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind splits the ledger into money owed to suppliers and money
// owed by clients.
type TransactionKind string

const (
	Payable    TransactionKind = "PAYABLE"
	Receivable TransactionKind = "RECEIVABLE"
)

// TransactionStatus is driven by payment allocations, never set directly.
type TransactionStatus string

const (
	TxnPending       TransactionStatus = "PENDING"
	TxnPartiallyPaid TransactionStatus = "PARTIALLY_PAID"
	TxnPaid          TransactionStatus = "PAID"
	TxnCancelled     TransactionStatus = "CANCELLED"
)

// FinancialTransaction is one payable or receivable in the ledger, optionally
// traced to the document that produced it (invoice, purchase order, shipment).
type FinancialTransaction struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID)
	OrganizationID    string          `json:"organizationID"`
	TransactionNumber string          `json:"transactionNumber"` // FT-[YYYY]-[NNNN]
	Kind              TransactionKind `json:"kind"`
	Description       string          `json:"description"`
	CounterpartyName  string          `json:"counterpartyName"`
	CurrencyCode      string          `json:"currencyCode"`

	AmountMinorUnits int64 `json:"amountMinorUnits"`
	// AmountBaseCurrencyMinorUnits is fixed at creation via the locked rate;
	// ledger reports never re-convert.
	AmountBaseCurrencyMinorUnits int64            `json:"amountBaseCurrencyMinorUnits"`
	LockedExchangeRate           *decimal.Decimal `json:"lockedExchangeRate,omitempty"`

	DueDate *time.Time        `json:"dueDate,omitempty"`
	Status  TransactionStatus `json:"status"`

	// Optional back-reference to the originating document.
	DocumentType string `json:"documentType,omitempty"` // "invoice", "purchase_order", "shipment"
	DocumentID   string `json:"documentID,omitempty"`
	AuditFields
}

// IsOverdue reports whether an unpaid transaction is past its due date.
func (t *FinancialTransaction) IsOverdue() bool {
	if t.Status == TxnPaid || t.Status == TxnCancelled || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(time.Now())
}

// PaymentDirection indicates money leaving (debit) or entering (credit).
type PaymentDirection string

const (
	PaymentDebit  PaymentDirection = "DEBIT"
	PaymentCredit PaymentDirection = "CREDIT"
)

// FinancialPayment is a single bank movement, allocated against one or more
// transactions.
type FinancialPayment struct {
	PaymentID        string           `json:"paymentID"` // Primary Key (UUID)
	OrganizationID   string           `json:"organizationID"`
	PaymentNumber    string           `json:"paymentNumber"` // FP-[YYYY]-[NNNN]
	Direction        PaymentDirection `json:"direction"`
	CounterpartyName string           `json:"counterpartyName"`
	CurrencyCode     string           `json:"currencyCode"`
	AmountMinorUnits int64            `json:"amountMinorUnits"`
	PaymentDate      time.Time        `json:"paymentDate"`
	Reference        string           `json:"reference,omitempty"`
	AuditFields
}

// PaymentAllocation applies part of a payment to one transaction.
type PaymentAllocation struct {
	AllocationID     string    `json:"allocationID"` // Primary Key (UUID)
	PaymentID        string    `json:"paymentID"`
	TransactionID    string    `json:"transactionID"`
	AmountMinorUnits int64     `json:"amountMinorUnits"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}
