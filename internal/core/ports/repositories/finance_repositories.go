package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// TransactionReader defines read operations for financial transaction data
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.FinancialTransaction, error)
	FindTransactionByDocument(ctx context.Context, organizationID, documentType, documentID string) (*domain.FinancialTransaction, error)
	ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int) ([]domain.FinancialTransaction, int, error)
	CountTransactionsForYear(ctx context.Context, organizationID string, year int) (int, error)
}

// TransactionWriter defines write operations for financial transaction data
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, transaction domain.FinancialTransaction) error
	UpdateTransaction(ctx context.Context, transaction domain.FinancialTransaction) error
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, organizationID, paymentID string) (*domain.FinancialPayment, error)
	ListPayments(ctx context.Context, organizationID string, limit, offset int) ([]domain.FinancialPayment, int, error)
	ListAllocationsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentAllocation, error)
	ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)
	CountPaymentsForYear(ctx context.Context, organizationID string, year int) (int, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a payment and its allocations atomically.
	SavePayment(ctx context.Context, payment domain.FinancialPayment, allocations []domain.PaymentAllocation) error
	UpdatePayment(ctx context.Context, payment domain.FinancialPayment) error
}

// FinanceRepositoryFacade combines all finance repository interfaces
type FinanceRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	PaymentReader
	PaymentWriter
}
