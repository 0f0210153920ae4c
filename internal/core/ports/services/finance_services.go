package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// FinanceReaderSvc defines read operations for the financial ledger
type FinanceReaderSvc interface {
	// GetTransactionByID retrieves a ledger transaction.
	GetTransactionByID(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error)

	// GetTransactionByDocument retrieves the transaction opened for a source
	// document, if any.
	GetTransactionByDocument(ctx context.Context, organizationID, documentType, documentID, requestingUserID string) (*domain.FinancialTransaction, error)

	// ListTransactions retrieves a paginated, filterable list of transactions.
	ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int, requestingUserID string) ([]domain.FinancialTransaction, int, error)

	// GetPaymentByID retrieves a payment with its allocations.
	GetPaymentByID(ctx context.Context, organizationID, paymentID, requestingUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error)

	// ListPayments retrieves a paginated list of payments.
	ListPayments(ctx context.Context, organizationID string, limit, offset int, requestingUserID string) ([]domain.FinancialPayment, int, error)
}

// FinanceWriterSvc defines write operations for the financial ledger
type FinanceWriterSvc interface {
	// CreateTransaction registers a payable or receivable, fixing its
	// base-currency amount via the rate lookup.
	CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, error)

	// RecordPayment records a payment and its allocations, then rolls each
	// allocated transaction's status forward from its allocation sum.
	RecordPayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error)

	// CancelTransaction cancels a pending transaction with no allocations.
	CancelTransaction(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error)
}

// FinanceSvcFacade combines all finance-related service interfaces
type FinanceSvcFacade interface {
	FinanceReaderSvc
	FinanceWriterSvc
}
