package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/numbering"
)

// FinanceService keeps the payables/receivables ledger. Transaction status is
// derived from allocation sums, never set by callers.
type FinanceService struct {
	financeRepo      portsrepo.FinanceRepositoryFacade
	rateService      portssvc.ExchangeRateReaderSvc
	authorizer       portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode string
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(financeRepo portsrepo.FinanceRepositoryFacade, rateService portssvc.ExchangeRateReaderSvc, authorizer portssvc.OrganizationAuthorizerSvc, baseCurrencyCode string) *FinanceService {
	return &FinanceService{
		financeRepo:      financeRepo,
		rateService:      rateService,
		authorizer:       authorizer,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.FinanceSvcFacade = (*FinanceService)(nil)

// CreateTransaction registers a payable or receivable, fixing its
// base-currency amount via the rate lookup at creation time.
func (s *FinanceService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, err
	}
	if req.AmountMinorUnits <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	seq, err := s.financeRepo.CountTransactionsForYear(ctx, organizationID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions for numbering: %w", err)
	}

	txn := domain.FinancialTransaction{
		TransactionID:     uuid.NewString(),
		OrganizationID:    organizationID,
		TransactionNumber: numbering.TransactionNumber(now, seq+1),
		Kind:              domain.TransactionKind(req.Kind),
		Description:       req.Description,
		CounterpartyName:  req.CounterpartyName,
		CurrencyCode:      req.CurrencyCode,
		AmountMinorUnits:  req.AmountMinorUnits,
		DueDate:           req.DueDate,
		Status:            domain.TxnPending,
		DocumentType:      req.DocumentType,
		DocumentID:        req.DocumentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Fix the base-currency amount once; ledger reports never re-convert.
	rate, _, err := s.rateService.GetConversionRate(ctx, req.CurrencyCode, s.baseCurrencyCode, now)
	if err != nil {
		return nil, err
	}
	amountBase, err := money.Convert(req.AmountMinorUnits, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert transaction amount to base currency: %w", err)
	}
	txn.AmountBaseCurrencyMinorUnits = amountBase
	txn.LockedExchangeRate = &rate

	if err := s.financeRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_number", txn.TransactionNumber))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Info("Ledger transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.Int64("amount_base", amountBase),
	)
	return &txn, nil
}

// GetTransactionByID retrieves a ledger transaction.
func (s *FinanceService) GetTransactionByID(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	txn, err := s.financeRepo.FindTransactionByID(ctx, organizationID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionByDocument retrieves the transaction opened for a source document.
func (s *FinanceService) GetTransactionByDocument(ctx context.Context, organizationID, documentType, documentID, requestingUserID string) (*domain.FinancialTransaction, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	txn, err := s.financeRepo.FindTransactionByDocument(ctx, organizationID, documentType, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by document: %w", err)
	}
	return txn, nil
}

// ListTransactions retrieves a paginated, filterable list of transactions.
func (s *FinanceService) ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int, requestingUserID string) ([]domain.FinancialTransaction, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	txns, total, err := s.financeRepo.ListTransactions(ctx, organizationID, kind, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// GetPaymentByID retrieves a payment with its allocations.
func (s *FinanceService) GetPaymentByID(ctx context.Context, organizationID, paymentID, requestingUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	payment, err := s.financeRepo.FindPaymentByID(ctx, organizationID, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get payment: %w", err)
	}
	allocations, err := s.financeRepo.ListAllocationsByPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get payment allocations: %w", err)
	}
	return payment, allocations, nil
}

// ListPayments retrieves a paginated list of payments.
func (s *FinanceService) ListPayments(ctx context.Context, organizationID string, limit, offset int, requestingUserID string) ([]domain.FinancialPayment, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	payments, total, err := s.financeRepo.ListPayments(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

// RecordPayment records a payment and its allocations, then rolls each
// allocated transaction's status forward from its allocation sum.
func (s *FinanceService) RecordPayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	var allocated int64
	for _, alloc := range req.Allocations {
		allocated += alloc.AmountMinorUnits
	}
	if allocated > req.AmountMinorUnits {
		return nil, nil, fmt.Errorf("%w: allocations (%d) exceed payment amount (%d)", apperrors.ErrValidation, allocated, req.AmountMinorUnits)
	}

	// Validate every target transaction before writing anything.
	targets := make(map[string]*domain.FinancialTransaction, len(req.Allocations))
	for _, alloc := range req.Allocations {
		txn, err := s.financeRepo.FindTransactionByID(ctx, organizationID, alloc.TransactionID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get transaction %s for allocation: %w", alloc.TransactionID, err)
		}
		if txn.Status == domain.TxnCancelled {
			return nil, nil, fmt.Errorf("%w: transaction %s is cancelled", apperrors.ErrValidation, txn.TransactionNumber)
		}
		if txn.Status == domain.TxnPaid {
			return nil, nil, fmt.Errorf("%w: transaction %s is already paid", apperrors.ErrValidation, txn.TransactionNumber)
		}
		targets[alloc.TransactionID] = txn
	}

	now := time.Now()
	seq, err := s.financeRepo.CountPaymentsForYear(ctx, organizationID, now.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count payments for numbering: %w", err)
	}

	payment := domain.FinancialPayment{
		PaymentID:        uuid.NewString(),
		OrganizationID:   organizationID,
		PaymentNumber:    numbering.PaymentNumber(now, seq+1),
		Direction:        domain.PaymentDirection(req.Direction),
		CounterpartyName: req.CounterpartyName,
		CurrencyCode:     req.CurrencyCode,
		AmountMinorUnits: req.AmountMinorUnits,
		PaymentDate:      req.PaymentDate,
		Reference:        req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	allocations := make([]domain.PaymentAllocation, len(req.Allocations))
	for i, alloc := range req.Allocations {
		allocations[i] = domain.PaymentAllocation{
			AllocationID:     uuid.NewString(),
			PaymentID:        payment.PaymentID,
			TransactionID:    alloc.TransactionID,
			AmountMinorUnits: alloc.AmountMinorUnits,
			CreatedAt:        now,
			CreatedBy:        creatorUserID,
		}
	}

	if err := s.financeRepo.SavePayment(ctx, payment, allocations); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("payment_number", payment.PaymentNumber))
		return nil, nil, fmt.Errorf("failed to record payment: %w", err)
	}

	// Roll allocated transactions forward.
	for transactionID, txn := range targets {
		if err := s.refreshTransactionStatus(ctx, txn, creatorUserID); err != nil {
			logger.Error("Failed to refresh transaction status after payment",
				slog.String("error", err.Error()),
				slog.String("transaction_id", transactionID),
			)
		}
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("payment_number", payment.PaymentNumber))
	return &payment, allocations, nil
}

// refreshTransactionStatus derives the transaction status from its allocation
// sum: zero is pending, under the amount is partially paid, at or over is paid.
func (s *FinanceService) refreshTransactionStatus(ctx context.Context, txn *domain.FinancialTransaction, updaterUserID string) error {
	allocations, err := s.financeRepo.ListAllocationsByTransaction(ctx, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to list allocations for status refresh: %w", err)
	}

	var allocated int64
	for _, alloc := range allocations {
		allocated += alloc.AmountMinorUnits
	}

	status := domain.TxnPending
	switch {
	case allocated >= txn.AmountMinorUnits:
		status = domain.TxnPaid
	case allocated > 0:
		status = domain.TxnPartiallyPaid
	}

	if status == txn.Status {
		return nil
	}
	txn.Status = status
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = updaterUserID
	return s.financeRepo.UpdateTransaction(ctx, *txn)
}

// CancelTransaction cancels a pending transaction with no allocations.
func (s *FinanceService) CancelTransaction(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	txn, err := s.financeRepo.FindTransactionByID(ctx, organizationID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction for cancellation: %w", err)
	}
	if txn.Status != domain.TxnPending {
		return nil, fmt.Errorf("%w: only pending transactions can be cancelled", apperrors.ErrValidation)
	}
	allocations, err := s.financeRepo.ListAllocationsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check allocations before cancellation: %w", err)
	}
	if len(allocations) > 0 {
		return nil, fmt.Errorf("%w: transaction %s has payment allocations", apperrors.ErrValidation, txn.TransactionNumber)
	}

	txn.Status = domain.TxnCancelled
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = requestingUserID
	if err := s.financeRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}
	return txn, nil
}
