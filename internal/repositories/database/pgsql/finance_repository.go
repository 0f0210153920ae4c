package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
)

type PgxFinanceRepository struct {
	BaseRepository
}

// newPgxFinanceRepository creates a new repository for ledger data.
func newPgxFinanceRepository(pool *pgxpool.Pool) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

const transactionColumns = `transaction_id, organization_id, transaction_number, kind, description, counterparty_name, currency_code, amount_minor_units, amount_base_currency_minor_units, locked_exchange_rate, due_date, status, document_type, document_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.FinancialTransaction, error) {
	var t domain.FinancialTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.OrganizationID,
		&t.TransactionNumber,
		&t.Kind,
		&t.Description,
		&t.CounterpartyName,
		&t.CurrencyCode,
		&t.AmountMinorUnits,
		&t.AmountBaseCurrencyMinorUnits,
		&t.LockedExchangeRate,
		&t.DueDate,
		&t.Status,
		&t.DocumentType,
		&t.DocumentID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTransaction inserts a new ledger transaction.
func (r *PgxFinanceRepository) SaveTransaction(ctx context.Context, transaction domain.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		transaction.TransactionID,
		transaction.OrganizationID,
		transaction.TransactionNumber,
		transaction.Kind,
		transaction.Description,
		transaction.CounterpartyName,
		transaction.CurrencyCode,
		transaction.AmountMinorUnits,
		transaction.AmountBaseCurrencyMinorUnits,
		transaction.LockedExchangeRate,
		transaction.DueDate,
		transaction.Status,
		transaction.DocumentType,
		transaction.DocumentID,
		transaction.CreatedAt,
		transaction.CreatedBy,
		transaction.LastUpdatedAt,
		transaction.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save transaction %s: %w", transaction.TransactionID, err)
	}
	return nil
}

// UpdateTransaction updates the mutable fields of a transaction.
func (r *PgxFinanceRepository) UpdateTransaction(ctx context.Context, transaction domain.FinancialTransaction) error {
	query := `
		UPDATE financial_transactions
		SET description = $2, due_date = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND organization_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		transaction.TransactionID,
		transaction.Description,
		transaction.DueDate,
		transaction.Status,
		transaction.LastUpdatedAt,
		transaction.LastUpdatedBy,
		transaction.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transaction.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a transaction scoped to an organization.
func (r *PgxFinanceRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions WHERE transaction_id = $1 AND organization_id = $2;`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &t, nil
}

// FindTransactionByDocument retrieves the most recent non-cancelled
// transaction opened for a source document.
func (r *PgxFinanceRepository) FindTransactionByDocument(ctx context.Context, organizationID, documentType, documentID string) (*domain.FinancialTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM financial_transactions
		WHERE organization_id = $1 AND document_type = $2 AND document_id = $3 AND status <> $4
		ORDER BY created_at DESC
		LIMIT 1;
	`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, organizationID, documentType, documentID, domain.TxnCancelled))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction for %s %s: %w", documentType, documentID, err)
	}
	return &t, nil
}

// ListTransactions retrieves transactions, newest first, with optional kind
// and status filtering.
func (r *PgxFinanceRepository) ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int) ([]domain.FinancialTransaction, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if kind != nil {
		where += fmt.Sprintf(` AND kind = $%d`, len(args)+1)
		args = append(args, *kind)
	}
	if status != nil {
		where += fmt.Sprintf(` AND status = $%d`, len(args)+1)
		args = append(args, *status)
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM financial_transactions`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM financial_transactions` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialTransaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, total, nil
}

// CountTransactionsForYear counts transactions created in a calendar year.
func (r *PgxFinanceRepository) CountTransactionsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM financial_transactions
		WHERE organization_id = $1 AND EXTRACT(YEAR FROM created_at) = $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for year %d: %w", year, err)
	}
	return count, nil
}

const paymentColumns = `payment_id, organization_id, payment_number, direction, counterparty_name, currency_code, amount_minor_units, payment_date, reference, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (domain.FinancialPayment, error) {
	var p domain.FinancialPayment
	err := row.Scan(
		&p.PaymentID,
		&p.OrganizationID,
		&p.PaymentNumber,
		&p.Direction,
		&p.CounterpartyName,
		&p.CurrencyCode,
		&p.AmountMinorUnits,
		&p.PaymentDate,
		&p.Reference,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePayment persists a payment and its allocations in one transaction.
func (r *PgxFinanceRepository) SavePayment(ctx context.Context, payment domain.FinancialPayment, allocations []domain.PaymentAllocation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO financial_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		payment.PaymentID,
		payment.OrganizationID,
		payment.PaymentNumber,
		payment.Direction,
		payment.CounterpartyName,
		payment.CurrencyCode,
		payment.AmountMinorUnits,
		payment.PaymentDate,
		payment.Reference,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}

	allocQuery := `
		INSERT INTO payment_allocations (allocation_id, payment_id, transaction_id, amount_minor_units, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, alloc := range allocations {
		_, err = tx.Exec(ctx, allocQuery,
			alloc.AllocationID,
			alloc.PaymentID,
			alloc.TransactionID,
			alloc.AmountMinorUnits,
			alloc.CreatedAt,
			alloc.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save allocation %s: %w", alloc.AllocationID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdatePayment updates the mutable fields of a payment.
func (r *PgxFinanceRepository) UpdatePayment(ctx context.Context, payment domain.FinancialPayment) error {
	query := `
		UPDATE financial_payments
		SET counterparty_name = $2, reference = $3, last_updated_at = $4, last_updated_by = $5
		WHERE payment_id = $1 AND organization_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.CounterpartyName,
		payment.Reference,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
		payment.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentByID retrieves a payment scoped to an organization.
func (r *PgxFinanceRepository) FindPaymentByID(ctx context.Context, organizationID, paymentID string) (*domain.FinancialPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM financial_payments WHERE payment_id = $1 AND organization_id = $2;`
	p, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return &p, nil
}

// ListPayments retrieves payments, newest first.
func (r *PgxFinanceRepository) ListPayments(ctx context.Context, organizationID string, limit, offset int) ([]domain.FinancialPayment, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM financial_payments WHERE organization_id = $1;`, organizationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM financial_payments
		WHERE organization_id = $1
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialPayment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan payments: %w", err)
	}
	return payments, total, nil
}

func (r *PgxFinanceRepository) listAllocations(ctx context.Context, query, id string) ([]domain.PaymentAllocation, error) {
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	allocations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentAllocation, error) {
		var a domain.PaymentAllocation
		err := row.Scan(
			&a.AllocationID,
			&a.PaymentID,
			&a.TransactionID,
			&a.AmountMinorUnits,
			&a.CreatedAt,
			&a.CreatedBy,
		)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations: %w", err)
	}
	return allocations, nil
}

// ListAllocationsByTransaction retrieves allocations applied to a transaction.
func (r *PgxFinanceRepository) ListAllocationsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, transaction_id, amount_minor_units, created_at, created_by
		FROM payment_allocations
		WHERE transaction_id = $1
		ORDER BY created_at;
	`
	return r.listAllocations(ctx, query, transactionID)
}

// ListAllocationsByPayment retrieves the allocations of a payment.
func (r *PgxFinanceRepository) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, transaction_id, amount_minor_units, created_at, created_by
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY created_at;
	`
	return r.listAllocations(ctx, query, paymentID)
}

// CountPaymentsForYear counts payments created in a calendar year.
func (r *PgxFinanceRepository) CountPaymentsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM financial_payments
		WHERE organization_id = $1 AND EXTRACT(YEAR FROM created_at) = $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments for year %d: %w", year, err)
	}
	return count, nil
}
