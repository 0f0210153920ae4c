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

type PgxCustomerQuoteRepository struct {
	BaseRepository
}

// newPgxCustomerQuoteRepository creates a new repository for customer quote data.
func newPgxCustomerQuoteRepository(pool *pgxpool.Pool) portsrepo.CustomerQuoteRepositoryFacade {
	return &PgxCustomerQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CustomerQuoteRepositoryFacade = (*PgxCustomerQuoteRepository)(nil)

const customerQuoteColumns = `customer_quote_id, organization_id, quote_number, rfq_id, client_name, currency_code, status, valid_until, subtotal_minor_units, discount_amount_minor_units, tax_amount_minor_units, total_amount_minor_units, locked_exchange_rate, locked_exchange_rate_date, total_base_currency_minor_units, sent_at, approved_at, approved_by, rejected_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomerQuote(row pgx.Row) (domain.CustomerQuote, error) {
	var q domain.CustomerQuote
	err := row.Scan(
		&q.CustomerQuoteID,
		&q.OrganizationID,
		&q.QuoteNumber,
		&q.RFQID,
		&q.ClientName,
		&q.CurrencyCode,
		&q.Status,
		&q.ValidUntil,
		&q.SubtotalMinorUnits,
		&q.DiscountAmountMinorUnits,
		&q.TaxAmountMinorUnits,
		&q.TotalAmountMinorUnits,
		&q.LockedExchangeRate,
		&q.LockedExchangeRateDate,
		&q.TotalBaseCurrencyMinorUnits,
		&q.SentAt,
		&q.ApprovedAt,
		&q.ApprovedBy,
		&q.RejectedAt,
		&q.Notes,
		&q.CreatedAt,
		&q.CreatedBy,
		&q.LastUpdatedAt,
		&q.LastUpdatedBy,
	)
	return q, err
}

const customerQuoteItemInsert = `
	INSERT INTO customer_quote_items (customer_quote_item_id, customer_quote_id, product_name, quantity, unit_price_minor_units, total_minor_units)
	VALUES ($1, $2, $3, $4, $5, $6);
`

func insertCustomerQuoteItems(ctx context.Context, tx pgx.Tx, items []domain.CustomerQuoteItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, customerQuoteItemInsert,
			item.CustomerQuoteItemID,
			item.CustomerQuoteID,
			item.ProductName,
			item.Quantity,
			item.UnitPriceMinorUnits,
			item.TotalMinorUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save customer quote item %s: %w", item.CustomerQuoteItemID, err)
		}
	}
	return nil
}

// SaveCustomerQuote persists a quote and its items in one transaction.
func (r *PgxCustomerQuoteRepository) SaveCustomerQuote(ctx context.Context, quote domain.CustomerQuote, items []domain.CustomerQuoteItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO customer_quotes (` + customerQuoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, query,
		quote.CustomerQuoteID,
		quote.OrganizationID,
		quote.QuoteNumber,
		quote.RFQID,
		quote.ClientName,
		quote.CurrencyCode,
		quote.Status,
		quote.ValidUntil,
		quote.SubtotalMinorUnits,
		quote.DiscountAmountMinorUnits,
		quote.TaxAmountMinorUnits,
		quote.TotalAmountMinorUnits,
		quote.LockedExchangeRate,
		quote.LockedExchangeRateDate,
		quote.TotalBaseCurrencyMinorUnits,
		quote.SentAt,
		quote.ApprovedAt,
		quote.ApprovedBy,
		quote.RejectedAt,
		quote.Notes,
		quote.CreatedAt,
		quote.CreatedBy,
		quote.LastUpdatedAt,
		quote.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save customer quote %s: %w", quote.CustomerQuoteID, err)
	}

	if err := insertCustomerQuoteItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateCustomerQuote updates the mutable fields of a quote.
func (r *PgxCustomerQuoteRepository) UpdateCustomerQuote(ctx context.Context, quote domain.CustomerQuote) error {
	query := `
		UPDATE customer_quotes
		SET client_name = $2, status = $3, valid_until = $4,
		    subtotal_minor_units = $5, discount_amount_minor_units = $6, tax_amount_minor_units = $7,
		    total_amount_minor_units = $8, locked_exchange_rate = $9, locked_exchange_rate_date = $10,
		    total_base_currency_minor_units = $11, sent_at = $12, approved_at = $13, approved_by = $14,
		    rejected_at = $15, notes = $16, last_updated_at = $17, last_updated_by = $18
		WHERE customer_quote_id = $1 AND organization_id = $19;
	`
	tag, err := r.Pool.Exec(ctx, query,
		quote.CustomerQuoteID,
		quote.ClientName,
		quote.Status,
		quote.ValidUntil,
		quote.SubtotalMinorUnits,
		quote.DiscountAmountMinorUnits,
		quote.TaxAmountMinorUnits,
		quote.TotalAmountMinorUnits,
		quote.LockedExchangeRate,
		quote.LockedExchangeRateDate,
		quote.TotalBaseCurrencyMinorUnits,
		quote.SentAt,
		quote.ApprovedAt,
		quote.ApprovedBy,
		quote.RejectedAt,
		quote.Notes,
		quote.LastUpdatedAt,
		quote.LastUpdatedBy,
		quote.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer quote %s: %w", quote.CustomerQuoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceCustomerQuoteItems replaces the item lines of a quote.
func (r *PgxCustomerQuoteRepository) ReplaceCustomerQuoteItems(ctx context.Context, quoteID string, items []domain.CustomerQuoteItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM customer_quote_items WHERE customer_quote_id = $1;`, quoteID); err != nil {
		return fmt.Errorf("failed to clear customer quote items for %s: %w", quoteID, err)
	}
	if err := insertCustomerQuoteItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindCustomerQuoteByID retrieves a quote scoped to an organization.
func (r *PgxCustomerQuoteRepository) FindCustomerQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.CustomerQuote, error) {
	query := `SELECT ` + customerQuoteColumns + ` FROM customer_quotes WHERE customer_quote_id = $1 AND organization_id = $2;`
	q, err := scanCustomerQuote(r.Pool.QueryRow(ctx, query, quoteID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer quote %s: %w", quoteID, err)
	}
	return &q, nil
}

// FindCustomerQuoteItems retrieves the item lines of a quote.
func (r *PgxCustomerQuoteRepository) FindCustomerQuoteItems(ctx context.Context, quoteID string) ([]domain.CustomerQuoteItem, error) {
	query := `
		SELECT customer_quote_item_id, customer_quote_id, product_name, quantity, unit_price_minor_units, total_minor_units
		FROM customer_quote_items
		WHERE customer_quote_id = $1
		ORDER BY customer_quote_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer quote items for %s: %w", quoteID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CustomerQuoteItem, error) {
		var item domain.CustomerQuoteItem
		err := row.Scan(
			&item.CustomerQuoteItemID,
			&item.CustomerQuoteID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPriceMinorUnits,
			&item.TotalMinorUnits,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer quote items: %w", err)
	}
	return items, nil
}

// ListCustomerQuotes retrieves quotes, newest first, with optional status
// filtering.
func (r *PgxCustomerQuoteRepository) ListCustomerQuotes(ctx context.Context, organizationID string, status *domain.CustomerQuoteStatus, limit, offset int) ([]domain.CustomerQuote, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if status != nil {
		where += ` AND status = $2`
		args = append(args, *status)
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customer_quotes`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customer quotes: %w", err)
	}

	query := `SELECT ` + customerQuoteColumns + ` FROM customer_quotes` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customer quotes: %w", err)
	}
	defer rows.Close()

	quotes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CustomerQuote, error) {
		return scanCustomerQuote(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan customer quotes: %w", err)
	}
	return quotes, total, nil
}

// CountCustomerQuotesForYear counts quotes created in a calendar year.
func (r *PgxCustomerQuoteRepository) CountCustomerQuotesForYear(ctx context.Context, organizationID string, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM customer_quotes
		WHERE organization_id = $1 AND EXTRACT(YEAR FROM created_at) = $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customer quotes for year %d: %w", year, err)
	}
	return count, nil
}

// FindApprovedCustomerQuoteByRFQ retrieves the most recently approved quote
// raised against an RFQ.
func (r *PgxCustomerQuoteRepository) FindApprovedCustomerQuoteByRFQ(ctx context.Context, organizationID, rfqID string) (*domain.CustomerQuote, error) {
	query := `
		SELECT ` + customerQuoteColumns + `
		FROM customer_quotes
		WHERE organization_id = $1 AND rfq_id = $2 AND status = $3
		ORDER BY approved_at DESC
		LIMIT 1;
	`
	q, err := scanCustomerQuote(r.Pool.QueryRow(ctx, query, organizationID, rfqID, domain.CQApproved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approved customer quote for RFQ %s: %w", rfqID, err)
	}
	return &q, nil
}
