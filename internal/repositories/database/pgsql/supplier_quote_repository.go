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

type PgxSupplierQuoteRepository struct {
	BaseRepository
}

// newPgxSupplierQuoteRepository creates a new repository for supplier quote data.
func newPgxSupplierQuoteRepository(pool *pgxpool.Pool) portsrepo.SupplierQuoteRepositoryFacade {
	return &PgxSupplierQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SupplierQuoteRepositoryFacade = (*PgxSupplierQuoteRepository)(nil)

const supplierQuoteColumns = `supplier_quote_id, organization_id, rfq_id, supplier_name, quote_number, revision, currency_code, commission_type, commission_percent, total_before_commission_minor_units, total_after_commission_minor_units, commission_amount_minor_units, locked_exchange_rate, locked_exchange_rate_date, converted_total_minor_units, valid_until, status, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplierQuote(row pgx.Row) (domain.SupplierQuote, error) {
	var q domain.SupplierQuote
	err := row.Scan(
		&q.SupplierQuoteID,
		&q.OrganizationID,
		&q.RFQID,
		&q.SupplierName,
		&q.QuoteNumber,
		&q.Revision,
		&q.CurrencyCode,
		&q.CommissionType,
		&q.CommissionPercent,
		&q.TotalBeforeCommissionMinorUnits,
		&q.TotalAfterCommissionMinorUnits,
		&q.CommissionAmountMinorUnits,
		&q.LockedExchangeRate,
		&q.LockedExchangeRateDate,
		&q.ConvertedTotalMinorUnits,
		&q.ValidUntil,
		&q.Status,
		&q.Notes,
		&q.CreatedAt,
		&q.CreatedBy,
		&q.LastUpdatedAt,
		&q.LastUpdatedBy,
	)
	return q, err
}

const supplierQuoteItemInsert = `
	INSERT INTO supplier_quote_items (supplier_quote_item_id, supplier_quote_id, rfq_item_id, product_name, quantity,
		unit_price_before_commission_minor_units, unit_price_after_commission_minor_units,
		total_price_before_commission_minor_units, total_price_after_commission_minor_units,
		converted_price_minor_units)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func insertSupplierQuoteItems(ctx context.Context, tx pgx.Tx, items []domain.SupplierQuoteItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, supplierQuoteItemInsert,
			item.SupplierQuoteItemID,
			item.SupplierQuoteID,
			item.RFQItemID,
			item.ProductName,
			item.Quantity,
			item.UnitPriceBeforeCommissionMinorUnits,
			item.UnitPriceAfterCommissionMinorUnits,
			item.TotalPriceBeforeCommissionMinorUnits,
			item.TotalPriceAfterCommissionMinorUnits,
			item.ConvertedPriceMinorUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save supplier quote item %s: %w", item.SupplierQuoteItemID, err)
		}
	}
	return nil
}

// SaveSupplierQuote persists a quote and its items in one transaction.
func (r *PgxSupplierQuoteRepository) SaveSupplierQuote(ctx context.Context, quote domain.SupplierQuote, items []domain.SupplierQuoteItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO supplier_quotes (` + supplierQuoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, query,
		quote.SupplierQuoteID,
		quote.OrganizationID,
		quote.RFQID,
		quote.SupplierName,
		quote.QuoteNumber,
		quote.Revision,
		quote.CurrencyCode,
		quote.CommissionType,
		quote.CommissionPercent,
		quote.TotalBeforeCommissionMinorUnits,
		quote.TotalAfterCommissionMinorUnits,
		quote.CommissionAmountMinorUnits,
		quote.LockedExchangeRate,
		quote.LockedExchangeRateDate,
		quote.ConvertedTotalMinorUnits,
		quote.ValidUntil,
		quote.Status,
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
		return fmt.Errorf("failed to save supplier quote %s: %w", quote.SupplierQuoteID, err)
	}

	if err := insertSupplierQuoteItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateSupplierQuote updates the mutable header fields of a quote.
func (r *PgxSupplierQuoteRepository) UpdateSupplierQuote(ctx context.Context, quote domain.SupplierQuote) error {
	query := `
		UPDATE supplier_quotes
		SET status = $2, notes = $3, valid_until = $4,
		    locked_exchange_rate = $5, locked_exchange_rate_date = $6, converted_total_minor_units = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE supplier_quote_id = $1 AND organization_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		quote.SupplierQuoteID,
		quote.Status,
		quote.Notes,
		quote.ValidUntil,
		quote.LockedExchangeRate,
		quote.LockedExchangeRateDate,
		quote.ConvertedTotalMinorUnits,
		quote.LastUpdatedAt,
		quote.LastUpdatedBy,
		quote.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier quote %s: %w", quote.SupplierQuoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSupplierQuoteItems replaces the item lines of a quote.
func (r *PgxSupplierQuoteRepository) UpdateSupplierQuoteItems(ctx context.Context, quoteID string, items []domain.SupplierQuoteItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM supplier_quote_items WHERE supplier_quote_id = $1;`, quoteID); err != nil {
		return fmt.Errorf("failed to clear supplier quote items for %s: %w", quoteID, err)
	}
	if err := insertSupplierQuoteItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindSupplierQuoteByID retrieves a quote scoped to an organization.
func (r *PgxSupplierQuoteRepository) FindSupplierQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.SupplierQuote, error) {
	query := `SELECT ` + supplierQuoteColumns + ` FROM supplier_quotes WHERE supplier_quote_id = $1 AND organization_id = $2;`
	q, err := scanSupplierQuote(r.Pool.QueryRow(ctx, query, quoteID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier quote %s: %w", quoteID, err)
	}
	return &q, nil
}

// FindSupplierQuoteItems retrieves the item lines of a quote.
func (r *PgxSupplierQuoteRepository) FindSupplierQuoteItems(ctx context.Context, quoteID string) ([]domain.SupplierQuoteItem, error) {
	query := `
		SELECT supplier_quote_item_id, supplier_quote_id, rfq_item_id, product_name, quantity,
		       unit_price_before_commission_minor_units, unit_price_after_commission_minor_units,
		       total_price_before_commission_minor_units, total_price_after_commission_minor_units,
		       converted_price_minor_units
		FROM supplier_quote_items
		WHERE supplier_quote_id = $1
		ORDER BY supplier_quote_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier quote items for %s: %w", quoteID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SupplierQuoteItem, error) {
		var item domain.SupplierQuoteItem
		err := row.Scan(
			&item.SupplierQuoteItemID,
			&item.SupplierQuoteID,
			&item.RFQItemID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPriceBeforeCommissionMinorUnits,
			&item.UnitPriceAfterCommissionMinorUnits,
			&item.TotalPriceBeforeCommissionMinorUnits,
			&item.TotalPriceAfterCommissionMinorUnits,
			&item.ConvertedPriceMinorUnits,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan supplier quote items: %w", err)
	}
	return items, nil
}

// ListSupplierQuotesByRFQ retrieves all quotes received against an RFQ.
func (r *PgxSupplierQuoteRepository) ListSupplierQuotesByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.SupplierQuote, error) {
	query := `
		SELECT ` + supplierQuoteColumns + `
		FROM supplier_quotes
		WHERE organization_id = $1 AND rfq_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier quotes for RFQ %s: %w", rfqID, err)
	}
	defer rows.Close()

	quotes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SupplierQuote, error) {
		return scanSupplierQuote(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan supplier quotes: %w", err)
	}
	return quotes, nil
}

// CountQuotesForSupplierRFQ counts prior quotes from a supplier against an
// RFQ, used for revision numbering.
func (r *PgxSupplierQuoteRepository) CountQuotesForSupplierRFQ(ctx context.Context, organizationID, rfqID, supplierName string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM supplier_quotes
		WHERE organization_id = $1 AND rfq_id = $2 AND supplier_name = $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, rfqID, supplierName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotes for supplier %s: %w", supplierName, err)
	}
	return count, nil
}
