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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, organization_id, invoice_number, kind, shipment_id, purchase_order_id, rfq_id, counterparty_name, currency_code, status, due_date, subtotal_minor_units, discount_amount_minor_units, tax_amount_minor_units, total_amount_minor_units, locked_exchange_rate, locked_exchange_rate_date, total_base_currency_minor_units, issued_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.OrganizationID,
		&inv.InvoiceNumber,
		&inv.Kind,
		&inv.ShipmentID,
		&inv.PurchaseOrderID,
		&inv.RFQID,
		&inv.CounterpartyName,
		&inv.CurrencyCode,
		&inv.Status,
		&inv.DueDate,
		&inv.SubtotalMinorUnits,
		&inv.DiscountAmountMinorUnits,
		&inv.TaxAmountMinorUnits,
		&inv.TotalAmountMinorUnits,
		&inv.LockedExchangeRate,
		&inv.LockedExchangeRateDate,
		&inv.TotalBaseCurrencyMinorUnits,
		&inv.IssuedAt,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

const invoiceItemInsert = `
	INSERT INTO invoice_items (invoice_item_id, invoice_id, product_name, quantity, unit_price_minor_units, total_minor_units)
	VALUES ($1, $2, $3, $4, $5, $6);
`

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, items []domain.InvoiceItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, invoiceItemInsert,
			item.InvoiceItemID,
			item.InvoiceID,
			item.ProductName,
			item.Quantity,
			item.UnitPriceMinorUnits,
			item.TotalMinorUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save invoice item %s: %w", item.InvoiceItemID, err)
		}
	}
	return nil
}

// SaveInvoice persists an invoice and its items in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.OrganizationID,
		invoice.InvoiceNumber,
		invoice.Kind,
		invoice.ShipmentID,
		invoice.PurchaseOrderID,
		invoice.RFQID,
		invoice.CounterpartyName,
		invoice.CurrencyCode,
		invoice.Status,
		invoice.DueDate,
		invoice.SubtotalMinorUnits,
		invoice.DiscountAmountMinorUnits,
		invoice.TaxAmountMinorUnits,
		invoice.TotalAmountMinorUnits,
		invoice.LockedExchangeRate,
		invoice.LockedExchangeRateDate,
		invoice.TotalBaseCurrencyMinorUnits,
		invoice.IssuedAt,
		invoice.Notes,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}

	if err := insertInvoiceItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateInvoice updates the mutable fields of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET counterparty_name = $2, status = $3, due_date = $4,
		    subtotal_minor_units = $5, discount_amount_minor_units = $6, tax_amount_minor_units = $7,
		    total_amount_minor_units = $8, locked_exchange_rate = $9, locked_exchange_rate_date = $10,
		    total_base_currency_minor_units = $11, issued_at = $12, notes = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE invoice_id = $1 AND organization_id = $16;
	`
	tag, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CounterpartyName,
		invoice.Status,
		invoice.DueDate,
		invoice.SubtotalMinorUnits,
		invoice.DiscountAmountMinorUnits,
		invoice.TaxAmountMinorUnits,
		invoice.TotalAmountMinorUnits,
		invoice.LockedExchangeRate,
		invoice.LockedExchangeRateDate,
		invoice.TotalBaseCurrencyMinorUnits,
		invoice.IssuedAt,
		invoice.Notes,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		invoice.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceInvoiceItems replaces the item lines of an invoice.
func (r *PgxInvoiceRepository) ReplaceInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice items for %s: %w", invoiceID, err)
	}
	if err := insertInvoiceItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice scoped to an organization.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, organizationID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND organization_id = $2;`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return &inv, nil
}

// FindInvoiceItems retrieves the item lines of an invoice.
func (r *PgxInvoiceRepository) FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `
		SELECT invoice_item_id, invoice_id, product_name, quantity, unit_price_minor_units, total_minor_units
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY invoice_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items for %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InvoiceItem, error) {
		var item domain.InvoiceItem
		err := row.Scan(
			&item.InvoiceItemID,
			&item.InvoiceID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPriceMinorUnits,
			&item.TotalMinorUnits,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice items: %w", err)
	}
	return items, nil
}

// ListInvoices retrieves invoices, newest first, with optional kind and
// status filtering.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, organizationID string, kind *domain.InvoiceKind, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, int, error) {
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
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return invoices, total, nil
}

// CountInvoicesForKindYear counts invoices of a kind created in a calendar
// year, used for sequence numbering.
func (r *PgxInvoiceRepository) CountInvoicesForKindYear(ctx context.Context, organizationID string, kind domain.InvoiceKind, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM invoices
		WHERE organization_id = $1 AND kind = $2 AND EXTRACT(YEAR FROM created_at) = $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, kind, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices for kind %s: %w", kind, err)
	}
	return count, nil
}
