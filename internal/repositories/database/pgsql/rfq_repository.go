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

type PgxRFQRepository struct {
	BaseRepository
}

// newPgxRFQRepository creates a new repository for RFQ data.
func newPgxRFQRepository(pool *pgxpool.Pool) portsrepo.RFQRepositoryFacade {
	return &PgxRFQRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RFQRepositoryFacade = (*PgxRFQRepository)(nil)

const rfqColumns = `rfq_id, organization_id, rfq_number, client_name, client_code, currency_code, commission_percent, commission_type, status, selected_quote_id, total_amount_minor_units, created_at, created_by, last_updated_at, last_updated_by`

func scanRFQ(row pgx.Row) (domain.RFQ, error) {
	var rfq domain.RFQ
	err := row.Scan(
		&rfq.RFQID,
		&rfq.OrganizationID,
		&rfq.RFQNumber,
		&rfq.ClientName,
		&rfq.ClientCode,
		&rfq.CurrencyCode,
		&rfq.CommissionPercent,
		&rfq.CommissionType,
		&rfq.Status,
		&rfq.SelectedQuoteID,
		&rfq.TotalAmountMinorUnits,
		&rfq.CreatedAt,
		&rfq.CreatedBy,
		&rfq.LastUpdatedAt,
		&rfq.LastUpdatedBy,
	)
	return rfq, err
}

// SaveRFQ persists an RFQ and its items in one transaction.
func (r *PgxRFQRepository) SaveRFQ(ctx context.Context, rfq domain.RFQ, items []domain.RFQItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	rfqQuery := `
		INSERT INTO rfqs (` + rfqColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, rfqQuery,
		rfq.RFQID,
		rfq.OrganizationID,
		rfq.RFQNumber,
		rfq.ClientName,
		rfq.ClientCode,
		rfq.CurrencyCode,
		rfq.CommissionPercent,
		rfq.CommissionType,
		rfq.Status,
		rfq.SelectedQuoteID,
		rfq.TotalAmountMinorUnits,
		rfq.CreatedAt,
		rfq.CreatedBy,
		rfq.LastUpdatedAt,
		rfq.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save RFQ %s: %w", rfq.RFQID, err)
	}

	itemQuery := `
		INSERT INTO rfq_items (rfq_item_id, rfq_id, product_name, sku, quantity, target_unit_price_minor_units)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		_, err = tx.Exec(ctx, itemQuery,
			item.RFQItemID,
			item.RFQID,
			item.ProductName,
			item.SKU,
			item.Quantity,
			item.TargetUnitPriceMinorUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save RFQ item %s: %w", item.RFQItemID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateRFQ updates the mutable header fields of an RFQ.
func (r *PgxRFQRepository) UpdateRFQ(ctx context.Context, rfq domain.RFQ) error {
	query := `
		UPDATE rfqs
		SET client_name = $2, status = $3, selected_quote_id = $4, total_amount_minor_units = $5,
		    commission_percent = $6, commission_type = $7, last_updated_at = $8, last_updated_by = $9
		WHERE rfq_id = $1 AND organization_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rfq.RFQID,
		rfq.ClientName,
		rfq.Status,
		rfq.SelectedQuoteID,
		rfq.TotalAmountMinorUnits,
		rfq.CommissionPercent,
		rfq.CommissionType,
		rfq.LastUpdatedAt,
		rfq.LastUpdatedBy,
		rfq.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update RFQ %s: %w", rfq.RFQID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRFQByID retrieves an RFQ scoped to an organization.
func (r *PgxRFQRepository) FindRFQByID(ctx context.Context, organizationID, rfqID string) (*domain.RFQ, error) {
	query := `SELECT ` + rfqColumns + ` FROM rfqs WHERE rfq_id = $1 AND organization_id = $2;`
	rfq, err := scanRFQ(r.Pool.QueryRow(ctx, query, rfqID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find RFQ %s: %w", rfqID, err)
	}
	return &rfq, nil
}

// FindRFQItems retrieves the item lines of an RFQ.
func (r *PgxRFQRepository) FindRFQItems(ctx context.Context, rfqID string) ([]domain.RFQItem, error) {
	query := `
		SELECT rfq_item_id, rfq_id, product_name, sku, quantity, target_unit_price_minor_units
		FROM rfq_items
		WHERE rfq_id = $1
		ORDER BY rfq_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query RFQ items for %s: %w", rfqID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RFQItem, error) {
		var item domain.RFQItem
		err := row.Scan(
			&item.RFQItemID,
			&item.RFQID,
			&item.ProductName,
			&item.SKU,
			&item.Quantity,
			&item.TargetUnitPriceMinorUnits,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan RFQ items: %w", err)
	}
	return items, nil
}

// ListRFQs retrieves RFQs for an organization, newest first, with optional
// status filtering.
func (r *PgxRFQRepository) ListRFQs(ctx context.Context, organizationID string, status *domain.RFQStatus, limit, offset int) ([]domain.RFQ, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if status != nil {
		where += ` AND status = $2`
		args = append(args, *status)
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM rfqs`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count RFQs: %w", err)
	}

	query := `SELECT ` + rfqColumns + ` FROM rfqs` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query RFQs: %w", err)
	}
	defer rows.Close()

	rfqs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RFQ, error) {
		return scanRFQ(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan RFQs: %w", err)
	}
	return rfqs, total, nil
}

// CountRFQsForClientYear counts RFQs for a client code in a calendar year.
func (r *PgxRFQRepository) CountRFQsForClientYear(ctx context.Context, organizationID, clientCode string, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM rfqs
		WHERE organization_id = $1 AND client_code = $2
		  AND EXTRACT(YEAR FROM created_at) = $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, clientCode, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count RFQs for client %s: %w", clientCode, err)
	}
	return count, nil
}
