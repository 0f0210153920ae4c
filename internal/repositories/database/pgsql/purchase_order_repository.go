package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
)

type PgxPurchaseOrderRepository struct {
	BaseRepository
}

// newPgxPurchaseOrderRepository creates a new repository for purchase order data.
func newPgxPurchaseOrderRepository(pool *pgxpool.Pool) portsrepo.PurchaseOrderRepositoryFacade {
	return &PgxPurchaseOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

const purchaseOrderColumns = `purchase_order_id, organization_id, po_number, revision, rfq_id, supplier_quote_id, supplier_name, currency_code, status, incoterm, delivery_address, subtotal_minor_units, shipping_cost_minor_units, shipping_included_in_price, insurance_cost_minor_units, insurance_included_in_price, other_costs_minor_units, tax_amount_minor_units, discount_amount_minor_units, total_amount_minor_units, locked_exchange_rate, locked_exchange_rate_date, total_base_currency_minor_units, notes, internal_notes, sent_at, confirmed_at, expected_delivery_date, actual_delivery_date, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchaseOrder(row pgx.Row) (domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := row.Scan(
		&po.PurchaseOrderID,
		&po.OrganizationID,
		&po.PONumber,
		&po.Revision,
		&po.RFQID,
		&po.SupplierQuoteID,
		&po.SupplierName,
		&po.CurrencyCode,
		&po.Status,
		&po.Incoterm,
		&po.DeliveryAddress,
		&po.SubtotalMinorUnits,
		&po.ShippingCostMinorUnits,
		&po.ShippingIncludedInPrice,
		&po.InsuranceCostMinorUnits,
		&po.InsuranceIncludedInPrice,
		&po.OtherCostsMinorUnits,
		&po.TaxAmountMinorUnits,
		&po.DiscountAmountMinorUnits,
		&po.TotalAmountMinorUnits,
		&po.LockedExchangeRate,
		&po.LockedExchangeRateDate,
		&po.TotalBaseCurrencyMinorUnits,
		&po.Notes,
		&po.InternalNotes,
		&po.SentAt,
		&po.ConfirmedAt,
		&po.ExpectedDeliveryDate,
		&po.ActualDeliveryDate,
		&po.CreatedAt,
		&po.CreatedBy,
		&po.LastUpdatedAt,
		&po.LastUpdatedBy,
	)
	return po, err
}

const purchaseOrderItemInsert = `
	INSERT INTO purchase_order_items (purchase_order_item_id, purchase_order_id, product_name, sku, quantity, unit_price_minor_units, total_minor_units)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func insertPurchaseOrderItems(ctx context.Context, tx pgx.Tx, items []domain.PurchaseOrderItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, purchaseOrderItemInsert,
			item.PurchaseOrderItemID,
			item.PurchaseOrderID,
			item.ProductName,
			item.SKU,
			item.Quantity,
			item.UnitPriceMinorUnits,
			item.TotalMinorUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save purchase order item %s: %w", item.PurchaseOrderItemID, err)
		}
	}
	return nil
}

// SavePurchaseOrder persists a purchase order and its items in one transaction.
func (r *PgxPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33);
	`
	_, err = tx.Exec(ctx, query,
		po.PurchaseOrderID,
		po.OrganizationID,
		po.PONumber,
		po.Revision,
		po.RFQID,
		po.SupplierQuoteID,
		po.SupplierName,
		po.CurrencyCode,
		po.Status,
		po.Incoterm,
		po.DeliveryAddress,
		po.SubtotalMinorUnits,
		po.ShippingCostMinorUnits,
		po.ShippingIncludedInPrice,
		po.InsuranceCostMinorUnits,
		po.InsuranceIncludedInPrice,
		po.OtherCostsMinorUnits,
		po.TaxAmountMinorUnits,
		po.DiscountAmountMinorUnits,
		po.TotalAmountMinorUnits,
		po.LockedExchangeRate,
		po.LockedExchangeRateDate,
		po.TotalBaseCurrencyMinorUnits,
		po.Notes,
		po.InternalNotes,
		po.SentAt,
		po.ConfirmedAt,
		po.ExpectedDeliveryDate,
		po.ActualDeliveryDate,
		po.CreatedAt,
		po.CreatedBy,
		po.LastUpdatedAt,
		po.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save purchase order %s: %w", po.PurchaseOrderID, err)
	}

	if err := insertPurchaseOrderItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdatePurchaseOrder updates the mutable fields of a purchase order.
func (r *PgxPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, incoterm = $3, delivery_address = $4,
		    subtotal_minor_units = $5, shipping_cost_minor_units = $6, shipping_included_in_price = $7,
		    insurance_cost_minor_units = $8, insurance_included_in_price = $9, other_costs_minor_units = $10,
		    tax_amount_minor_units = $11, discount_amount_minor_units = $12, total_amount_minor_units = $13,
		    locked_exchange_rate = $14, locked_exchange_rate_date = $15, total_base_currency_minor_units = $16,
		    notes = $17, internal_notes = $18, sent_at = $19, confirmed_at = $20,
		    expected_delivery_date = $21, actual_delivery_date = $22,
		    last_updated_at = $23, last_updated_by = $24
		WHERE purchase_order_id = $1 AND organization_id = $25;
	`
	tag, err := r.Pool.Exec(ctx, query,
		po.PurchaseOrderID,
		po.Status,
		po.Incoterm,
		po.DeliveryAddress,
		po.SubtotalMinorUnits,
		po.ShippingCostMinorUnits,
		po.ShippingIncludedInPrice,
		po.InsuranceCostMinorUnits,
		po.InsuranceIncludedInPrice,
		po.OtherCostsMinorUnits,
		po.TaxAmountMinorUnits,
		po.DiscountAmountMinorUnits,
		po.TotalAmountMinorUnits,
		po.LockedExchangeRate,
		po.LockedExchangeRateDate,
		po.TotalBaseCurrencyMinorUnits,
		po.Notes,
		po.InternalNotes,
		po.SentAt,
		po.ConfirmedAt,
		po.ExpectedDeliveryDate,
		po.ActualDeliveryDate,
		po.LastUpdatedAt,
		po.LastUpdatedBy,
		po.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase order %s: %w", po.PurchaseOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplacePurchaseOrderItems replaces the item lines of a purchase order.
func (r *PgxPurchaseOrderRepository) ReplacePurchaseOrderItems(ctx context.Context, poID string, items []domain.PurchaseOrderItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1;`, poID); err != nil {
		return fmt.Errorf("failed to clear purchase order items for %s: %w", poID, err)
	}
	if err := insertPurchaseOrderItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindPurchaseOrderByID retrieves a purchase order scoped to an organization.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, organizationID, poID string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE purchase_order_id = $1 AND organization_id = $2;`
	po, err := scanPurchaseOrder(r.Pool.QueryRow(ctx, query, poID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", poID, err)
	}
	return &po, nil
}

// FindPurchaseOrderItems retrieves the item lines of a purchase order.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderItems(ctx context.Context, poID string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT purchase_order_item_id, purchase_order_id, product_name, sku, quantity, unit_price_minor_units, total_minor_units
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY purchase_order_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase order items for %s: %w", poID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PurchaseOrderItem, error) {
		var item domain.PurchaseOrderItem
		err := row.Scan(
			&item.PurchaseOrderItemID,
			&item.PurchaseOrderID,
			&item.ProductName,
			&item.SKU,
			&item.Quantity,
			&item.UnitPriceMinorUnits,
			&item.TotalMinorUnits,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchase order items: %w", err)
	}
	return items, nil
}

// ListPurchaseOrders retrieves purchase orders, newest first, with optional
// status filtering.
func (r *PgxPurchaseOrderRepository) ListPurchaseOrders(ctx context.Context, organizationID string, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if status != nil {
		where += ` AND status = $2`
		args = append(args, *status)
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query purchase orders: %w", err)
	}
	defer rows.Close()

	pos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PurchaseOrder, error) {
		return scanPurchaseOrder(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan purchase orders: %w", err)
	}
	return pos, total, nil
}

// CountPurchaseOrdersForMonth counts POs created in the month of onDate.
func (r *PgxPurchaseOrderRepository) CountPurchaseOrdersForMonth(ctx context.Context, organizationID string, onDate time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM purchase_orders
		WHERE organization_id = $1
		  AND EXTRACT(YEAR FROM created_at) = $2
		  AND EXTRACT(MONTH FROM created_at) = $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, onDate.Year(), int(onDate.Month())).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchase orders for month: %w", err)
	}
	return count, nil
}

// ListPurchaseOrdersByRFQ retrieves all purchase orders raised against an
// RFQ, newest first.
func (r *PgxPurchaseOrderRepository) ListPurchaseOrdersByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE organization_id = $1 AND rfq_id = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders for RFQ %s: %w", rfqID, err)
	}
	defer rows.Close()

	pos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PurchaseOrder, error) {
		return scanPurchaseOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchase orders for RFQ %s: %w", rfqID, err)
	}
	return pos, nil
}
