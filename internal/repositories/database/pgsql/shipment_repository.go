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

type PgxShipmentRepository struct {
	BaseRepository
}

// newPgxShipmentRepository creates a new repository for shipment data.
func newPgxShipmentRepository(pool *pgxpool.Pool) portsrepo.ShipmentRepositoryFacade {
	return &PgxShipmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ShipmentRepositoryFacade = (*PgxShipmentRepository)(nil)

const shipmentColumns = `shipment_id, organization_id, shipment_number, purchase_order_id, currency_code, status, carrier, tracking_number, shipping_cost_minor_units, insurance_cost_minor_units, other_costs_minor_units, total_cost_minor_units, locked_exchange_rate, locked_exchange_rate_date, total_cost_base_currency_minor_units, estimated_departure, estimated_arrival, confirmed_at, confirmed_by, delivered_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanShipment(row pgx.Row) (domain.Shipment, error) {
	var s domain.Shipment
	err := row.Scan(
		&s.ShipmentID,
		&s.OrganizationID,
		&s.ShipmentNumber,
		&s.PurchaseOrderID,
		&s.CurrencyCode,
		&s.Status,
		&s.Carrier,
		&s.TrackingNumber,
		&s.ShippingCostMinorUnits,
		&s.InsuranceCostMinorUnits,
		&s.OtherCostsMinorUnits,
		&s.TotalCostMinorUnits,
		&s.LockedExchangeRate,
		&s.LockedExchangeRateDate,
		&s.TotalCostBaseCurrencyMinor,
		&s.EstimatedDeparture,
		&s.EstimatedArrival,
		&s.ConfirmedAt,
		&s.ConfirmedBy,
		&s.DeliveredAt,
		&s.Notes,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

const shipmentItemInsert = `
	INSERT INTO shipment_items (shipment_item_id, shipment_id, purchase_order_item_id, product_name, quantity)
	VALUES ($1, $2, $3, $4, $5);
`

func insertShipmentItems(ctx context.Context, tx pgx.Tx, items []domain.ShipmentItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, shipmentItemInsert,
			item.ShipmentItemID,
			item.ShipmentID,
			item.PurchaseOrderItemID,
			item.ProductName,
			item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to save shipment item %s: %w", item.ShipmentItemID, err)
		}
	}
	return nil
}

// SaveShipment persists a shipment and its items in one transaction.
func (r *PgxShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment, items []domain.ShipmentItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		shipment.ShipmentID,
		shipment.OrganizationID,
		shipment.ShipmentNumber,
		shipment.PurchaseOrderID,
		shipment.CurrencyCode,
		shipment.Status,
		shipment.Carrier,
		shipment.TrackingNumber,
		shipment.ShippingCostMinorUnits,
		shipment.InsuranceCostMinorUnits,
		shipment.OtherCostsMinorUnits,
		shipment.TotalCostMinorUnits,
		shipment.LockedExchangeRate,
		shipment.LockedExchangeRateDate,
		shipment.TotalCostBaseCurrencyMinor,
		shipment.EstimatedDeparture,
		shipment.EstimatedArrival,
		shipment.ConfirmedAt,
		shipment.ConfirmedBy,
		shipment.DeliveredAt,
		shipment.Notes,
		shipment.CreatedAt,
		shipment.CreatedBy,
		shipment.LastUpdatedAt,
		shipment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save shipment %s: %w", shipment.ShipmentID, err)
	}

	if err := insertShipmentItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateShipment updates the mutable fields of a shipment.
func (r *PgxShipmentRepository) UpdateShipment(ctx context.Context, shipment domain.Shipment) error {
	query := `
		UPDATE shipments
		SET status = $2, carrier = $3, tracking_number = $4,
		    shipping_cost_minor_units = $5, insurance_cost_minor_units = $6, other_costs_minor_units = $7,
		    total_cost_minor_units = $8, locked_exchange_rate = $9, locked_exchange_rate_date = $10,
		    total_cost_base_currency_minor_units = $11, estimated_departure = $12, estimated_arrival = $13,
		    confirmed_at = $14, confirmed_by = $15, delivered_at = $16, notes = $17,
		    last_updated_at = $18, last_updated_by = $19
		WHERE shipment_id = $1 AND organization_id = $20;
	`
	tag, err := r.Pool.Exec(ctx, query,
		shipment.ShipmentID,
		shipment.Status,
		shipment.Carrier,
		shipment.TrackingNumber,
		shipment.ShippingCostMinorUnits,
		shipment.InsuranceCostMinorUnits,
		shipment.OtherCostsMinorUnits,
		shipment.TotalCostMinorUnits,
		shipment.LockedExchangeRate,
		shipment.LockedExchangeRateDate,
		shipment.TotalCostBaseCurrencyMinor,
		shipment.EstimatedDeparture,
		shipment.EstimatedArrival,
		shipment.ConfirmedAt,
		shipment.ConfirmedBy,
		shipment.DeliveredAt,
		shipment.Notes,
		shipment.LastUpdatedAt,
		shipment.LastUpdatedBy,
		shipment.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment %s: %w", shipment.ShipmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceShipmentItems replaces the item lines of a shipment.
func (r *PgxShipmentRepository) ReplaceShipmentItems(ctx context.Context, shipmentID string, items []domain.ShipmentItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM shipment_items WHERE shipment_id = $1;`, shipmentID); err != nil {
		return fmt.Errorf("failed to clear shipment items for %s: %w", shipmentID, err)
	}
	if err := insertShipmentItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindShipmentByID retrieves a shipment scoped to an organization.
func (r *PgxShipmentRepository) FindShipmentByID(ctx context.Context, organizationID, shipmentID string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE shipment_id = $1 AND organization_id = $2;`
	s, err := scanShipment(r.Pool.QueryRow(ctx, query, shipmentID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shipment %s: %w", shipmentID, err)
	}
	return &s, nil
}

// FindShipmentItems retrieves the item lines of a shipment.
func (r *PgxShipmentRepository) FindShipmentItems(ctx context.Context, shipmentID string) ([]domain.ShipmentItem, error) {
	query := `
		SELECT shipment_item_id, shipment_id, purchase_order_item_id, product_name, quantity
		FROM shipment_items
		WHERE shipment_id = $1
		ORDER BY shipment_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipment items for %s: %w", shipmentID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ShipmentItem, error) {
		var item domain.ShipmentItem
		err := row.Scan(
			&item.ShipmentItemID,
			&item.ShipmentID,
			&item.PurchaseOrderItemID,
			&item.ProductName,
			&item.Quantity,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan shipment items: %w", err)
	}
	return items, nil
}

// ListShipments retrieves shipments, newest first, with optional status
// filtering.
func (r *PgxShipmentRepository) ListShipments(ctx context.Context, organizationID string, status *domain.ShipmentStatus, limit, offset int) ([]domain.Shipment, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if status != nil {
		where += ` AND status = $2`
		args = append(args, *status)
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM shipments`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	shipments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Shipment, error) {
		return scanShipment(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan shipments: %w", err)
	}
	return shipments, total, nil
}

// CountShipmentsForYear counts shipments created in a calendar year.
func (r *PgxShipmentRepository) CountShipmentsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM shipments
		WHERE organization_id = $1 AND EXTRACT(YEAR FROM created_at) = $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count shipments for year %d: %w", year, err)
	}
	return count, nil
}

// ListShipmentsByRFQ retrieves shipments belonging to any purchase order
// raised against the RFQ, newest first.
func (r *PgxShipmentRepository) ListShipmentsByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE organization_id = $1
		  AND purchase_order_id IN (SELECT purchase_order_id FROM purchase_orders WHERE rfq_id = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipments for RFQ %s: %w", rfqID, err)
	}
	defer rows.Close()

	shipments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Shipment, error) {
		return scanShipment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan shipments for RFQ %s: %w", rfqID, err)
	}
	return shipments, nil
}
