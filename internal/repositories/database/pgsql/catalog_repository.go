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

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for product and client
// catalog data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

const productColumns = `product_id, organization_id, sku, name, description, hs_code, origin_country, moq, lead_time_days, currency_code, unit_cost_minor_units, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.OrganizationID,
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.HSCode,
		&p.OriginCountry,
		&p.MOQ,
		&p.LeadTimeDays,
		&p.CurrencyCode,
		&p.UnitCostMinorUnits,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveProduct inserts a product.
func (r *PgxCatalogRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.OrganizationID,
		product.SKU,
		product.Name,
		product.Description,
		product.HSCode,
		product.OriginCountry,
		product.MOQ,
		product.LeadTimeDays,
		product.CurrencyCode,
		product.UnitCostMinorUnits,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save product %s: %w", product.SKU, err)
	}
	return nil
}

// UpdateProduct updates the mutable fields of a product. The SKU and currency
// are fixed at creation.
func (r *PgxCatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, hs_code = $5, origin_country = $6, moq = $7,
		    lead_time_days = $8, unit_cost_minor_units = $9, is_active = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE organization_id = $1 AND product_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.OrganizationID,
		product.ProductID,
		product.Name,
		product.Description,
		product.HSCode,
		product.OriginCountry,
		product.MOQ,
		product.LeadTimeDays,
		product.UnitCostMinorUnits,
		product.IsActive,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductByID retrieves a product scoped to an organization.
func (r *PgxCatalogRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1 AND product_id = $2;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, organizationID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return &p, nil
}

// FindProductBySKU retrieves a product by its SKU within an organization.
func (r *PgxCatalogRepository) FindProductBySKU(ctx context.Context, organizationID, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1 AND sku = $2;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, organizationID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by SKU %s: %w", sku, err)
	}
	return &p, nil
}

// ListProducts retrieves a page of products with the unpaged total.
func (r *PgxCatalogRepository) ListProducts(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Product, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if activeOnly {
		where += ` AND is_active`
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY sku LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, total, nil
}

const costEntryColumns = `cost_entry_id, product_id, old_cost_minor_units, new_cost_minor_units, difference_minor_units, percent_change, reason, changed_by, changed_at`

// SaveProductCostEntry appends a cost change row. History rows are never
// updated or deleted.
func (r *PgxCatalogRepository) SaveProductCostEntry(ctx context.Context, entry domain.ProductCostEntry) error {
	query := `
		INSERT INTO product_cost_history (` + costEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.CostEntryID,
		entry.ProductID,
		entry.OldCostMinorUnits,
		entry.NewCostMinorUnits,
		entry.DifferenceMinorUnits,
		entry.PercentChange,
		entry.Reason,
		entry.ChangedBy,
		entry.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save cost history entry for product %s: %w", entry.ProductID, err)
	}
	return nil
}

// ListProductCostHistory retrieves cost change entries for a product, newest first.
func (r *PgxCatalogRepository) ListProductCostHistory(ctx context.Context, productID string) ([]domain.ProductCostEntry, error) {
	query := `SELECT ` + costEntryColumns + ` FROM product_cost_history WHERE product_id = $1 ORDER BY changed_at DESC;`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost history: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProductCostEntry, error) {
		var e domain.ProductCostEntry
		err := row.Scan(
			&e.CostEntryID,
			&e.ProductID,
			&e.OldCostMinorUnits,
			&e.NewCostMinorUnits,
			&e.DifferenceMinorUnits,
			&e.PercentChange,
			&e.Reason,
			&e.ChangedBy,
			&e.ChangedAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cost history: %w", err)
	}
	return entries, nil
}

const clientColumns = `client_id, organization_id, code, name, contact_name, email, country, notes, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.OrganizationID,
		&c.Code,
		&c.Name,
		&c.ContactName,
		&c.Email,
		&c.Country,
		&c.Notes,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveClient inserts a client.
func (r *PgxCatalogRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.OrganizationID,
		client.Code,
		client.Name,
		client.ContactName,
		client.Email,
		client.Country,
		client.Notes,
		client.IsActive,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save client %s: %w", client.Code, err)
	}
	return nil
}

// UpdateClient updates the mutable fields of a client. The code is fixed at
// creation.
func (r *PgxCatalogRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET name = $3, contact_name = $4, email = $5, country = $6, notes = $7,
		    is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1 AND client_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		client.OrganizationID,
		client.ClientID,
		client.Name,
		client.ContactName,
		client.Email,
		client.Country,
		client.Notes,
		client.IsActive,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindClientByID retrieves a client scoped to an organization.
func (r *PgxCatalogRepository) FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE organization_id = $1 AND client_id = $2;`
	c, err := scanClient(r.Pool.QueryRow(ctx, query, organizationID, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return &c, nil
}

// ListClients retrieves a page of clients with the unpaged total.
func (r *PgxCatalogRepository) ListClients(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Client, int, error) {
	where := ` WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if activeOnly {
		where += ` AND is_active`
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		fmt.Sprintf(` ORDER BY code LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan clients: %w", err)
	}
	return clients, total, nil
}
