package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// ProductReader defines read operations for the product catalog
type ProductReader interface {
	// FindProductByID retrieves a product scoped to an organization.
	FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error)

	// FindProductBySKU retrieves a product by its SKU within an organization.
	FindProductBySKU(ctx context.Context, organizationID, sku string) (*domain.Product, error)

	// ListProducts retrieves a page of products with the unpaged total. When
	// activeOnly is set, only active products are returned.
	ListProducts(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Product, int, error)

	// ListProductCostHistory retrieves cost change entries for a product,
	// newest first.
	ListProductCostHistory(ctx context.Context, productID string) ([]domain.ProductCostEntry, error)
}

// ProductWriter defines write operations for the product catalog
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates mutable product fields.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// SaveProductCostEntry appends a cost change row to a product's history.
	SaveProductCostEntry(ctx context.Context, entry domain.ProductCostEntry) error
}

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client scoped to an organization.
	FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error)

	// ListClients retrieves a page of clients with the unpaged total. When
	// activeOnly is set, only active clients are returned.
	ListClients(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Client, int, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates mutable client fields.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// CatalogRepositoryFacade combines product and client repository interfaces
type CatalogRepositoryFacade interface {
	ProductReader
	ProductWriter
	ClientReader
	ClientWriter
}
