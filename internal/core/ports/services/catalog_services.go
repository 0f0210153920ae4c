package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// CatalogReaderSvc defines read operations for the product and client catalog
type CatalogReaderSvc interface {
	// GetProductByID retrieves a catalog product.
	GetProductByID(ctx context.Context, organizationID, productID, requestingUserID string) (*domain.Product, error)

	// ListProducts retrieves a page of products with the unpaged total.
	ListProducts(ctx context.Context, organizationID string, activeOnly bool, limit, offset int, requestingUserID string) ([]domain.Product, int, error)

	// GetProductCostHistory retrieves a product's cost change entries, newest first.
	GetProductCostHistory(ctx context.Context, organizationID, productID, requestingUserID string) ([]domain.ProductCostEntry, error)

	// GetClientByID retrieves a client.
	GetClientByID(ctx context.Context, organizationID, clientID, requestingUserID string) (*domain.Client, error)

	// ListClients retrieves a page of clients with the unpaged total.
	ListClients(ctx context.Context, organizationID string, activeOnly bool, limit, offset int, requestingUserID string) ([]domain.Client, int, error)
}

// CatalogWriterSvc defines write operations for the product and client catalog
type CatalogWriterSvc interface {
	// CreateProduct adds a product to the catalog.
	CreateProduct(ctx context.Context, organizationID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct edits a product. A changed unit cost appends a row to the
	// product's cost history.
	UpdateProduct(ctx context.Context, organizationID, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)

	// CreateClient adds a client, deriving its code from the name when the
	// request omits one.
	CreateClient(ctx context.Context, organizationID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// UpdateClient edits mutable client fields.
	UpdateClient(ctx context.Context, organizationID, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error)
}

// CatalogSvcFacade combines catalog-related service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
