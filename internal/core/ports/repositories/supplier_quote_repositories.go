package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// SupplierQuoteReader defines read operations for supplier quote data
type SupplierQuoteReader interface {
	FindSupplierQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.SupplierQuote, error)
	FindSupplierQuoteItems(ctx context.Context, quoteID string) ([]domain.SupplierQuoteItem, error)
	ListSupplierQuotesByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.SupplierQuote, error)

	// CountQuotesForSupplierRFQ counts prior quotes (including deleted) from a
	// supplier against an RFQ, used for revision numbering.
	CountQuotesForSupplierRFQ(ctx context.Context, organizationID, rfqID, supplierName string) (int, error)
}

// SupplierQuoteWriter defines write operations for supplier quote data
type SupplierQuoteWriter interface {
	// SaveSupplierQuote persists a quote and its items atomically.
	SaveSupplierQuote(ctx context.Context, quote domain.SupplierQuote, items []domain.SupplierQuoteItem) error
	UpdateSupplierQuote(ctx context.Context, quote domain.SupplierQuote) error
	UpdateSupplierQuoteItems(ctx context.Context, quoteID string, items []domain.SupplierQuoteItem) error
}

// SupplierQuoteRepositoryFacade combines all supplier quote repository interfaces
type SupplierQuoteRepositoryFacade interface {
	SupplierQuoteReader
	SupplierQuoteWriter
}
