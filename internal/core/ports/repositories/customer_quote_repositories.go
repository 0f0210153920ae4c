package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// CustomerQuoteReader defines read operations for customer quote data
type CustomerQuoteReader interface {
	FindCustomerQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.CustomerQuote, error)
	FindCustomerQuoteItems(ctx context.Context, quoteID string) ([]domain.CustomerQuoteItem, error)
	ListCustomerQuotes(ctx context.Context, organizationID string, status *domain.CustomerQuoteStatus, limit, offset int) ([]domain.CustomerQuote, int, error)
	CountCustomerQuotesForYear(ctx context.Context, organizationID string, year int) (int, error)
	FindApprovedCustomerQuoteByRFQ(ctx context.Context, organizationID, rfqID string) (*domain.CustomerQuote, error)
}

// CustomerQuoteWriter defines write operations for customer quote data
type CustomerQuoteWriter interface {
	SaveCustomerQuote(ctx context.Context, quote domain.CustomerQuote, items []domain.CustomerQuoteItem) error
	UpdateCustomerQuote(ctx context.Context, quote domain.CustomerQuote) error
	ReplaceCustomerQuoteItems(ctx context.Context, quoteID string, items []domain.CustomerQuoteItem) error
}

// CustomerQuoteRepositoryFacade combines all customer quote repository interfaces
type CustomerQuoteRepositoryFacade interface {
	CustomerQuoteReader
	CustomerQuoteWriter
}
