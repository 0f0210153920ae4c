package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// CustomerQuoteReaderSvc defines read operations for customer quote data
type CustomerQuoteReaderSvc interface {
	// GetCustomerQuoteByID retrieves a customer quote with its items.
	GetCustomerQuoteByID(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error)

	// ListCustomerQuotes retrieves a paginated list of customer quotes.
	ListCustomerQuotes(ctx context.Context, organizationID string, status *domain.CustomerQuoteStatus, limit, offset int, requestingUserID string) ([]domain.CustomerQuote, int, error)
}

// CustomerQuoteWriterSvc defines write operations for customer quote data
type CustomerQuoteWriterSvc interface {
	// CreateCustomerQuote drafts a quote with a generated number and computed totals.
	CreateCustomerQuote(ctx context.Context, organizationID string, req dto.CreateCustomerQuoteRequest, creatorUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error)

	// UpdateCustomerQuote edits a draft quote and recomputes totals.
	UpdateCustomerQuote(ctx context.Context, organizationID, quoteID string, req dto.UpdateCustomerQuoteRequest, requestingUserID string) (*domain.CustomerQuote, []domain.CustomerQuoteItem, error)

	// SendCustomerQuote finalizes the quote, locking the base-currency rate.
	SendCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error)

	// ApproveCustomerQuote records client approval of a sent quote.
	ApproveCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error)

	// RejectCustomerQuote records client rejection of a sent quote.
	RejectCustomerQuote(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.CustomerQuote, error)
}

// CustomerQuoteSvcFacade combines all customer quote-related service interfaces
type CustomerQuoteSvcFacade interface {
	CustomerQuoteReaderSvc
	CustomerQuoteWriterSvc
}
