package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// RFQReaderSvc defines read operations for RFQ data
type RFQReaderSvc interface {
	// GetRFQByID retrieves an RFQ with its items.
	GetRFQByID(ctx context.Context, organizationID, rfqID, requestingUserID string) (*domain.RFQ, []domain.RFQItem, error)

	// ListRFQs retrieves a paginated list of RFQs.
	ListRFQs(ctx context.Context, organizationID string, status *domain.RFQStatus, limit, offset int, requestingUserID string) ([]domain.RFQ, int, error)

	// CompareQuotes returns the RFQ's supplier quotes ordered by converted
	// total, cheapest first. Quotes without a locked rate sort last.
	CompareQuotes(ctx context.Context, organizationID, rfqID, requestingUserID string) ([]domain.SupplierQuote, error)

	// GetRFQMargin computes the RFQ's realized margin in the base currency:
	// approved customer quote revenue minus purchase order costs minus
	// shipment expenses.
	GetRFQMargin(ctx context.Context, organizationID, rfqID, requestingUserID string) (*dto.RFQMarginResponse, error)
}

// RFQWriterSvc defines write operations for RFQ data
type RFQWriterSvc interface {
	// CreateRFQ creates an RFQ with a generated number and its items.
	CreateRFQ(ctx context.Context, organizationID string, req dto.CreateRFQRequest, creatorUserID string) (*domain.RFQ, []domain.RFQItem, error)

	// UpdateRFQStatus moves an RFQ through its lifecycle.
	UpdateRFQStatus(ctx context.Context, organizationID, rfqID string, status domain.RFQStatus, requestingUserID string) (*domain.RFQ, error)

	// SelectQuote marks a supplier quote as the RFQ winner, rejects the rest
	// and closes the RFQ.
	SelectQuote(ctx context.Context, organizationID, rfqID, supplierQuoteID, requestingUserID string) (*domain.RFQ, error)
}

// RFQSvcFacade combines all RFQ-related service interfaces
type RFQSvcFacade interface {
	RFQReaderSvc
	RFQWriterSvc
}

// SupplierQuoteReaderSvc defines read operations for supplier quote data
type SupplierQuoteReaderSvc interface {
	// GetSupplierQuoteByID retrieves a supplier quote with its items.
	GetSupplierQuoteByID(ctx context.Context, organizationID, quoteID, requestingUserID string) (*domain.SupplierQuote, []domain.SupplierQuoteItem, error)

	// ListSupplierQuotesByRFQ lists all quotes against an RFQ.
	ListSupplierQuotesByRFQ(ctx context.Context, organizationID, rfqID, requestingUserID string) ([]domain.SupplierQuote, error)
}

// SupplierQuoteWriterSvc defines write operations for supplier quote data
type SupplierQuoteWriterSvc interface {
	// RegisterSupplierQuote records a supplier's quote against an RFQ: applies
	// commission, locks the conversion rate to the RFQ currency and computes
	// the converted totals.
	RegisterSupplierQuote(ctx context.Context, organizationID, rfqID string, req dto.CreateSupplierQuoteRequest, creatorUserID string) (*domain.SupplierQuote, []domain.SupplierQuoteItem, error)
}

// SupplierQuoteSvcFacade combines all supplier quote-related service interfaces
type SupplierQuoteSvcFacade interface {
	SupplierQuoteReaderSvc
	SupplierQuoteWriterSvc
}
