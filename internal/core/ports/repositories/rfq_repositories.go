package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// RFQReader defines read operations for RFQ data
type RFQReader interface {
	FindRFQByID(ctx context.Context, organizationID, rfqID string) (*domain.RFQ, error)
	FindRFQItems(ctx context.Context, rfqID string) ([]domain.RFQItem, error)
	ListRFQs(ctx context.Context, organizationID string, status *domain.RFQStatus, limit, offset int) ([]domain.RFQ, int, error)

	// CountRFQsForClientYear returns how many RFQs exist for the client code
	// in the given year, used for sequence numbering.
	CountRFQsForClientYear(ctx context.Context, organizationID, clientCode string, year int) (int, error)
}

// RFQWriter defines write operations for RFQ data
type RFQWriter interface {
	// SaveRFQ persists an RFQ and its items atomically.
	SaveRFQ(ctx context.Context, rfq domain.RFQ, items []domain.RFQItem) error
	UpdateRFQ(ctx context.Context, rfq domain.RFQ) error
}

// RFQRepositoryFacade combines all RFQ repository interfaces
type RFQRepositoryFacade interface {
	RFQReader
	RFQWriter
}
