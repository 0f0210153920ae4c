package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, organizationID, invoiceID string) (*domain.Invoice, error)
	FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)
	ListInvoices(ctx context.Context, organizationID string, kind *domain.InvoiceKind, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, int, error)
	CountInvoicesForKindYear(ctx context.Context, organizationID string, kind domain.InvoiceKind, year int) (int, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	ReplaceInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
