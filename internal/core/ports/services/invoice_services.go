package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its items.
	GetInvoiceByID(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, []domain.InvoiceItem, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, organizationID string, kind *domain.InvoiceKind, status *domain.InvoiceStatus, limit, offset int, requestingUserID string) ([]domain.Invoice, int, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice drafts an invoice of the requested kind with a generated
	// number and computed totals.
	CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, []domain.InvoiceItem, error)

	// UpdateInvoice edits a draft invoice and recomputes totals.
	UpdateInvoice(ctx context.Context, organizationID, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, []domain.InvoiceItem, error)

	// IssueInvoice finalizes the invoice: locks the base-currency rate,
	// freezes totals, and for non-proforma kinds opens the matching ledger
	// transaction.
	IssueInvoice(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, error)

	// VoidInvoice voids an issued invoice and cancels its ledger transaction.
	VoidInvoice(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
