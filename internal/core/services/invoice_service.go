package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/numbering"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/trade"
)

// InvoiceService handles proforma, commercial and sales invoices. Issuing a
// non-proforma invoice opens the matching ledger transaction; proformas are
// informational and never touch the ledger.
type InvoiceService struct {
	invoiceRepo      portsrepo.InvoiceRepositoryFacade
	financeService   portssvc.FinanceWriterSvc
	financeReader    portssvc.FinanceReaderSvc
	rateService      portssvc.ExchangeRateReaderSvc
	authorizer       portssvc.OrganizationAuthorizerSvc
	baseCurrencyCode string
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, financeService portssvc.FinanceWriterSvc, financeReader portssvc.FinanceReaderSvc, rateService portssvc.ExchangeRateReaderSvc, authorizer portssvc.OrganizationAuthorizerSvc, baseCurrencyCode string) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:      invoiceRepo,
		financeService:   financeService,
		financeReader:    financeReader,
		rateService:      rateService,
		authorizer:       authorizer,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.InvoiceSvcFacade = (*InvoiceService)(nil)

func buildInvoiceItems(invoiceID string, reqItems []dto.InvoiceItemRequest) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(reqItems))
	for i, reqItem := range reqItems {
		items[i] = domain.InvoiceItem{
			InvoiceItemID:       uuid.NewString(),
			InvoiceID:           invoiceID,
			ProductName:         reqItem.ProductName,
			Quantity:            reqItem.Quantity,
			UnitPriceMinorUnits: reqItem.UnitPriceMinorUnits,
			TotalMinorUnits:     money.MulQuantity(reqItem.Quantity, reqItem.UnitPriceMinorUnits),
		}
	}
	return items
}

func recalculateInvoice(inv *domain.Invoice, items []domain.InvoiceItem) {
	lineItems := make([]trade.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = trade.LineItem{Quantity: item.Quantity, UnitPriceMinorUnits: item.UnitPriceMinorUnits}
	}
	totals := trade.Recalculate(lineItems, trade.Fees{
		DiscountMinorUnits: inv.DiscountAmountMinorUnits,
		TaxMinorUnits:      inv.TaxAmountMinorUnits,
	})
	inv.SubtotalMinorUnits = totals.SubtotalMinorUnits
	inv.TotalAmountMinorUnits = totals.TotalMinorUnits
}

// CreateInvoice drafts an invoice of the requested kind.
func (s *InvoiceService) CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, []domain.InvoiceItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, nil, err
	}

	kind := domain.InvoiceKind(req.Kind)
	now := time.Now()
	seq, err := s.invoiceRepo.CountInvoicesForKindYear(ctx, organizationID, kind, now.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count invoices for numbering: %w", err)
	}

	invoice := domain.Invoice{
		InvoiceID:                uuid.NewString(),
		OrganizationID:           organizationID,
		InvoiceNumber:            numbering.InvoiceNumber(string(kind), now, seq+1),
		Kind:                     kind,
		ShipmentID:               req.ShipmentID,
		PurchaseOrderID:          req.PurchaseOrderID,
		RFQID:                    req.RFQID,
		CounterpartyName:         req.CounterpartyName,
		CurrencyCode:             req.CurrencyCode,
		Status:                   domain.InvoiceDraft,
		DueDate:                  req.DueDate,
		DiscountAmountMinorUnits: req.DiscountAmountMinorUnits,
		TaxAmountMinorUnits:      req.TaxAmountMinorUnits,
		Notes:                    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := buildInvoiceItems(invoice.InvoiceID, req.Items)
	recalculateInvoice(&invoice, items)
	if invoice.TotalAmountMinorUnits < 0 {
		logger.Warn("Invoice drafted with negative total", slog.String("invoice_number", invoice.InvoiceNumber), slog.Int64("total", invoice.TotalAmountMinorUnits))
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, items); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("invoice_number", invoice.InvoiceNumber))
		return nil, nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	logger.Info("Invoice drafted", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	return &invoice, items, nil
}

// GetInvoiceByID retrieves an invoice with its items.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, []domain.InvoiceItem, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	items, err := s.invoiceRepo.FindInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	return invoice, items, nil
}

// ListInvoices retrieves a paginated list of invoices.
func (s *InvoiceService) ListInvoices(ctx context.Context, organizationID string, kind *domain.InvoiceKind, status *domain.InvoiceStatus, limit, offset int, requestingUserID string) ([]domain.Invoice, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	invoices, total, err := s.invoiceRepo.ListInvoices(ctx, organizationID, kind, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, total, nil
}

// UpdateInvoice edits a draft invoice and recomputes totals.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, organizationID, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, []domain.InvoiceItem, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice for update: %w", err)
	}
	if invoice.IsFinalized() {
		return nil, nil, fmt.Errorf("%w: invoice %s", apperrors.ErrDocumentFinalized, invoice.InvoiceNumber)
	}

	if req.CounterpartyName != nil {
		invoice.CounterpartyName = *req.CounterpartyName
	}
	if req.DiscountAmountMinorUnits != nil {
		invoice.DiscountAmountMinorUnits = *req.DiscountAmountMinorUnits
	}
	if req.TaxAmountMinorUnits != nil {
		invoice.TaxAmountMinorUnits = *req.TaxAmountMinorUnits
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	items, err := s.invoiceRepo.FindInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice items for update: %w", err)
	}
	if req.Items != nil {
		items = buildInvoiceItems(invoiceID, req.Items)
		if err := s.invoiceRepo.ReplaceInvoiceItems(ctx, invoiceID, items); err != nil {
			return nil, nil, fmt.Errorf("failed to replace invoice items: %w", err)
		}
	}

	recalculateInvoice(invoice, items)
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = requestingUserID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, items, nil
}

// IssueInvoice finalizes the invoice: locks the base-currency rate, freezes
// totals and opens the matching ledger transaction for non-proforma kinds.
func (s *InvoiceService) IssueInvoice(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice for issuing: %w", err)
	}
	if invoice.IsFinalized() {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrDocumentFinalized, invoice.InvoiceNumber)
	}

	now := time.Now()
	rate, rateDate, err := s.rateService.GetConversionRate(ctx, invoice.CurrencyCode, s.baseCurrencyCode, now)
	if err != nil {
		return nil, err
	}
	totalBase, err := trade.ConvertTotal(invoice.TotalAmountMinorUnits, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert invoice total to base currency: %w", err)
	}

	invoice.Status = domain.InvoiceIssued
	invoice.IssuedAt = &now
	invoice.LockedExchangeRate = &rate
	invoice.LockedExchangeRateDate = &rateDate
	invoice.TotalBaseCurrencyMinorUnits = &totalBase
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to issue invoice: %w", err)
	}

	// Sales invoices collect from clients; commercial invoices document
	// customs values on outbound shipments and also bill the client.
	if invoice.Kind != domain.InvoiceProforma && s.financeService != nil {
		_, err := s.financeService.CreateTransaction(ctx, organizationID, dto.CreateTransactionRequest{
			Kind:             string(domain.Receivable),
			Description:      fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
			CounterpartyName: invoice.CounterpartyName,
			CurrencyCode:     invoice.CurrencyCode,
			AmountMinorUnits: invoice.TotalAmountMinorUnits,
			DueDate:          invoice.DueDate,
			DocumentType:     "invoice",
			DocumentID:       invoice.InvoiceID,
		}, requestingUserID)
		if err != nil {
			logger.Error("Failed to open receivable for issued invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
	}

	logger.Info("Invoice issued", slog.String("invoice_id", invoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	return invoice, nil
}

// VoidInvoice voids an issued invoice and cancels its ledger transaction.
func (s *InvoiceService) VoidInvoice(ctx context.Context, organizationID, invoiceID, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice for voiding: %w", err)
	}
	if invoice.Status != domain.InvoiceIssued {
		return nil, fmt.Errorf("%w: only issued invoices can be voided", apperrors.ErrValidation)
	}

	invoice.Status = domain.InvoiceVoid
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = requestingUserID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to void invoice: %w", err)
	}

	if err := s.cancelLinkedTransaction(ctx, organizationID, invoice.InvoiceID, requestingUserID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Failed to cancel ledger transaction for voided invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
	}

	logger.Info("Invoice voided", slog.String("invoice_id", invoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	return invoice, nil
}

func (s *InvoiceService) cancelLinkedTransaction(ctx context.Context, organizationID, invoiceID, requestingUserID string) error {
	if s.financeReader == nil || s.financeService == nil {
		return nil
	}
	txn, err := s.financeReader.GetTransactionByDocument(ctx, organizationID, "invoice", invoiceID, requestingUserID)
	if err != nil {
		return err
	}
	_, err = s.financeService.CancelTransaction(ctx, organizationID, txn.TransactionID, requestingUserID)
	return err
}
