package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/numbering"
)

// CatalogService manages the product and client master data documents draw
// their defaults from.
type CatalogService struct {
	catalogRepo  portsrepo.CatalogRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	authorizer   portssvc.OrganizationAuthorizerSvc
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, currencyRepo portsrepo.CurrencyReader, authorizer portssvc.OrganizationAuthorizerSvc) *CatalogService {
	return &CatalogService{
		catalogRepo:  catalogRepo,
		currencyRepo: currencyRepo,
		authorizer:   authorizer,
	}
}

var _ portssvc.CatalogSvcFacade = (*CatalogService)(nil)

// costChangePercent computes the signed percentage move between two unit
// costs, rounded to 2 decimal places. Zero when the old cost was zero.
func costChangePercent(oldCost, newCost int64) decimal.Decimal {
	if oldCost == 0 {
		return decimal.Zero
	}
	diff := decimal.NewFromInt(newCost - oldCost)
	return diff.Div(decimal.NewFromInt(oldCost)).Mul(decimal.NewFromInt(100)).Round(2)
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, organizationID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, err
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate currency code: %w", err)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:          uuid.NewString(),
		OrganizationID:     organizationID,
		SKU:                req.SKU,
		Name:               req.Name,
		Description:        req.Description,
		HSCode:             req.HSCode,
		OriginCountry:      req.OriginCountry,
		MOQ:                req.MOQ,
		LeadTimeDays:       req.LeadTimeDays,
		CurrencyCode:       req.CurrencyCode,
		UnitCostMinorUnits: req.UnitCostMinorUnits,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.catalogRepo.SaveProduct(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: SKU %s already exists", apperrors.ErrDuplicate, req.SKU)
		}
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

// GetProductByID retrieves a catalog product.
func (s *CatalogService) GetProductByID(ctx context.Context, organizationID, productID, requestingUserID string) (*domain.Product, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	product, err := s.catalogRepo.FindProductByID(ctx, organizationID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts retrieves a page of products with the unpaged total.
func (s *CatalogService) ListProducts(ctx context.Context, organizationID string, activeOnly bool, limit, offset int, requestingUserID string) ([]domain.Product, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	products, total, err := s.catalogRepo.ListProducts(ctx, organizationID, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// UpdateProduct edits a product. A changed unit cost appends a row to the
// product's cost history before the product row is updated.
func (s *CatalogService) UpdateProduct(ctx context.Context, organizationID, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, updaterUserID, organizationID); err != nil {
		return nil, err
	}
	product, err := s.catalogRepo.FindProductByID(ctx, organizationID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product for update: %w", err)
	}

	now := time.Now()
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.HSCode != nil {
		product.HSCode = *req.HSCode
	}
	if req.OriginCountry != nil {
		product.OriginCountry = *req.OriginCountry
	}
	if req.MOQ != nil {
		product.MOQ = *req.MOQ
	}
	if req.LeadTimeDays != nil {
		product.LeadTimeDays = *req.LeadTimeDays
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if req.UnitCostMinorUnits != nil && *req.UnitCostMinorUnits != product.UnitCostMinorUnits {
		oldCost := product.UnitCostMinorUnits
		newCost := *req.UnitCostMinorUnits
		entry := domain.ProductCostEntry{
			CostEntryID:          uuid.NewString(),
			ProductID:            product.ProductID,
			OldCostMinorUnits:    oldCost,
			NewCostMinorUnits:    newCost,
			DifferenceMinorUnits: newCost - oldCost,
			PercentChange:        costChangePercent(oldCost, newCost),
			Reason:               req.CostChangeReason,
			ChangedBy:            updaterUserID,
			ChangedAt:            now,
		}
		if err := s.catalogRepo.SaveProductCostEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record cost change: %w", err)
		}
		product.UnitCostMinorUnits = newCost
		logger.Info("Product cost changed",
			slog.String("product_id", product.ProductID),
			slog.Int64("old_cost", oldCost),
			slog.Int64("new_cost", newCost))
	}

	product.LastUpdatedAt = now
	product.LastUpdatedBy = updaterUserID
	if err := s.catalogRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// GetProductCostHistory retrieves a product's cost change entries, newest first.
func (s *CatalogService) GetProductCostHistory(ctx context.Context, organizationID, productID, requestingUserID string) ([]domain.ProductCostEntry, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	// Scope check before exposing history rows keyed only by product ID.
	if _, err := s.catalogRepo.FindProductByID(ctx, organizationID, productID); err != nil {
		return nil, fmt.Errorf("failed to get product for cost history: %w", err)
	}
	entries, err := s.catalogRepo.ListProductCostHistory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost history: %w", err)
	}
	return entries, nil
}

// CreateClient adds a client, deriving its code from the name when the
// request omits one.
func (s *CatalogService) CreateClient(ctx context.Context, organizationID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, creatorUserID, organizationID); err != nil {
		return nil, err
	}

	code := req.Code
	if code == "" {
		code = numbering.ClientCode(req.Name)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:       uuid.NewString(),
		OrganizationID: organizationID,
		Code:           code,
		Name:           req.Name,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Country:        req.Country,
		Notes:          req.Notes,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.catalogRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: client code %s already exists", apperrors.ErrDuplicate, code)
		}
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("client_code", code))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("client_code", client.Code))
	return &client, nil
}

// GetClientByID retrieves a client.
func (s *CatalogService) GetClientByID(ctx context.Context, organizationID, clientID, requestingUserID string) (*domain.Client, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	client, err := s.catalogRepo.FindClientByID(ctx, organizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// ListClients retrieves a page of clients with the unpaged total.
func (s *CatalogService) ListClients(ctx context.Context, organizationID string, activeOnly bool, limit, offset int, requestingUserID string) ([]domain.Client, int, error) {
	if _, err := s.authorizer.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, 0, err
	}
	clients, total, err := s.catalogRepo.ListClients(ctx, organizationID, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// UpdateClient edits mutable client fields. The code stays fixed because
// issued RFQ numbers embed it.
func (s *CatalogService) UpdateClient(ctx context.Context, organizationID, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error) {
	if err := s.authorizer.AuthorizeUserCanWrite(ctx, updaterUserID, organizationID); err != nil {
		return nil, err
	}
	client, err := s.catalogRepo.FindClientByID(ctx, organizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client for update: %w", err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Country != nil {
		client.Country = *req.Country
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = updaterUserID
	if err := s.catalogRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}
