package services

import (
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portssvc.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first since everything else authorizes through it.
	orgService := NewOrganizationService(repos.OrganizationRepo, repos.CurrencyRepo)
	container.Organization = orgService

	currencyService := NewCurrencyService(repos.CurrencyRepo)
	container.Currency = currencyService

	rateService := NewExchangeRateService(repos.ExchangeRateRepo, currencyService, rateProvider, cfg.BaseCurrencyCode)
	container.ExchangeRate = rateService

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	financeService := NewFinanceService(repos.FinanceRepo, rateService, orgService, cfg.BaseCurrencyCode)
	container.Finance = financeService

	container.RFQ = NewRFQService(repos.RFQRepo, repos.SupplierQuoteRepo, repos.CustomerQuoteRepo, repos.PurchaseOrderRepo, repos.ShipmentRepo, rateService, orgService, cfg.BaseCurrencyCode)
	container.SupplierQuote = NewSupplierQuoteService(repos.SupplierQuoteRepo, repos.RFQRepo, rateService, orgService)
	container.PurchaseOrder = NewPurchaseOrderService(repos.PurchaseOrderRepo, repos.SupplierQuoteRepo, repos.RFQRepo, rateService, financeService, orgService, cfg.BaseCurrencyCode)
	container.CustomerQuote = NewCustomerQuoteService(repos.CustomerQuoteRepo, rateService, orgService, cfg.BaseCurrencyCode)
	invoiceService := NewInvoiceService(repos.InvoiceRepo, financeService, financeService, rateService, orgService, cfg.BaseCurrencyCode)
	container.Invoice = invoiceService
	container.Shipment = NewShipmentService(repos.ShipmentRepo, repos.PurchaseOrderRepo, rateService, invoiceService, orgService, cfg.BaseCurrencyCode)
	container.Catalog = NewCatalogService(repos.CatalogRepo, repos.CurrencyRepo, orgService)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.CurrencySvcFacade      = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade  = (*ExchangeRateService)(nil)
	_ portssvc.OrganizationSvcFacade  = (*OrganizationService)(nil)
	_ portssvc.UserSvcFacade          = (*UserService)(nil)
	_ portssvc.RFQSvcFacade           = (*RFQService)(nil)
	_ portssvc.SupplierQuoteSvcFacade = (*SupplierQuoteService)(nil)
	_ portssvc.PurchaseOrderSvcFacade = (*PurchaseOrderService)(nil)
	_ portssvc.CustomerQuoteSvcFacade = (*CustomerQuoteService)(nil)
	_ portssvc.ShipmentSvcFacade      = (*ShipmentService)(nil)
	_ portssvc.InvoiceSvcFacade       = (*InvoiceService)(nil)
	_ portssvc.FinanceSvcFacade       = (*FinanceService)(nil)
	_ portssvc.CatalogSvcFacade      = (*CatalogService)(nil)
)
