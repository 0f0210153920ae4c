package repositories

// RepositoryProvider holds all repository interfaces needed by services
type RepositoryProvider struct {
	CurrencyRepo      CurrencyRepositoryFacade
	ExchangeRateRepo  ExchangeRateRepositoryFacade
	OrganizationRepo  OrganizationRepositoryFacade
	UserRepo          UserRepositoryFacade
	RFQRepo           RFQRepositoryFacade
	SupplierQuoteRepo SupplierQuoteRepositoryFacade
	PurchaseOrderRepo PurchaseOrderRepositoryFacade
	CustomerQuoteRepo CustomerQuoteRepositoryFacade
	ShipmentRepo      ShipmentRepositoryFacade
	InvoiceRepo       InvoiceRepositoryFacade
	FinanceRepo       FinanceRepositoryFacade
	CatalogRepo       CatalogRepositoryFacade
}
