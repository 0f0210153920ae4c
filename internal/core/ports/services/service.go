package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency      CurrencySvcFacade
	ExchangeRate  ExchangeRateSvcFacade
	Organization  OrganizationSvcFacade
	User          UserSvcFacade
	Token         TokenSvcFacade
	GoogleOAuth   GoogleOAuthHandlerSvcFacade
	RFQ           RFQSvcFacade
	SupplierQuote SupplierQuoteSvcFacade
	PurchaseOrder PurchaseOrderSvcFacade
	CustomerQuote CustomerQuoteSvcFacade
	Shipment      ShipmentSvcFacade
	Invoice       InvoiceSvcFacade
	Finance       FinanceSvcFacade
	Catalog       CatalogSvcFacade
}
