package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// MockExchangeRateRepository is a mock implementation of portsrepo.ExchangeRateRepositoryFacade.
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestApprovedRate(ctx context.Context, baseCode, targetCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode, targetCode, onDate)
	if rate, ok := args.Get(0).(*domain.ExchangeRate); ok {
		return rate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExchangeRateRepository) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if rate, ok := args.Get(0).(*domain.ExchangeRate); ok {
		return rate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, baseCode, targetCode, limit, offset)
	if rates, ok := args.Get(0).([]domain.ExchangeRate); ok {
		return rates, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpdateRateStatus(ctx context.Context, rateID string, status domain.RateStatus, reviewerUserID string, reviewedAt time.Time) error {
	args := m.Called(ctx, rateID, status, reviewerUserID, reviewedAt)
	return args.Error(0)
}

// MockCurrencyRepository is a mock implementation of portsrepo.CurrencyRepositoryFacade.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if currency, ok := args.Get(0).(*domain.Currency); ok {
		return currency, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if currencies, ok := args.Get(0).([]domain.Currency); ok {
		return currencies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockRFQRepository is a mock implementation of portsrepo.RFQRepositoryFacade.
type MockRFQRepository struct {
	mock.Mock
}

func (m *MockRFQRepository) FindRFQByID(ctx context.Context, organizationID, rfqID string) (*domain.RFQ, error) {
	args := m.Called(ctx, organizationID, rfqID)
	if rfq, ok := args.Get(0).(*domain.RFQ); ok {
		return rfq, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRFQRepository) FindRFQItems(ctx context.Context, rfqID string) ([]domain.RFQItem, error) {
	args := m.Called(ctx, rfqID)
	if items, ok := args.Get(0).([]domain.RFQItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRFQRepository) ListRFQs(ctx context.Context, organizationID string, status *domain.RFQStatus, limit, offset int) ([]domain.RFQ, int, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	if rfqs, ok := args.Get(0).([]domain.RFQ); ok {
		return rfqs, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockRFQRepository) CountRFQsForClientYear(ctx context.Context, organizationID, clientCode string, year int) (int, error) {
	args := m.Called(ctx, organizationID, clientCode, year)
	return args.Int(0), args.Error(1)
}

func (m *MockRFQRepository) SaveRFQ(ctx context.Context, rfq domain.RFQ, items []domain.RFQItem) error {
	args := m.Called(ctx, rfq, items)
	return args.Error(0)
}

func (m *MockRFQRepository) UpdateRFQ(ctx context.Context, rfq domain.RFQ) error {
	args := m.Called(ctx, rfq)
	return args.Error(0)
}

// MockSupplierQuoteRepository is a mock implementation of portsrepo.SupplierQuoteRepositoryFacade.
type MockSupplierQuoteRepository struct {
	mock.Mock
}

func (m *MockSupplierQuoteRepository) FindSupplierQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.SupplierQuote, error) {
	args := m.Called(ctx, organizationID, quoteID)
	if quote, ok := args.Get(0).(*domain.SupplierQuote); ok {
		return quote, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierQuoteRepository) FindSupplierQuoteItems(ctx context.Context, quoteID string) ([]domain.SupplierQuoteItem, error) {
	args := m.Called(ctx, quoteID)
	if items, ok := args.Get(0).([]domain.SupplierQuoteItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierQuoteRepository) ListSupplierQuotesByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.SupplierQuote, error) {
	args := m.Called(ctx, organizationID, rfqID)
	if quotes, ok := args.Get(0).([]domain.SupplierQuote); ok {
		return quotes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierQuoteRepository) CountQuotesForSupplierRFQ(ctx context.Context, organizationID, rfqID, supplierName string) (int, error) {
	args := m.Called(ctx, organizationID, rfqID, supplierName)
	return args.Int(0), args.Error(1)
}

func (m *MockSupplierQuoteRepository) SaveSupplierQuote(ctx context.Context, quote domain.SupplierQuote, items []domain.SupplierQuoteItem) error {
	args := m.Called(ctx, quote, items)
	return args.Error(0)
}

func (m *MockSupplierQuoteRepository) UpdateSupplierQuote(ctx context.Context, quote domain.SupplierQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockSupplierQuoteRepository) UpdateSupplierQuoteItems(ctx context.Context, quoteID string, items []domain.SupplierQuoteItem) error {
	args := m.Called(ctx, quoteID, items)
	return args.Error(0)
}

// MockPurchaseOrderRepository is a mock implementation of portsrepo.PurchaseOrderRepositoryFacade.
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, organizationID, poID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, organizationID, poID)
	if po, ok := args.Get(0).(*domain.PurchaseOrder); ok {
		return po, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindPurchaseOrderItems(ctx context.Context, poID string) ([]domain.PurchaseOrderItem, error) {
	args := m.Called(ctx, poID)
	if items, ok := args.Get(0).([]domain.PurchaseOrderItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseOrderRepository) ListPurchaseOrders(ctx context.Context, organizationID string, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	if pos, ok := args.Get(0).([]domain.PurchaseOrder); ok {
		return pos, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockPurchaseOrderRepository) ListPurchaseOrdersByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, organizationID, rfqID)
	pos, _ := args.Get(0).([]domain.PurchaseOrder)
	return pos, args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountPurchaseOrdersForMonth(ctx context.Context, organizationID string, onDate time.Time) (int, error) {
	args := m.Called(ctx, organizationID, onDate)
	return args.Int(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	args := m.Called(ctx, po, items)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) ReplacePurchaseOrderItems(ctx context.Context, poID string, items []domain.PurchaseOrderItem) error {
	args := m.Called(ctx, poID, items)
	return args.Error(0)
}

// MockFinanceRepository is a mock implementation of portsrepo.FinanceRepositoryFacade.
type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if txn, ok := args.Get(0).(*domain.FinancialTransaction); ok {
		return txn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceRepository) FindTransactionByDocument(ctx context.Context, organizationID, documentType, documentID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, documentType, documentID)
	if txn, ok := args.Get(0).(*domain.FinancialTransaction); ok {
		return txn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceRepository) ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int) ([]domain.FinancialTransaction, int, error) {
	args := m.Called(ctx, organizationID, kind, status, limit, offset)
	if txns, ok := args.Get(0).([]domain.FinancialTransaction); ok {
		return txns, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockFinanceRepository) CountTransactionsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	args := m.Called(ctx, organizationID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockFinanceRepository) SaveTransaction(ctx context.Context, transaction domain.FinancialTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockFinanceRepository) UpdateTransaction(ctx context.Context, transaction domain.FinancialTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockFinanceRepository) FindPaymentByID(ctx context.Context, organizationID, paymentID string) (*domain.FinancialPayment, error) {
	args := m.Called(ctx, organizationID, paymentID)
	if payment, ok := args.Get(0).(*domain.FinancialPayment); ok {
		return payment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceRepository) ListPayments(ctx context.Context, organizationID string, limit, offset int) ([]domain.FinancialPayment, int, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if payments, ok := args.Get(0).([]domain.FinancialPayment); ok {
		return payments, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockFinanceRepository) ListAllocationsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, transactionID)
	if allocations, ok := args.Get(0).([]domain.PaymentAllocation); ok {
		return allocations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceRepository) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	if allocations, ok := args.Get(0).([]domain.PaymentAllocation); ok {
		return allocations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceRepository) CountPaymentsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	args := m.Called(ctx, organizationID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockFinanceRepository) SavePayment(ctx context.Context, payment domain.FinancialPayment, allocations []domain.PaymentAllocation) error {
	args := m.Called(ctx, payment, allocations)
	return args.Error(0)
}

func (m *MockFinanceRepository) UpdatePayment(ctx context.Context, payment domain.FinancialPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockOrganizationAuthorizer is a mock implementation of portssvc.OrganizationAuthorizerSvc.
type MockOrganizationAuthorizer struct {
	mock.Mock
}

func (m *MockOrganizationAuthorizer) AuthorizeUserForOrganization(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error) {
	args := m.Called(ctx, userID, organizationID)
	if role, ok := args.Get(0).(domain.UserOrganizationRole); ok {
		return role, args.Error(1)
	}
	return "", args.Error(1)
}

func (m *MockOrganizationAuthorizer) AuthorizeUserCanWrite(ctx context.Context, userID, organizationID string) error {
	args := m.Called(ctx, userID, organizationID)
	return args.Error(0)
}

// MockRateReader is a mock implementation of portssvc.ExchangeRateReaderSvc.
type MockRateReader struct {
	mock.Mock
}

func (m *MockRateReader) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if rate, ok := args.Get(0).(*domain.ExchangeRate); ok {
		return rate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRateReader) ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, baseCode, targetCode, limit, offset)
	if rates, ok := args.Get(0).([]domain.ExchangeRate); ok {
		return rates, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockRateReader) GetConversionRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, fromCode, toCode, onDate)
	rate, _ := args.Get(0).(decimal.Decimal)
	rateDate, _ := args.Get(1).(time.Time)
	return rate, rateDate, args.Error(2)
}

func (m *MockRateReader) ConvertAmount(ctx context.Context, fromCode, toCode string, amountMinorUnits int64, onDate time.Time) (*portssvc.ConversionResult, error) {
	args := m.Called(ctx, fromCode, toCode, amountMinorUnits, onDate)
	if result, ok := args.Get(0).(*portssvc.ConversionResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCustomerQuoteReader is a mock implementation of portsrepo.CustomerQuoteReader.
type MockCustomerQuoteReader struct {
	mock.Mock
}

func (m *MockCustomerQuoteReader) FindCustomerQuoteByID(ctx context.Context, organizationID, quoteID string) (*domain.CustomerQuote, error) {
	args := m.Called(ctx, organizationID, quoteID)
	if q, ok := args.Get(0).(*domain.CustomerQuote); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerQuoteReader) FindCustomerQuoteItems(ctx context.Context, quoteID string) ([]domain.CustomerQuoteItem, error) {
	args := m.Called(ctx, quoteID)
	items, _ := args.Get(0).([]domain.CustomerQuoteItem)
	return items, args.Error(1)
}

func (m *MockCustomerQuoteReader) ListCustomerQuotes(ctx context.Context, organizationID string, status *domain.CustomerQuoteStatus, limit, offset int) ([]domain.CustomerQuote, int, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	quotes, _ := args.Get(0).([]domain.CustomerQuote)
	return quotes, args.Int(1), args.Error(2)
}

func (m *MockCustomerQuoteReader) CountCustomerQuotesForYear(ctx context.Context, organizationID string, year int) (int, error) {
	args := m.Called(ctx, organizationID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerQuoteReader) FindApprovedCustomerQuoteByRFQ(ctx context.Context, organizationID, rfqID string) (*domain.CustomerQuote, error) {
	args := m.Called(ctx, organizationID, rfqID)
	if q, ok := args.Get(0).(*domain.CustomerQuote); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockShipmentReader is a mock implementation of portsrepo.ShipmentReader.
type MockShipmentReader struct {
	mock.Mock
}

func (m *MockShipmentReader) FindShipmentByID(ctx context.Context, organizationID, shipmentID string) (*domain.Shipment, error) {
	args := m.Called(ctx, organizationID, shipmentID)
	if s, ok := args.Get(0).(*domain.Shipment); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentReader) FindShipmentItems(ctx context.Context, shipmentID string) ([]domain.ShipmentItem, error) {
	args := m.Called(ctx, shipmentID)
	items, _ := args.Get(0).([]domain.ShipmentItem)
	return items, args.Error(1)
}

func (m *MockShipmentReader) ListShipments(ctx context.Context, organizationID string, status *domain.ShipmentStatus, limit, offset int) ([]domain.Shipment, int, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	shipments, _ := args.Get(0).([]domain.Shipment)
	return shipments, args.Int(1), args.Error(2)
}

func (m *MockShipmentReader) ListShipmentsByRFQ(ctx context.Context, organizationID, rfqID string) ([]domain.Shipment, error) {
	args := m.Called(ctx, organizationID, rfqID)
	shipments, _ := args.Get(0).([]domain.Shipment)
	return shipments, args.Error(1)
}

func (m *MockShipmentReader) CountShipmentsForYear(ctx context.Context, organizationID string, year int) (int, error) {
	args := m.Called(ctx, organizationID, year)
	return args.Int(0), args.Error(1)
}

// MockFinanceWriter is a mock implementation of portssvc.FinanceWriterSvc.
type MockFinanceWriter struct {
	mock.Mock
}

func (m *MockFinanceWriter) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if txn, ok := args.Get(0).(*domain.FinancialTransaction); ok {
		return txn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFinanceWriter) RecordPayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	payment, _ := args.Get(0).(*domain.FinancialPayment)
	allocations, _ := args.Get(1).([]domain.PaymentAllocation)
	return payment, allocations, args.Error(2)
}

func (m *MockFinanceWriter) CancelTransaction(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID, requestingUserID)
	if txn, ok := args.Get(0).(*domain.FinancialTransaction); ok {
		return txn, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCatalogRepository is a mock implementation of portsrepo.CatalogRepositoryFacade.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, productID)
	if product, ok := args.Get(0).(*domain.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) FindProductBySKU(ctx context.Context, organizationID, sku string) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, sku)
	if product, ok := args.Get(0).(*domain.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Product, int, error) {
	args := m.Called(ctx, organizationID, activeOnly, limit, offset)
	if products, ok := args.Get(0).([]domain.Product); ok {
		return products, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockCatalogRepository) ListProductCostHistory(ctx context.Context, productID string) ([]domain.ProductCostEntry, error) {
	args := m.Called(ctx, productID)
	if entries, ok := args.Get(0).([]domain.ProductCostEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveProductCostEntry(ctx context.Context, entry domain.ProductCostEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, organizationID, clientID)
	if client, ok := args.Get(0).(*domain.Client); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListClients(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]domain.Client, int, error) {
	args := m.Called(ctx, organizationID, activeOnly, limit, offset)
	if clients, ok := args.Get(0).([]domain.Client); ok {
		return clients, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockCatalogRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
