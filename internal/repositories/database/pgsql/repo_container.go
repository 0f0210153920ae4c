package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		OrganizationRepo:  newPgxOrganizationRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		RFQRepo:           newPgxRFQRepository(dbPool),
		SupplierQuoteRepo: newPgxSupplierQuoteRepository(dbPool),
		PurchaseOrderRepo: newPgxPurchaseOrderRepository(dbPool),
		CustomerQuoteRepo: newPgxCustomerQuoteRepository(dbPool),
		ShipmentRepo:      newPgxShipmentRepository(dbPool),
		InvoiceRepo:       newPgxInvoiceRepository(dbPool),
		FinanceRepo:       newPgxFinanceRepository(dbPool),
		CatalogRepo:       newPgxCatalogRepository(dbPool),
	}
}
