package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/services"
)

type RFQServiceTestSuite struct {
	suite.Suite
	mockRFQRepo      *MockRFQRepository
	mockQuoteRepo    *MockSupplierQuoteRepository
	mockCQReader     *MockCustomerQuoteReader
	mockPORepo       *MockPurchaseOrderRepository
	mockShipmentRepo *MockShipmentReader
	mockRateReader   *MockRateReader
	mockAuthorizer   *MockOrganizationAuthorizer
	service          *services.RFQService
	ctx              context.Context
}

func (suite *RFQServiceTestSuite) SetupTest() {
	suite.mockRFQRepo = new(MockRFQRepository)
	suite.mockQuoteRepo = new(MockSupplierQuoteRepository)
	suite.mockCQReader = new(MockCustomerQuoteReader)
	suite.mockPORepo = new(MockPurchaseOrderRepository)
	suite.mockShipmentRepo = new(MockShipmentReader)
	suite.mockRateReader = new(MockRateReader)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewRFQService(
		suite.mockRFQRepo,
		suite.mockQuoteRepo,
		suite.mockCQReader,
		suite.mockPORepo,
		suite.mockShipmentRepo,
		suite.mockRateReader,
		suite.mockAuthorizer,
		"USD",
	)
	suite.ctx = context.Background()
}

func (suite *RFQServiceTestSuite) expectRead() {
	suite.mockAuthorizer.On("AuthorizeUserForOrganization", suite.ctx, testUserID, testOrgID).
		Return(domain.RoleMember, nil).Once()
}

func (suite *RFQServiceTestSuite) closedRFQ() *domain.RFQ {
	return &domain.RFQ{
		RFQID:          testRFQID,
		OrganizationID: testOrgID,
		RFQNumber:      "AMA-25-0001",
		ClientName:     "Amazonia Trading",
		ClientCode:     "AMA",
		CurrencyCode:   "USD",
		Status:         domain.RFQClosed,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (suite *RFQServiceTestSuite) expectWrite() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).Return(nil).Once()
}

func (suite *RFQServiceTestSuite) openRFQ() *domain.RFQ {
	rfq := suite.closedRFQ()
	rfq.Status = domain.RFQOpen
	return rfq
}

func receivedQuote(id string, convertedTotal int64) domain.SupplierQuote {
	return domain.SupplierQuote{
		SupplierQuoteID:          id,
		OrganizationID:           testOrgID,
		RFQID:                    testRFQID,
		QuoteNumber:              "SHE-AMA-25-0001-Rev1",
		Status:                   domain.QuoteReceived,
		ConvertedTotalMinorUnits: int64Ptr(convertedTotal),
	}
}

func (suite *RFQServiceTestSuite) TestSelectQuote_ClosesRFQAndRejectsOthers() {
	suite.expectWrite()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(), nil).Once()
	suite.mockQuoteRepo.On("ListSupplierQuotesByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.SupplierQuote{receivedQuote("sq-1", 25000), receivedQuote("sq-2", 30000)}, nil).Once()

	var updatedStatuses []domain.SupplierQuoteStatus
	suite.mockQuoteRepo.On("UpdateSupplierQuote", suite.ctx, mock.AnythingOfType("domain.SupplierQuote")).
		Run(func(args mock.Arguments) {
			updatedStatuses = append(updatedStatuses, args.Get(1).(domain.SupplierQuote).Status)
		}).
		Return(nil).Twice()

	var savedRFQ domain.RFQ
	suite.mockRFQRepo.On("UpdateRFQ", suite.ctx, mock.AnythingOfType("domain.RFQ")).
		Run(func(args mock.Arguments) {
			savedRFQ = args.Get(1).(domain.RFQ)
		}).
		Return(nil).Once()

	rfq, err := suite.service.SelectQuote(suite.ctx, testOrgID, testRFQID, "sq-1", testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []domain.SupplierQuoteStatus{domain.QuoteSelected, domain.QuoteRejected}, updatedStatuses)
	assert.Equal(suite.T(), domain.RFQClosed, savedRFQ.Status)
	require.NotNil(suite.T(), savedRFQ.SelectedQuoteID)
	assert.Equal(suite.T(), "sq-1", *savedRFQ.SelectedQuoteID)
	assert.Equal(suite.T(), int64(25000), savedRFQ.TotalAmountMinorUnits)
	assert.Equal(suite.T(), domain.RFQClosed, rfq.Status)
}

func (suite *RFQServiceTestSuite) TestSelectQuote_UnknownQuoteLeavesQuotesUntouched() {
	suite.expectWrite()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(), nil).Once()
	suite.mockQuoteRepo.On("ListSupplierQuotesByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.SupplierQuote{receivedQuote("sq-1", 25000), receivedQuote("sq-2", 30000)}, nil).Once()

	rfq, err := suite.service.SelectQuote(suite.ctx, testOrgID, testRFQID, "sq-missing", testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	assert.Nil(suite.T(), rfq)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "UpdateSupplierQuote", mock.Anything, mock.Anything)
	suite.mockRFQRepo.AssertNotCalled(suite.T(), "UpdateRFQ", mock.Anything, mock.Anything)
}

func (suite *RFQServiceTestSuite) TestSelectQuote_ExpiredQuoteLeavesQuotesUntouched() {
	expired := receivedQuote("sq-1", 25000)
	past := time.Now().Add(-24 * time.Hour)
	expired.ValidUntil = &past

	suite.expectWrite()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(), nil).Once()
	suite.mockQuoteRepo.On("ListSupplierQuotesByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.SupplierQuote{expired, receivedQuote("sq-2", 30000)}, nil).Once()

	rfq, err := suite.service.SelectQuote(suite.ctx, testOrgID, testRFQID, "sq-1", testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Nil(suite.T(), rfq)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "UpdateSupplierQuote", mock.Anything, mock.Anything)
	suite.mockRFQRepo.AssertNotCalled(suite.T(), "UpdateRFQ", mock.Anything, mock.Anything)
}

func (suite *RFQServiceTestSuite) TestGetRFQMargin_UsesLockedBaseAmounts() {
	suite.expectRead()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.closedRFQ(), nil).Once()
	suite.mockCQReader.On("FindApprovedCustomerQuoteByRFQ", suite.ctx, testOrgID, testRFQID).
		Return(&domain.CustomerQuote{
			QuoteNumber:                 "CQ-2025-0001",
			CurrencyCode:                "EUR",
			TotalAmountMinorUnits:       60000,
			TotalBaseCurrencyMinorUnits: int64Ptr(66000),
		}, nil).Once()
	suite.mockPORepo.On("ListPurchaseOrdersByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.PurchaseOrder{
			{
				PONumber:                    "PO-202503-0001",
				Status:                      domain.POConfirmed,
				CurrencyCode:                "CNY",
				TotalAmountMinorUnits:       200000,
				TotalBaseCurrencyMinorUnits: int64Ptr(28000),
			},
		}, nil).Once()
	suite.mockShipmentRepo.On("ListShipmentsByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.Shipment{
			{
				ShipmentNumber:             "SHP-2025-0001",
				CurrencyCode:               "CNY",
				TotalCostMinorUnits:        10000,
				TotalCostBaseCurrencyMinor: int64Ptr(1400),
			},
		}, nil).Once()

	margin, err := suite.service.GetRFQMargin(suite.ctx, testOrgID, testRFQID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "USD", margin.BaseCurrencyCode)
	assert.Equal(suite.T(), int64(66000), margin.RevenueMinorUnits)
	assert.Equal(suite.T(), int64(28000), margin.PurchaseCostsMinorUnits)
	assert.Equal(suite.T(), int64(1400), margin.ProjectExpensesMinorUnits)
	assert.Equal(suite.T(), int64(36600), margin.MarginMinorUnits)
	assert.Equal(suite.T(), "55.45", margin.MarginPercent.String())
	assert.True(suite.T(), margin.HasApprovedCustomerQuote)
	suite.mockRateReader.AssertNotCalled(suite.T(), "GetConversionRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RFQServiceTestSuite) TestGetRFQMargin_ConvertsUnlockedAmounts() {
	suite.expectRead()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.closedRFQ(), nil).Once()
	suite.mockCQReader.On("FindApprovedCustomerQuoteByRFQ", suite.ctx, testOrgID, testRFQID).
		Return(&domain.CustomerQuote{
			QuoteNumber:           "CQ-2025-0002",
			CurrencyCode:          "EUR",
			TotalAmountMinorUnits: 10000,
		}, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "EUR", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("1.1"), time.Now(), nil).Once()
	suite.mockPORepo.On("ListPurchaseOrdersByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.PurchaseOrder{
			{
				PONumber:              "PO-202503-0002",
				Status:                domain.POSent,
				CurrencyCode:          "USD",
				TotalAmountMinorUnits: 5000,
			},
		}, nil).Once()
	suite.mockShipmentRepo.On("ListShipmentsByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.Shipment{}, nil).Once()

	margin, err := suite.service.GetRFQMargin(suite.ctx, testOrgID, testRFQID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(11000), margin.RevenueMinorUnits)
	assert.Equal(suite.T(), int64(5000), margin.PurchaseCostsMinorUnits)
	assert.Equal(suite.T(), int64(6000), margin.MarginMinorUnits)
	assert.Equal(suite.T(), "54.55", margin.MarginPercent.String())
}

func (suite *RFQServiceTestSuite) TestGetRFQMargin_NoApprovedCustomerQuote() {
	suite.expectRead()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.closedRFQ(), nil).Once()
	suite.mockCQReader.On("FindApprovedCustomerQuoteByRFQ", suite.ctx, testOrgID, testRFQID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPORepo.On("ListPurchaseOrdersByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.PurchaseOrder{
			{
				PONumber:              "PO-202503-0003",
				Status:                domain.POConfirmed,
				CurrencyCode:          "USD",
				TotalAmountMinorUnits: 25000,
			},
		}, nil).Once()
	suite.mockShipmentRepo.On("ListShipmentsByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.Shipment{}, nil).Once()

	margin, err := suite.service.GetRFQMargin(suite.ctx, testOrgID, testRFQID, testUserID)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), margin.HasApprovedCustomerQuote)
	assert.Equal(suite.T(), int64(0), margin.RevenueMinorUnits)
	assert.Equal(suite.T(), int64(-25000), margin.MarginMinorUnits)
	assert.True(suite.T(), margin.MarginPercent.IsZero())
}

func (suite *RFQServiceTestSuite) TestGetRFQMargin_SkipsCancelledPurchaseOrders() {
	suite.expectRead()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.closedRFQ(), nil).Once()
	suite.mockCQReader.On("FindApprovedCustomerQuoteByRFQ", suite.ctx, testOrgID, testRFQID).
		Return(&domain.CustomerQuote{
			QuoteNumber:                 "CQ-2025-0003",
			CurrencyCode:                "USD",
			TotalAmountMinorUnits:       50000,
			TotalBaseCurrencyMinorUnits: int64Ptr(50000),
		}, nil).Once()
	suite.mockPORepo.On("ListPurchaseOrdersByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.PurchaseOrder{
			{
				PONumber:                    "PO-202503-0004",
				Status:                      domain.POConfirmed,
				CurrencyCode:                "USD",
				TotalAmountMinorUnits:       20000,
				TotalBaseCurrencyMinorUnits: int64Ptr(20000),
			},
			{
				PONumber:              "PO-202503-0005",
				Status:                domain.POCancelled,
				CurrencyCode:          "USD",
				TotalAmountMinorUnits: 99999,
			},
		}, nil).Once()
	suite.mockShipmentRepo.On("ListShipmentsByRFQ", suite.ctx, testOrgID, testRFQID).
		Return([]domain.Shipment{}, nil).Once()

	margin, err := suite.service.GetRFQMargin(suite.ctx, testOrgID, testRFQID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(20000), margin.PurchaseCostsMinorUnits)
	assert.Equal(suite.T(), int64(30000), margin.MarginMinorUnits)
}

func (suite *RFQServiceTestSuite) TestGetRFQMargin_MissingRateAborts() {
	missingErr := apperrors.NewMissingExchangeRateError("EUR", "USD", time.Now())
	suite.expectRead()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.closedRFQ(), nil).Once()
	suite.mockCQReader.On("FindApprovedCustomerQuoteByRFQ", suite.ctx, testOrgID, testRFQID).
		Return(&domain.CustomerQuote{
			QuoteNumber:           "CQ-2025-0004",
			CurrencyCode:          "EUR",
			TotalAmountMinorUnits: 10000,
		}, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "EUR", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, time.Time{}, missingErr).Once()

	margin, err := suite.service.GetRFQMargin(suite.ctx, testOrgID, testRFQID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, missingErr)
	assert.Nil(suite.T(), margin)
	suite.mockPORepo.AssertNotCalled(suite.T(), "ListPurchaseOrdersByRFQ", mock.Anything, mock.Anything, mock.Anything)
}

func TestRFQServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RFQServiceTestSuite))
}
