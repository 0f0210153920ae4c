package services_test

import (
	"context"
	"math"
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
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
	testRFQID  = "rfq-1"
)

type SupplierQuoteServiceTestSuite struct {
	suite.Suite
	mockQuoteRepo  *MockSupplierQuoteRepository
	mockRFQRepo    *MockRFQRepository
	mockRateReader *MockRateReader
	mockAuthorizer *MockOrganizationAuthorizer
	service        *services.SupplierQuoteService
	ctx            context.Context
}

func (suite *SupplierQuoteServiceTestSuite) SetupTest() {
	suite.mockQuoteRepo = new(MockSupplierQuoteRepository)
	suite.mockRFQRepo = new(MockRFQRepository)
	suite.mockRateReader = new(MockRateReader)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewSupplierQuoteService(suite.mockQuoteRepo, suite.mockRFQRepo, suite.mockRateReader, suite.mockAuthorizer)
	suite.ctx = context.Background()
}

func (suite *SupplierQuoteServiceTestSuite) openRFQ(commissionType domain.CommissionType, commissionPercent string) *domain.RFQ {
	return &domain.RFQ{
		RFQID:             testRFQID,
		OrganizationID:    testOrgID,
		RFQNumber:         "AMA-25-0001",
		ClientName:        "Amazonia Trading",
		ClientCode:        "AMA",
		CurrencyCode:      "USD",
		CommissionType:    commissionType,
		CommissionPercent: decimal.RequireFromString(commissionPercent),
		Status:            domain.RFQOpen,
	}
}

func (suite *SupplierQuoteServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).Return(nil).Once()
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_EmbeddedCommissionSameCurrency() {
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionEmbedded, "10"), nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Shenzhen Electric").
		Return(0, nil).Once()
	suite.mockQuoteRepo.On("SaveSupplierQuote", suite.ctx, mock.AnythingOfType("domain.SupplierQuote"), mock.AnythingOfType("[]domain.SupplierQuoteItem")).
		Return(nil).Once()
	suite.mockRFQRepo.On("UpdateRFQ", suite.ctx, mock.AnythingOfType("domain.RFQ")).
		Return(nil).Once()

	quote, items, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(2), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), quote)
	require.Len(suite.T(), items, 1)

	assert.Equal(suite.T(), "SHE-AMA-25-0001-Rev1", quote.QuoteNumber)
	assert.Equal(suite.T(), 1, quote.Revision)
	assert.Equal(suite.T(), domain.QuoteReceived, quote.Status)

	// Embedded commission inflates the unit price, so 10000 at 10% is 11000.
	assert.Equal(suite.T(), int64(10000), items[0].UnitPriceBeforeCommissionMinorUnits)
	assert.Equal(suite.T(), int64(11000), items[0].UnitPriceAfterCommissionMinorUnits)
	assert.Equal(suite.T(), int64(20000), items[0].TotalPriceBeforeCommissionMinorUnits)
	assert.Equal(suite.T(), int64(22000), items[0].TotalPriceAfterCommissionMinorUnits)

	assert.Equal(suite.T(), int64(20000), quote.TotalBeforeCommissionMinorUnits)
	assert.Equal(suite.T(), int64(22000), quote.TotalAfterCommissionMinorUnits)
	assert.Equal(suite.T(), int64(2000), quote.CommissionAmountMinorUnits)

	// Same-currency quotes still lock a rate of exactly 1.
	require.NotNil(suite.T(), quote.LockedExchangeRate)
	assert.True(suite.T(), quote.LockedExchangeRate.Equal(decimal.NewFromInt(1)))
	require.NotNil(suite.T(), quote.ConvertedTotalMinorUnits)
	assert.Equal(suite.T(), int64(22000), *quote.ConvertedTotalMinorUnits)

	suite.mockRateReader.AssertNotCalled(suite.T(), "GetConversionRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
	suite.mockRFQRepo.AssertExpectations(suite.T())
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_SeparateCommission() {
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionSeparate, "5"), nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Ningbo Plastics").
		Return(1, nil).Once()
	suite.mockQuoteRepo.On("SaveSupplierQuote", suite.ctx, mock.AnythingOfType("domain.SupplierQuote"), mock.AnythingOfType("[]domain.SupplierQuoteItem")).
		Return(nil).Once()
	suite.mockRFQRepo.On("UpdateRFQ", suite.ctx, mock.AnythingOfType("domain.RFQ")).
		Return(nil).Once()

	quote, items, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Ningbo Plastics",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "Housing", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, quote.Revision)
	assert.Equal(suite.T(), "NIN-AMA-25-0001-Rev2", quote.QuoteNumber)

	// Separate commission never touches unit prices; it is added once on the total.
	assert.Equal(suite.T(), int64(10000), items[0].UnitPriceAfterCommissionMinorUnits)
	assert.Equal(suite.T(), int64(10000), quote.TotalBeforeCommissionMinorUnits)
	assert.Equal(suite.T(), int64(500), quote.CommissionAmountMinorUnits)
	assert.Equal(suite.T(), int64(10500), quote.TotalAfterCommissionMinorUnits)
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_CrossCurrencyLocksRate() {
	rateDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionEmbedded, "10"), nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Shenzhen Electric").
		Return(0, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "CNY", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("0.14"), rateDate, nil).Once()

	var savedQuote domain.SupplierQuote
	var savedItems []domain.SupplierQuoteItem
	suite.mockQuoteRepo.On("SaveSupplierQuote", suite.ctx, mock.AnythingOfType("domain.SupplierQuote"), mock.AnythingOfType("[]domain.SupplierQuoteItem")).
		Run(func(args mock.Arguments) {
			savedQuote = args.Get(1).(domain.SupplierQuote)
			savedItems = args.Get(2).([]domain.SupplierQuoteItem)
		}).
		Return(nil).Once()
	suite.mockRFQRepo.On("UpdateRFQ", suite.ctx, mock.AnythingOfType("domain.RFQ")).
		Return(nil).Once()

	quote, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "CNY",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), quote.LockedExchangeRate)
	assert.True(suite.T(), quote.LockedExchangeRate.Equal(decimal.RequireFromString("0.14")))
	require.NotNil(suite.T(), quote.LockedExchangeRateDate)
	assert.Equal(suite.T(), rateDate, *quote.LockedExchangeRateDate)

	// 11000 CNY after commission at 0.14 is 1540 in the RFQ currency.
	require.NotNil(suite.T(), quote.ConvertedTotalMinorUnits)
	assert.Equal(suite.T(), int64(1540), *quote.ConvertedTotalMinorUnits)
	require.Len(suite.T(), savedItems, 1)
	require.NotNil(suite.T(), savedItems[0].ConvertedPriceMinorUnits)
	assert.Equal(suite.T(), int64(1540), *savedItems[0].ConvertedPriceMinorUnits)
	assert.Equal(suite.T(), savedQuote.SupplierQuoteID, savedItems[0].SupplierQuoteID)

	suite.mockRateReader.AssertExpectations(suite.T())
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_MissingRateAborts() {
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionEmbedded, "10"), nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Shenzhen Electric").
		Return(0, nil).Once()
	missingErr := apperrors.NewMissingExchangeRateError("CNY", "USD", time.Now())
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "CNY", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, time.Time{}, missingErr).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "CNY",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, missingErr)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveSupplierQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_RFQNotOpen() {
	closedRFQ := suite.openRFQ(domain.CommissionEmbedded, "10")
	closedRFQ.Status = domain.RFQClosed
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(closedRFQ, nil).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveSupplierQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_NegativeCommissionOverride() {
	negative := decimal.RequireFromString("-2")
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionEmbedded, "10"), nil).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName:      "Shenzhen Electric",
		CurrencyCode:      "USD",
		CommissionPercent: &negative,
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_EmbeddedCommissionOverflowAborts() {
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(suite.openRFQ(domain.CommissionEmbedded, "10"), nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Shenzhen Electric").
		Return(0, nil).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: math.MaxInt64},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveSupplierQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_TracksCheapestTotal() {
	rfq := suite.openRFQ(domain.CommissionEmbedded, "0")
	rfq.TotalAmountMinorUnits = 30000
	suite.expectAuthorized()
	suite.mockRFQRepo.On("FindRFQByID", suite.ctx, testOrgID, testRFQID).
		Return(rfq, nil).Once()
	suite.mockQuoteRepo.On("CountQuotesForSupplierRFQ", suite.ctx, testOrgID, testRFQID, "Ningbo Plastics").
		Return(0, nil).Once()
	suite.mockQuoteRepo.On("SaveSupplierQuote", suite.ctx, mock.AnythingOfType("domain.SupplierQuote"), mock.AnythingOfType("[]domain.SupplierQuoteItem")).
		Return(nil).Once()

	var updatedRFQ domain.RFQ
	suite.mockRFQRepo.On("UpdateRFQ", suite.ctx, mock.AnythingOfType("domain.RFQ")).
		Run(func(args mock.Arguments) {
			updatedRFQ = args.Get(1).(domain.RFQ)
		}).
		Return(nil).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Ningbo Plastics",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "Housing", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 25000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(25000), updatedRFQ.TotalAmountMinorUnits)
	suite.mockRFQRepo.AssertExpectations(suite.T())
}

func (suite *SupplierQuoteServiceTestSuite) TestRegisterSupplierQuote_Unauthorized() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).
		Return(apperrors.ErrForbidden).Once()

	_, _, err := suite.service.RegisterSupplierQuote(suite.ctx, testOrgID, testRFQID, dto.CreateSupplierQuoteRequest{
		SupplierName: "Shenzhen Electric",
		CurrencyCode: "USD",
		Items: []dto.SupplierQuoteItemRequest{
			{ProductName: "LED Panel", Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRFQRepo.AssertNotCalled(suite.T(), "FindRFQByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupplierQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierQuoteServiceTestSuite))
}
