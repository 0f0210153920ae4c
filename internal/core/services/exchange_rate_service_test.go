package services_test

import (
	"context"
	"errors"
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

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.ExchangeRateService
	ctx              context.Context
	onDate           time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencyService := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, currencyService, nil, "USD")
	suite.ctx = context.Background()
	suite.onDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *ExchangeRateServiceTestSuite) approvedRate(base, target string, rate string, date time.Time) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID:     "rate-" + base + "-" + target,
		BaseCurrencyCode:   base,
		TargetCurrencyCode: target,
		Rate:               decimal.RequireFromString(rate),
		Date:               date,
		Status:             domain.RateStatusApproved,
	}
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_SamePair() {
	rate, rateDate, err := suite.service.GetConversionRate(suite.ctx, "USD", "USD", suite.onDate)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.NewFromInt(1)))
	assert.Equal(suite.T(), suite.onDate, rateDate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestApprovedRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_Direct() {
	rateDate := suite.onDate.AddDate(0, 0, -1)
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "USD", "CNY", suite.onDate).
		Return(suite.approvedRate("USD", "CNY", "7.2345", rateDate), nil).Once()

	rate, gotDate, err := suite.service.GetConversionRate(suite.ctx, "USD", "CNY", suite.onDate)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.RequireFromString("7.2345")))
	assert.Equal(suite.T(), rateDate, gotDate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_InverseFallback() {
	rateDate := suite.onDate.AddDate(0, 0, -2)
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "EUR", "USD", suite.onDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "USD", "EUR", suite.onDate).
		Return(suite.approvedRate("USD", "EUR", "0.8", rateDate), nil).Once()

	rate, gotDate, err := suite.service.GetConversionRate(suite.ctx, "EUR", "USD", suite.onDate)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.RequireFromString("1.25")))
	assert.Equal(suite.T(), rateDate, gotDate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_TriangularThroughBase() {
	cnyUsdDate := suite.onDate.AddDate(0, 0, -1)
	usdEurDate := suite.onDate.AddDate(0, 0, -3)

	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "CNY", "EUR", suite.onDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "EUR", "CNY", suite.onDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "CNY", "USD", suite.onDate).
		Return(suite.approvedRate("CNY", "USD", "0.14", cnyUsdDate), nil).Once()
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "USD", "EUR", suite.onDate).
		Return(suite.approvedRate("USD", "EUR", "0.9", usdEurDate), nil).Once()

	rate, gotDate, err := suite.service.GetConversionRate(suite.ctx, "CNY", "EUR", suite.onDate)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.RequireFromString("0.126")))
	// The locked date is the older leg of the triangular path.
	assert.Equal(suite.T(), usdEurDate, gotDate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_NoPath() {
	for _, pair := range [][2]string{{"CNY", "EUR"}, {"EUR", "CNY"}, {"CNY", "USD"}, {"USD", "CNY"}} {
		suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, pair[0], pair[1], suite.onDate).
			Return(nil, apperrors.ErrNotFound).Once()
	}

	_, _, err := suite.service.GetConversionRate(suite.ctx, "CNY", "EUR", suite.onDate)

	require.Error(suite.T(), err)
	var missing *apperrors.MissingExchangeRateError
	require.True(suite.T(), errors.As(err, &missing))
	assert.Equal(suite.T(), "CNY", missing.FromCurrencyCode)
	assert.Equal(suite.T(), "EUR", missing.ToCurrencyCode)
	assert.True(suite.T(), errors.Is(err, apperrors.ErrNotFound))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetConversionRate_RepoErrorPropagates() {
	dbErr := errors.New("connection reset")
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "EUR", "USD", suite.onDate).
		Return(nil, dbErr).Once()

	_, _, err := suite.service.GetConversionRate(suite.ctx, "EUR", "USD", suite.onDate)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, dbErr)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_RoundsHalfUp() {
	rateDate := suite.onDate.AddDate(0, 0, -1)
	suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, "USD", "BRL", suite.onDate).
		Return(suite.approvedRate("USD", "BRL", "0.5", rateDate), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "BRL").
		Return(&domain.Currency{CurrencyCode: "BRL", Symbol: "R$", DecimalPlaces: 2, IsActive: true}, nil).Once()

	result, err := suite.service.ConvertAmount(suite.ctx, "USD", "BRL", 5, suite.onDate)

	require.NoError(suite.T(), err)
	// 5 * 0.5 = 2.5, half up to 3.
	assert.Equal(suite.T(), int64(3), result.ConvertedAmountMinorUnits)
	assert.True(suite.T(), result.Rate.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(suite.T(), "R$0.03", result.ConvertedAmountFormatted)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_MissingRate() {
	for _, pair := range [][2]string{{"GBP", "CHF"}, {"CHF", "GBP"}, {"GBP", "USD"}, {"USD", "GBP"}} {
		suite.mockRateRepo.On("FindLatestApprovedRate", suite.ctx, pair[0], pair[1], suite.onDate).
			Return(nil, apperrors.ErrNotFound).Once()
	}

	result, err := suite.service.ConvertAmount(suite.ctx, "GBP", "CHF", 100000, suite.onDate)

	require.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	var missing *apperrors.MissingExchangeRateError
	assert.True(suite.T(), errors.As(err, &missing))
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RejectsNonPositiveRate() {
	_, err := suite.service.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "CNY",
		Rate:               decimal.Zero,
		Date:               suite.onDate,
	}, "user-1")

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SamePairDateKeepsHistory() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", DecimalPlaces: 2}, nil).Twice()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "CNY").
		Return(&domain.Currency{CurrencyCode: "CNY", DecimalPlaces: 2}, nil).Twice()

	var saved []domain.ExchangeRate
	suite.mockRateRepo.On("SaveExchangeRate", suite.ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(domain.ExchangeRate))
		}).
		Return(nil).Twice()

	first, err := suite.service.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "CNY",
		Rate:               decimal.RequireFromString("7.20"),
		Date:               suite.onDate,
	}, "user-1")
	require.NoError(suite.T(), err)

	second, err := suite.service.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "CNY",
		Rate:               decimal.RequireFromString("7.25"),
		Date:               suite.onDate,
	}, "user-1")
	require.NoError(suite.T(), err)

	// A second rate for the same pair and date is a new history row, never
	// an overwrite of the first.
	require.Len(suite.T(), saved, 2)
	assert.NotEqual(suite.T(), first.ExchangeRateID, second.ExchangeRateID)
	assert.Equal(suite.T(), saved[0].Date, saved[1].Date)
	assert.Equal(suite.T(), domain.RateStatusPending, saved[1].Status)
}

func (suite *ExchangeRateServiceTestSuite) TestReviewExchangeRate_CreatorCannotApprove() {
	pending := suite.approvedRate("USD", "CNY", "7.2", suite.onDate)
	pending.Status = domain.RateStatusPending
	pending.CreatedBy = "user-1"
	suite.mockRateRepo.On("GetExchangeRateByID", suite.ctx, pending.ExchangeRateID).
		Return(pending, nil).Once()

	_, err := suite.service.ReviewExchangeRate(suite.ctx, pending.ExchangeRateID, true, "user-1")

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpdateRateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
