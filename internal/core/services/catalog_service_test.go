package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

const testProductID = "prod-1"

type CatalogServiceTestSuite struct {
	suite.Suite
	mockCatalogRepo  *MockCatalogRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockAuthorizer   *MockOrganizationAuthorizer
	service          *services.CatalogService
	ctx              context.Context
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewCatalogService(suite.mockCatalogRepo, suite.mockCurrencyRepo, suite.mockAuthorizer)
	suite.ctx = context.Background()
}

func (suite *CatalogServiceTestSuite) expectWrite() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).Return(nil).Once()
}

func (suite *CatalogServiceTestSuite) expectRead() {
	suite.mockAuthorizer.On("AuthorizeUserForOrganization", suite.ctx, testUserID, testOrgID).
		Return(domain.RoleMember, nil).Once()
}

func (suite *CatalogServiceTestSuite) catalogProduct() *domain.Product {
	return &domain.Product{
		ProductID:          testProductID,
		OrganizationID:     testOrgID,
		SKU:                "MOT-BL-2838",
		Name:               "Brushless Motor 2838",
		CurrencyCode:       "CNY",
		UnitCostMinorUnits: 50000,
		IsActive:           true,
	}
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_Success() {
	suite.expectWrite()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "CNY").
		Return(&domain.Currency{CurrencyCode: "CNY", DecimalPlaces: 2}, nil).Once()

	var saved domain.Product
	suite.mockCatalogRepo.On("SaveProduct", suite.ctx, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Product)
		}).Return(nil).Once()

	product, err := suite.service.CreateProduct(suite.ctx, testOrgID, dto.CreateProductRequest{
		SKU:                "MOT-BL-2838",
		Name:               "Brushless Motor 2838",
		HSCode:             "850110",
		OriginCountry:      "CN",
		MOQ:                500,
		CurrencyCode:       "CNY",
		UnitCostMinorUnits: 50000,
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "MOT-BL-2838", saved.SKU)
	assert.True(suite.T(), saved.IsActive)
	assert.Equal(suite.T(), int64(50000), product.UnitCostMinorUnits)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_UnknownCurrency() {
	suite.expectWrite()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", suite.ctx, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateProduct(suite.ctx, testOrgID, dto.CreateProductRequest{
		SKU:          "MOT-BL-2838",
		Name:         "Brushless Motor 2838",
		CurrencyCode: "XXX",
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_CostChangeRecordsHistory() {
	suite.expectWrite()
	suite.mockCatalogRepo.On("FindProductByID", suite.ctx, testOrgID, testProductID).
		Return(suite.catalogProduct(), nil).Once()

	var entry domain.ProductCostEntry
	suite.mockCatalogRepo.On("SaveProductCostEntry", suite.ctx, mock.AnythingOfType("domain.ProductCostEntry")).
		Run(func(args mock.Arguments) {
			entry = args.Get(1).(domain.ProductCostEntry)
		}).Return(nil).Once()

	var updated domain.Product
	suite.mockCatalogRepo.On("UpdateProduct", suite.ctx, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Product)
		}).Return(nil).Once()

	newCost := int64(60000)
	product, err := suite.service.UpdateProduct(suite.ctx, testOrgID, testProductID, dto.UpdateProductRequest{
		UnitCostMinorUnits: &newCost,
		CostChangeReason:   "supplier price increase",
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(50000), entry.OldCostMinorUnits)
	assert.Equal(suite.T(), int64(60000), entry.NewCostMinorUnits)
	assert.Equal(suite.T(), int64(10000), entry.DifferenceMinorUnits)
	assert.Equal(suite.T(), "20", entry.PercentChange.String())
	assert.Equal(suite.T(), "supplier price increase", entry.Reason)
	assert.Equal(suite.T(), testUserID, entry.ChangedBy)
	assert.Equal(suite.T(), int64(60000), updated.UnitCostMinorUnits)
	assert.Equal(suite.T(), int64(60000), product.UnitCostMinorUnits)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_UnchangedCostSkipsHistory() {
	suite.expectWrite()
	suite.mockCatalogRepo.On("FindProductByID", suite.ctx, testOrgID, testProductID).
		Return(suite.catalogProduct(), nil).Once()
	suite.mockCatalogRepo.On("UpdateProduct", suite.ctx, mock.AnythingOfType("domain.Product")).
		Return(nil).Once()

	name := "Brushless Motor 2838 v2"
	sameCost := int64(50000)
	_, err := suite.service.UpdateProduct(suite.ctx, testOrgID, testProductID, dto.UpdateProductRequest{
		Name:               &name,
		UnitCostMinorUnits: &sameCost,
	}, testUserID)

	require.NoError(suite.T(), err)
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "SaveProductCostEntry", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestGetProductCostHistory_UnknownProduct() {
	suite.expectRead()
	suite.mockCatalogRepo.On("FindProductByID", suite.ctx, testOrgID, "prod-other").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetProductCostHistory(suite.ctx, testOrgID, "prod-other", testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "ListProductCostHistory", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestCreateClient_DerivesCodeFromName() {
	suite.expectWrite()

	var saved domain.Client
	suite.mockCatalogRepo.On("SaveClient", suite.ctx, mock.AnythingOfType("domain.Client")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Client)
		}).Return(nil).Once()

	client, err := suite.service.CreateClient(suite.ctx, testOrgID, dto.CreateClientRequest{
		Name:    "Amazon Inc",
		Country: "US",
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "AMAZO", saved.Code)
	assert.True(suite.T(), saved.IsActive)
	assert.Equal(suite.T(), "AMAZO", client.Code)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateClient_ExplicitCodeKept() {
	suite.expectWrite()
	suite.mockCatalogRepo.On("SaveClient", suite.ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.Code == "AMA"
	})).Return(nil).Once()

	client, err := suite.service.CreateClient(suite.ctx, testOrgID, dto.CreateClientRequest{
		Code: "AMA",
		Name: "Amazon Inc",
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "AMA", client.Code)
}

func (suite *CatalogServiceTestSuite) TestCreateClient_DuplicateCode() {
	suite.expectWrite()
	suite.mockCatalogRepo.On("SaveClient", suite.ctx, mock.AnythingOfType("domain.Client")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateClient(suite.ctx, testOrgID, dto.CreateClientRequest{
		Name: "Amazon Inc",
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *CatalogServiceTestSuite) TestUpdateClient_TogglesActive() {
	suite.expectWrite()
	existing := &domain.Client{
		ClientID:       "client-1",
		OrganizationID: testOrgID,
		Code:           "AMAZO",
		Name:           "Amazon Inc",
		IsActive:       true,
	}
	suite.mockCatalogRepo.On("FindClientByID", suite.ctx, testOrgID, "client-1").
		Return(existing, nil).Once()

	var updated domain.Client
	suite.mockCatalogRepo.On("UpdateClient", suite.ctx, mock.AnythingOfType("domain.Client")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Client)
		}).Return(nil).Once()

	inactive := false
	client, err := suite.service.UpdateClient(suite.ctx, testOrgID, "client-1", dto.UpdateClientRequest{
		IsActive: &inactive,
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), updated.IsActive)
	assert.Equal(suite.T(), "AMAZO", client.Code, "code stays fixed")
	assert.Equal(suite.T(), testUserID, updated.LastUpdatedBy)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
