package services_test

import (
	"bytes"
	"context"
	"log/slog"
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

const testPOID = "po-1"

type PurchaseOrderServiceTestSuite struct {
	suite.Suite
	mockPORepo        *MockPurchaseOrderRepository
	mockQuoteRepo     *MockSupplierQuoteRepository
	mockRFQRepo       *MockRFQRepository
	mockRateReader    *MockRateReader
	mockFinanceWriter *MockFinanceWriter
	mockAuthorizer    *MockOrganizationAuthorizer
	service           *services.PurchaseOrderService
	ctx               context.Context
}

func (suite *PurchaseOrderServiceTestSuite) SetupTest() {
	suite.mockPORepo = new(MockPurchaseOrderRepository)
	suite.mockQuoteRepo = new(MockSupplierQuoteRepository)
	suite.mockRFQRepo = new(MockRFQRepository)
	suite.mockRateReader = new(MockRateReader)
	suite.mockFinanceWriter = new(MockFinanceWriter)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewPurchaseOrderService(
		suite.mockPORepo,
		suite.mockQuoteRepo,
		suite.mockRFQRepo,
		suite.mockRateReader,
		suite.mockFinanceWriter,
		suite.mockAuthorizer,
		"USD",
	)
	suite.ctx = context.Background()
}

func (suite *PurchaseOrderServiceTestSuite) draftPO() *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		PurchaseOrderID:       testPOID,
		OrganizationID:        testOrgID,
		PONumber:              "PO-202503-0007",
		Revision:              1,
		SupplierName:          "Shenzhen Electric",
		CurrencyCode:          "CNY",
		Status:                domain.PODraft,
		SubtotalMinorUnits:    100000,
		TotalAmountMinorUnits: 100000,
	}
}

func (suite *PurchaseOrderServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).Return(nil).Once()
}

func (suite *PurchaseOrderServiceTestSuite) TestUpdatePurchaseOrder_RejectsFinalized() {
	sent := suite.draftPO()
	sent.Status = domain.POSent
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(sent, nil).Once()

	notes := "updated"
	_, _, err := suite.service.UpdatePurchaseOrder(suite.ctx, testOrgID, testPOID, dto.UpdatePurchaseOrderRequest{Notes: &notes}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDocumentFinalized)
	suite.mockPORepo.AssertNotCalled(suite.T(), "UpdatePurchaseOrder", mock.Anything, mock.Anything)
	suite.mockPORepo.AssertNotCalled(suite.T(), "ReplacePurchaseOrderItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestUpdatePurchaseOrder_RecalculatesTotals() {
	po := suite.draftPO()
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderItems", suite.ctx, testPOID).
		Return([]domain.PurchaseOrderItem{
			{PurchaseOrderItemID: "item-1", PurchaseOrderID: testPOID, ProductName: "LED Panel", Quantity: decimal.NewFromInt(10), UnitPriceMinorUnits: 10000, TotalMinorUnits: 100000},
		}, nil).Once()

	var updated domain.PurchaseOrder
	suite.mockPORepo.On("UpdatePurchaseOrder", suite.ctx, mock.AnythingOfType("domain.PurchaseOrder")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.PurchaseOrder)
		}).
		Return(nil).Once()

	shipping := int64(5000)
	tax := int64(2000)
	_, _, err := suite.service.UpdatePurchaseOrder(suite.ctx, testOrgID, testPOID, dto.UpdatePurchaseOrderRequest{
		ShippingCostMinorUnits: &shipping,
		TaxAmountMinorUnits:    &tax,
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100000), updated.SubtotalMinorUnits)
	assert.Equal(suite.T(), int64(107000), updated.TotalAmountMinorUnits)
	suite.mockPORepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestSendPurchaseOrder_LocksRateAndFreezesTotal() {
	po := suite.draftPO()
	rateDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "CNY", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("0.1382"), rateDate, nil).Once()

	var updated domain.PurchaseOrder
	suite.mockPORepo.On("UpdatePurchaseOrder", suite.ctx, mock.AnythingOfType("domain.PurchaseOrder")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.PurchaseOrder)
		}).
		Return(nil).Once()

	sent, err := suite.service.SendPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.POSent, sent.Status)
	require.NotNil(suite.T(), sent.SentAt)
	require.NotNil(suite.T(), sent.LockedExchangeRate)
	assert.True(suite.T(), sent.LockedExchangeRate.Equal(decimal.RequireFromString("0.1382")))
	require.NotNil(suite.T(), sent.LockedExchangeRateDate)
	assert.Equal(suite.T(), rateDate, *sent.LockedExchangeRateDate)
	require.NotNil(suite.T(), updated.TotalBaseCurrencyMinorUnits)
	assert.Equal(suite.T(), int64(13820), *updated.TotalBaseCurrencyMinorUnits)
	suite.mockRateReader.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestSendPurchaseOrder_RejectsAlreadySent() {
	sent := suite.draftPO()
	sent.Status = domain.POSent
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(sent, nil).Once()

	_, err := suite.service.SendPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDocumentFinalized)
	suite.mockRateReader.AssertNotCalled(suite.T(), "GetConversionRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestSendPurchaseOrder_MissingRateAborts() {
	po := suite.draftPO()
	missingErr := apperrors.NewMissingExchangeRateError("CNY", "USD", time.Now())
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "CNY", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, time.Time{}, missingErr).Once()

	_, err := suite.service.SendPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, missingErr)
	suite.mockPORepo.AssertNotCalled(suite.T(), "UpdatePurchaseOrder", mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestConfirmPurchaseOrder_OpensPayable() {
	due := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	sent := suite.draftPO()
	sent.Status = domain.POSent
	sent.ExpectedDeliveryDate = &due
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(sent, nil).Once()
	suite.mockPORepo.On("UpdatePurchaseOrder", suite.ctx, mock.AnythingOfType("domain.PurchaseOrder")).
		Return(nil).Once()

	var txnReq dto.CreateTransactionRequest
	suite.mockFinanceWriter.On("CreateTransaction", suite.ctx, testOrgID, mock.AnythingOfType("dto.CreateTransactionRequest"), testUserID).
		Run(func(args mock.Arguments) {
			txnReq = args.Get(2).(dto.CreateTransactionRequest)
		}).
		Return(&domain.FinancialTransaction{TransactionID: "txn-1"}, nil).Once()

	confirmed, err := suite.service.ConfirmPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.POConfirmed, confirmed.Status)
	require.NotNil(suite.T(), confirmed.ConfirmedAt)

	assert.Equal(suite.T(), string(domain.Payable), txnReq.Kind)
	assert.Equal(suite.T(), "purchase_order", txnReq.DocumentType)
	assert.Equal(suite.T(), testPOID, txnReq.DocumentID)
	assert.Equal(suite.T(), "CNY", txnReq.CurrencyCode)
	assert.Equal(suite.T(), int64(100000), txnReq.AmountMinorUnits)
	assert.Equal(suite.T(), "Shenzhen Electric", txnReq.CounterpartyName)
	require.NotNil(suite.T(), txnReq.DueDate)
	assert.Equal(suite.T(), due, *txnReq.DueDate)
	suite.mockFinanceWriter.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestConfirmPurchaseOrder_RequiresSentState() {
	po := suite.draftPO()
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()

	_, err := suite.service.ConfirmPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceWriter.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestCancelPurchaseOrder_RejectsConfirmed() {
	confirmed := suite.draftPO()
	confirmed.Status = domain.POConfirmed
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(confirmed, nil).Once()

	_, err := suite.service.CancelPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPORepo.AssertNotCalled(suite.T(), "UpdatePurchaseOrder", mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestReviseFinalizedPurchaseOrder_ClonesFreshDraft() {
	lockedRate := decimal.RequireFromString("0.1382")
	lockedDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	sentAt := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	totalBase := int64(13820)

	original := suite.draftPO()
	original.Status = domain.POSent
	original.LockedExchangeRate = &lockedRate
	original.LockedExchangeRateDate = &lockedDate
	original.TotalBaseCurrencyMinorUnits = &totalBase
	original.SentAt = &sentAt

	originalItems := []domain.PurchaseOrderItem{
		{PurchaseOrderItemID: "item-1", PurchaseOrderID: testPOID, ProductName: "LED Panel", Quantity: decimal.NewFromInt(10), UnitPriceMinorUnits: 10000, TotalMinorUnits: 100000},
	}

	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(original, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderItems", suite.ctx, testPOID).
		Return(originalItems, nil).Once()
	suite.mockPORepo.On("SavePurchaseOrder", suite.ctx, mock.AnythingOfType("domain.PurchaseOrder"), mock.AnythingOfType("[]domain.PurchaseOrderItem")).
		Return(nil).Once()

	revised, items, err := suite.service.ReviseFinalizedPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), testPOID, revised.PurchaseOrderID)
	assert.Equal(suite.T(), 2, revised.Revision)
	assert.Equal(suite.T(), domain.PODraft, revised.Status)
	assert.Nil(suite.T(), revised.LockedExchangeRate)
	assert.Nil(suite.T(), revised.LockedExchangeRateDate)
	assert.Nil(suite.T(), revised.TotalBaseCurrencyMinorUnits)
	assert.Nil(suite.T(), revised.SentAt)
	assert.Nil(suite.T(), revised.ConfirmedAt)

	// Money fields carry over untouched.
	assert.Equal(suite.T(), int64(100000), revised.TotalAmountMinorUnits)
	require.Len(suite.T(), items, 1)
	assert.NotEqual(suite.T(), "item-1", items[0].PurchaseOrderItemID)
	assert.Equal(suite.T(), revised.PurchaseOrderID, items[0].PurchaseOrderID)
	assert.Equal(suite.T(), int64(100000), items[0].TotalMinorUnits)
	suite.mockPORepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestReviseFinalizedPurchaseOrder_RejectsDraft() {
	po := suite.draftPO()
	suite.expectAuthorized()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()

	_, _, err := suite.service.ReviseFinalizedPurchaseOrder(suite.ctx, testOrgID, testPOID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPORepo.AssertNotCalled(suite.T(), "SavePurchaseOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestCreateFromSupplierQuote_RequiresSelectedQuote() {
	quote := &domain.SupplierQuote{
		SupplierQuoteID: "quote-1",
		OrganizationID:  testOrgID,
		RFQID:           testRFQID,
		SupplierName:    "Shenzhen Electric",
		QuoteNumber:     "SHE-AMA-25-0001-Rev1",
		CurrencyCode:    "CNY",
		Status:          domain.QuoteReceived,
	}
	suite.expectAuthorized()
	suite.mockQuoteRepo.On("FindSupplierQuoteByID", suite.ctx, testOrgID, "quote-1").
		Return(quote, nil).Once()

	_, _, err := suite.service.CreateFromSupplierQuote(suite.ctx, testOrgID, "quote-1", testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPORepo.AssertNotCalled(suite.T(), "SavePurchaseOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseOrderServiceTestSuite) TestGetPurchaseOrderByID_WarnsWhenTotalDrifts() {
	var logged bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logged, nil)))
	defer slog.SetDefault(previous)

	po := suite.draftPO()
	po.TotalAmountMinorUnits = 100250
	items := []domain.PurchaseOrderItem{
		{
			PurchaseOrderItemID: "poi-1",
			PurchaseOrderID:     testPOID,
			ProductName:         "Brushless Motor",
			Quantity:            decimal.NewFromInt(2),
			UnitPriceMinorUnits: 50000,
			TotalMinorUnits:     100000,
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserForOrganization", suite.ctx, testUserID, testOrgID).
		Return(domain.RoleMember, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderItems", suite.ctx, testPOID).
		Return(items, nil).Once()

	got, gotItems, err := suite.service.GetPurchaseOrderByID(suite.ctx, testOrgID, testPOID, testUserID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), gotItems, 1)
	assert.Equal(suite.T(), int64(100250), got.TotalAmountMinorUnits, "persisted total stays authoritative")
	assert.Contains(suite.T(), logged.String(), "Purchase order total drifted from recomputed value")
	assert.Contains(suite.T(), logged.String(), "recomputed_total=100000")
	suite.mockPORepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestGetPurchaseOrderByID_QuietWithinTolerance() {
	var logged bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logged, nil)))
	defer slog.SetDefault(previous)

	po := suite.draftPO()
	po.TotalAmountMinorUnits = 100001
	items := []domain.PurchaseOrderItem{
		{
			PurchaseOrderItemID: "poi-1",
			PurchaseOrderID:     testPOID,
			ProductName:         "Brushless Motor",
			Quantity:            decimal.NewFromInt(2),
			UnitPriceMinorUnits: 50000,
			TotalMinorUnits:     100000,
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserForOrganization", suite.ctx, testUserID, testOrgID).
		Return(domain.RoleMember, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", suite.ctx, testOrgID, testPOID).
		Return(po, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderItems", suite.ctx, testPOID).
		Return(items, nil).Once()

	_, _, err := suite.service.GetPurchaseOrderByID(suite.ctx, testOrgID, testPOID, testUserID)

	require.NoError(suite.T(), err)
	assert.NotContains(suite.T(), logged.String(), "drifted")
}

func TestPurchaseOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseOrderServiceTestSuite))
}
