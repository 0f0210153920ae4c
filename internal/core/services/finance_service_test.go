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
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

const testTxnID = "txn-1"

type FinanceServiceTestSuite struct {
	suite.Suite
	mockFinanceRepo *MockFinanceRepository
	mockRateReader  *MockRateReader
	mockAuthorizer  *MockOrganizationAuthorizer
	service         *services.FinanceService
	ctx             context.Context
}

func (suite *FinanceServiceTestSuite) SetupTest() {
	suite.mockFinanceRepo = new(MockFinanceRepository)
	suite.mockRateReader = new(MockRateReader)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewFinanceService(suite.mockFinanceRepo, suite.mockRateReader, suite.mockAuthorizer, "USD")
	suite.ctx = context.Background()
}

func (suite *FinanceServiceTestSuite) pendingTransaction(amountMinorUnits int64) *domain.FinancialTransaction {
	return &domain.FinancialTransaction{
		TransactionID:     testTxnID,
		OrganizationID:    testOrgID,
		TransactionNumber: "FT-2025-0001",
		Kind:              domain.Payable,
		CounterpartyName:  "Shenzhen Electric",
		CurrencyCode:      "USD",
		AmountMinorUnits:  amountMinorUnits,
		Status:            domain.TxnPending,
	}
}

func (suite *FinanceServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeUserCanWrite", suite.ctx, testUserID, testOrgID).Return(nil).Once()
}

func (suite *FinanceServiceTestSuite) TestCreateTransaction_FixesBaseAmount() {
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("CountTransactionsForYear", suite.ctx, testOrgID, time.Now().Year()).
		Return(4, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "EUR", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("1.08"), time.Now(), nil).Once()

	var saved domain.FinancialTransaction
	suite.mockFinanceRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.FinancialTransaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.FinancialTransaction)
		}).
		Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testOrgID, dto.CreateTransactionRequest{
		Kind:             "RECEIVABLE",
		Description:      "Commercial invoice INV-COM-2025-0001",
		CounterpartyName: "Amazonia Trading",
		CurrencyCode:     "EUR",
		AmountMinorUnits: 10000,
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Receivable, txn.Kind)
	assert.Equal(suite.T(), domain.TxnPending, txn.Status)
	assert.Equal(suite.T(), int64(10000), txn.AmountMinorUnits)
	// 10000 EUR minor units at 1.08 is 10800 base minor units, fixed at creation.
	assert.Equal(suite.T(), int64(10800), txn.AmountBaseCurrencyMinorUnits)
	require.NotNil(suite.T(), txn.LockedExchangeRate)
	assert.True(suite.T(), txn.LockedExchangeRate.Equal(decimal.RequireFromString("1.08")))
	assert.Equal(suite.T(), saved.TransactionNumber, txn.TransactionNumber)
	assert.Contains(suite.T(), txn.TransactionNumber, "FT-")
	suite.mockFinanceRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	suite.expectAuthorized()

	_, err := suite.service.CreateTransaction(suite.ctx, testOrgID, dto.CreateTransactionRequest{
		Kind:             "PAYABLE",
		Description:      "Bad amount",
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 0,
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestCreateTransaction_MissingRateAborts() {
	missingErr := apperrors.NewMissingExchangeRateError("BRL", "USD", time.Now())
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("CountTransactionsForYear", suite.ctx, testOrgID, time.Now().Year()).
		Return(0, nil).Once()
	suite.mockRateReader.On("GetConversionRate", suite.ctx, "BRL", "USD", mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, time.Time{}, missingErr).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, testOrgID, dto.CreateTransactionRequest{
		Kind:             "PAYABLE",
		Description:      "Freight",
		CounterpartyName: "Atlantico Cargo",
		CurrencyCode:     "BRL",
		AmountMinorUnits: 50000,
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, missingErr)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestRecordPayment_PartialAllocation() {
	txn := suite.pendingTransaction(10000)
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(txn, nil).Once()
	suite.mockFinanceRepo.On("CountPaymentsForYear", suite.ctx, testOrgID, time.Now().Year()).
		Return(0, nil).Once()

	var savedAllocations []domain.PaymentAllocation
	suite.mockFinanceRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.FinancialPayment"), mock.AnythingOfType("[]domain.PaymentAllocation")).
		Run(func(args mock.Arguments) {
			savedAllocations = args.Get(2).([]domain.PaymentAllocation)
		}).
		Return(nil).Once()
	suite.mockFinanceRepo.On("ListAllocationsByTransaction", suite.ctx, testTxnID).
		Return([]domain.PaymentAllocation{
			{AllocationID: "alloc-1", TransactionID: testTxnID, AmountMinorUnits: 4000},
		}, nil).Once()

	var updated domain.FinancialTransaction
	suite.mockFinanceRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.FinancialTransaction")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.FinancialTransaction)
		}).
		Return(nil).Once()

	payment, allocations, err := suite.service.RecordPayment(suite.ctx, testOrgID, dto.CreatePaymentRequest{
		Direction:        "DEBIT",
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 4000,
		PaymentDate:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Allocations: []dto.PaymentAllocationRequest{
			{TransactionID: testTxnID, AmountMinorUnits: 4000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), payment)
	assert.Contains(suite.T(), payment.PaymentNumber, "FP-")
	require.Len(suite.T(), allocations, 1)
	assert.Equal(suite.T(), payment.PaymentID, allocations[0].PaymentID)
	assert.Equal(suite.T(), savedAllocations[0].AllocationID, allocations[0].AllocationID)

	// 4000 of 10000 allocated rolls the transaction to partially paid.
	assert.Equal(suite.T(), domain.TxnPartiallyPaid, updated.Status)
	suite.mockFinanceRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestRecordPayment_FullAllocationMarksPaid() {
	txn := suite.pendingTransaction(10000)
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(txn, nil).Once()
	suite.mockFinanceRepo.On("CountPaymentsForYear", suite.ctx, testOrgID, time.Now().Year()).
		Return(2, nil).Once()
	suite.mockFinanceRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.FinancialPayment"), mock.AnythingOfType("[]domain.PaymentAllocation")).
		Return(nil).Once()
	suite.mockFinanceRepo.On("ListAllocationsByTransaction", suite.ctx, testTxnID).
		Return([]domain.PaymentAllocation{
			{AllocationID: "alloc-1", TransactionID: testTxnID, AmountMinorUnits: 10000},
		}, nil).Once()

	var updated domain.FinancialTransaction
	suite.mockFinanceRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.FinancialTransaction")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.FinancialTransaction)
		}).
		Return(nil).Once()

	_, _, err := suite.service.RecordPayment(suite.ctx, testOrgID, dto.CreatePaymentRequest{
		Direction:        "DEBIT",
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 10000,
		PaymentDate:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Allocations: []dto.PaymentAllocationRequest{
			{TransactionID: testTxnID, AmountMinorUnits: 10000},
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.TxnPaid, updated.Status)
	suite.mockFinanceRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestRecordPayment_OverAllocationRejected() {
	suite.expectAuthorized()

	_, _, err := suite.service.RecordPayment(suite.ctx, testOrgID, dto.CreatePaymentRequest{
		Direction:        "DEBIT",
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 5000,
		PaymentDate:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Allocations: []dto.PaymentAllocationRequest{
			{TransactionID: testTxnID, AmountMinorUnits: 4000},
			{TransactionID: "txn-2", AmountMinorUnits: 2000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestRecordPayment_RejectsCancelledTarget() {
	cancelled := suite.pendingTransaction(10000)
	cancelled.Status = domain.TxnCancelled
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(cancelled, nil).Once()

	_, _, err := suite.service.RecordPayment(suite.ctx, testOrgID, dto.CreatePaymentRequest{
		Direction:        "DEBIT",
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 4000,
		PaymentDate:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Allocations: []dto.PaymentAllocationRequest{
			{TransactionID: testTxnID, AmountMinorUnits: 4000},
		},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestCancelTransaction_Pending() {
	txn := suite.pendingTransaction(10000)
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(txn, nil).Once()
	suite.mockFinanceRepo.On("ListAllocationsByTransaction", suite.ctx, testTxnID).
		Return([]domain.PaymentAllocation{}, nil).Once()
	suite.mockFinanceRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.FinancialTransaction")).
		Return(nil).Once()

	result, err := suite.service.CancelTransaction(suite.ctx, testOrgID, testTxnID, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.TxnCancelled, result.Status)
	suite.mockFinanceRepo.AssertExpectations(suite.T())
}

func (suite *FinanceServiceTestSuite) TestCancelTransaction_RejectsAllocated() {
	txn := suite.pendingTransaction(10000)
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(txn, nil).Once()
	suite.mockFinanceRepo.On("ListAllocationsByTransaction", suite.ctx, testTxnID).
		Return([]domain.PaymentAllocation{
			{AllocationID: "alloc-1", TransactionID: testTxnID, AmountMinorUnits: 1000},
		}, nil).Once()

	_, err := suite.service.CancelTransaction(suite.ctx, testOrgID, testTxnID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestCancelTransaction_RejectsNonPending() {
	paid := suite.pendingTransaction(10000)
	paid.Status = domain.TxnPaid
	suite.expectAuthorized()
	suite.mockFinanceRepo.On("FindTransactionByID", suite.ctx, testOrgID, testTxnID).
		Return(paid, nil).Once()

	_, err := suite.service.CancelTransaction(suite.ctx, testOrgID, testTxnID, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "ListAllocationsByTransaction", mock.Anything, mock.Anything)
}

func TestFinanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}
