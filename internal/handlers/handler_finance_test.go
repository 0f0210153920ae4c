package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
)

// --- Mock FinanceService ---
type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) GetTransactionByID(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinanceService) GetTransactionByDocument(ctx context.Context, organizationID, documentType, documentID, requestingUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, documentType, documentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinanceService) ListTransactions(ctx context.Context, organizationID string, kind *domain.TransactionKind, status *domain.TransactionStatus, limit, offset int, requestingUserID string) ([]domain.FinancialTransaction, int, error) {
	args := m.Called(ctx, organizationID, kind, status, limit, offset, requestingUserID)
	txns, _ := args.Get(0).([]domain.FinancialTransaction)
	return txns, args.Int(1), args.Error(2)
}

func (m *MockFinanceService) GetPaymentByID(ctx context.Context, organizationID, paymentID, requestingUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error) {
	args := m.Called(ctx, organizationID, paymentID, requestingUserID)
	payment, _ := args.Get(0).(*domain.FinancialPayment)
	allocations, _ := args.Get(1).([]domain.PaymentAllocation)
	return payment, allocations, args.Error(2)
}

func (m *MockFinanceService) ListPayments(ctx context.Context, organizationID string, limit, offset int, requestingUserID string) ([]domain.FinancialPayment, int, error) {
	args := m.Called(ctx, organizationID, limit, offset, requestingUserID)
	payments, _ := args.Get(0).([]domain.FinancialPayment)
	return payments, args.Int(1), args.Error(2)
}

func (m *MockFinanceService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinanceService) RecordPayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.FinancialPayment, []domain.PaymentAllocation, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	payment, _ := args.Get(0).(*domain.FinancialPayment)
	allocations, _ := args.Get(1).([]domain.PaymentAllocation)
	return payment, allocations, args.Error(2)
}

func (m *MockFinanceService) CancelTransaction(ctx context.Context, organizationID, transactionID, requestingUserID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.FinanceSvcFacade = (*MockFinanceService)(nil)

// --- Test Suite ---
type FinanceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockFinanceService *MockFinanceService
	jwtSecret          string
}

func (suite *FinanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockFinanceService = new(MockFinanceService)

	org := suite.router.Group("/api/v1/organizations/:org_id")
	registerFinanceRoutes(org, suite.mockFinanceService)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *FinanceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "impex-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *FinanceHandlerTestSuite) doGet(url, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FinanceHandlerTestSuite) TestGetPaymentByID_Success() {
	orgID := uuid.NewString()
	paymentID := uuid.NewString()
	userID := uuid.NewString()

	payment := &domain.FinancialPayment{
		PaymentID:        paymentID,
		OrganizationID:   orgID,
		PaymentNumber:    "FP-2025-0001",
		Direction:        domain.PaymentDebit,
		CounterpartyName: "Shenzhen Electric",
		CurrencyCode:     "USD",
		AmountMinorUnits: 40000,
		PaymentDate:      time.Now(),
	}
	allocations := []domain.PaymentAllocation{
		{
			AllocationID:     uuid.NewString(),
			PaymentID:        paymentID,
			TransactionID:    uuid.NewString(),
			AmountMinorUnits: 40000,
		},
	}

	suite.mockFinanceService.On("GetPaymentByID",
		mock.AnythingOfType("*context.valueCtx"),
		orgID,
		paymentID,
		userID,
	).Return(payment, allocations, nil).Once()

	w := suite.doGet(fmt.Sprintf("/api/v1/organizations/%s/payments/%s", orgID, paymentID), userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.PaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(paymentID, body.PaymentID)
	suite.Equal("FP-2025-0001", body.PaymentNumber)
	suite.Equal(int64(40000), body.AmountMinorUnits)
	suite.Len(body.Allocations, 1)
	suite.Equal(allocations[0].TransactionID, body.Allocations[0].TransactionID)

	suite.mockFinanceService.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestGetPaymentByID_NotFound() {
	orgID := uuid.NewString()
	paymentID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockFinanceService.On("GetPaymentByID",
		mock.AnythingOfType("*context.valueCtx"),
		orgID,
		paymentID,
		userID,
	).Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.doGet(fmt.Sprintf("/api/v1/organizations/%s/payments/%s", orgID, paymentID), userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockFinanceService.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestGetPaymentByID_Unauthorized() {
	orgID := uuid.NewString()
	paymentID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/organizations/%s/payments/%s", orgID, paymentID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockFinanceService.AssertNotCalled(suite.T(), "GetPaymentByID")
}

func (suite *FinanceHandlerTestSuite) TestGetTransactionByID_Success() {
	orgID := uuid.NewString()
	transactionID := uuid.NewString()
	userID := uuid.NewString()

	txn := &domain.FinancialTransaction{
		TransactionID:     transactionID,
		OrganizationID:    orgID,
		TransactionNumber: "FT-2025-0001",
		Kind:              domain.Payable,
		CounterpartyName:  "Shenzhen Electric",
		CurrencyCode:      "USD",
		AmountMinorUnits:  100000,
		Status:            domain.TxnPending,
	}

	suite.mockFinanceService.On("GetTransactionByID",
		mock.AnythingOfType("*context.valueCtx"),
		orgID,
		transactionID,
		userID,
	).Return(txn, nil).Once()

	w := suite.doGet(fmt.Sprintf("/api/v1/organizations/%s/transactions/%s", orgID, transactionID), userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(transactionID, body.TransactionID)
	suite.Equal(string(domain.TxnPending), body.Status)

	suite.mockFinanceService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestFinanceHandler(t *testing.T) {
	suite.Run(t, new(FinanceHandlerTestSuite))
}
