package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// financeHandler handles HTTP requests for the financial ledger.
type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: fs}
}

// registerFinanceRoutes registers routes related to the financial ledger.
func registerFinanceRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(financeService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransactionByID)
		transactions.POST("/:transaction_id/cancel", h.cancelTransaction)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPaymentByID)
	}
}

// createTransaction godoc
// @Summary Register a ledger transaction
// @Description Registers a payable or receivable, fixing its base-currency amount via the rate lookup
// @Tags finance
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/transactions [post]
func (h *financeHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.financeService.CreateTransaction(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List ledger transactions
// @Tags finance
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param kind query string false "Filter by kind"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.TransactionResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/transactions [get]
func (h *financeHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var kind *domain.TransactionKind
	if k := c.Query("kind"); k != "" {
		tk := domain.TransactionKind(k)
		kind = &tk
	}
	var status *domain.TransactionStatus
	if s := c.Query("status"); s != "" {
		st := domain.TransactionStatus(s)
		status = &st
	}

	txns, total, err := h.financeService.ListTransactions(c.Request.Context(), c.Param("org_id"), kind, status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.TransactionResponse]{
		Items:  dto.ToListTransactionResponse(txns),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getTransactionByID godoc
// @Summary Get a ledger transaction
// @Tags finance
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/transactions/{transaction_id} [get]
func (h *financeHandler) getTransactionByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	txn, err := h.financeService.GetTransactionByID(c.Request.Context(), c.Param("org_id"), c.Param("transaction_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a pending transaction
// @Description Cancels a pending transaction that has no allocations
// @Tags finance
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/transactions/{transaction_id}/cancel [post]
func (h *financeHandler) cancelTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	txn, err := h.financeService.CancelTransaction(c.Request.Context(), c.Param("org_id"), c.Param("transaction_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment with its allocations, then rolls each allocated transaction's status forward
// @Tags finance
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/payments [post]
func (h *financeHandler) recordPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payment, allocations, err := h.financeService.RecordPayment(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, allocations))
}

// listPayments godoc
// @Summary List payments
// @Tags finance
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.PaymentResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/payments [get]
func (h *financeHandler) listPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	payments, total, err := h.financeService.ListPayments(c.Request.Context(), c.Param("org_id"), limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.PaymentResponse]{
		Items:  dto.ToListPaymentResponse(payments),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getPaymentByID godoc
// @Summary Get a payment
// @Description Retrieves a payment with its allocations
// @Tags finance
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/payments/{payment_id} [get]
func (h *financeHandler) getPaymentByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	payment, allocations, err := h.financeService.GetPaymentByID(c.Request.Context(), c.Param("org_id"), c.Param("payment_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, allocations))
}
