package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// customerQuoteHandler handles HTTP requests related to customer quotes.
type customerQuoteHandler struct {
	quoteService portssvc.CustomerQuoteSvcFacade
}

func newCustomerQuoteHandler(cs portssvc.CustomerQuoteSvcFacade) *customerQuoteHandler {
	return &customerQuoteHandler{quoteService: cs}
}

// registerCustomerQuoteRoutes registers routes related to customer quotes.
func registerCustomerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.CustomerQuoteSvcFacade) {
	h := newCustomerQuoteHandler(quoteService)

	quotes := rg.Group("/customer-quotes")
	{
		quotes.POST("", h.createCustomerQuote)
		quotes.GET("", h.listCustomerQuotes)
		quotes.GET("/:quote_id", h.getCustomerQuoteByID)
		quotes.PUT("/:quote_id", h.updateCustomerQuote)
		quotes.POST("/:quote_id/send", h.sendCustomerQuote)
		quotes.POST("/:quote_id/approve", h.approveCustomerQuote)
		quotes.POST("/:quote_id/reject", h.rejectCustomerQuote)
	}
}

// createCustomerQuote godoc
// @Summary Draft a customer quote
// @Description Creates a draft quote with a generated number and computed totals
// @Tags customer-quotes
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote body dto.CreateCustomerQuoteRequest true "Quote details"
// @Success 201 {object} dto.CustomerQuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes [post]
func (h *customerQuoteHandler) createCustomerQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	quote, items, err := h.quoteService.CreateCustomerQuote(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerQuoteResponse(quote, items))
}

// listCustomerQuotes godoc
// @Summary List customer quotes
// @Tags customer-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.CustomerQuoteResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes [get]
func (h *customerQuoteHandler) listCustomerQuotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var status *domain.CustomerQuoteStatus
	if s := c.Query("status"); s != "" {
		st := domain.CustomerQuoteStatus(s)
		status = &st
	}

	quotes, total, err := h.quoteService.ListCustomerQuotes(c.Request.Context(), c.Param("org_id"), status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.CustomerQuoteResponse]{
		Items:  dto.ToListCustomerQuoteResponse(quotes),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getCustomerQuoteByID godoc
// @Summary Get a customer quote
// @Tags customer-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Customer quote ID"
// @Success 200 {object} dto.CustomerQuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes/{quote_id} [get]
func (h *customerQuoteHandler) getCustomerQuoteByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quote, items, err := h.quoteService.GetCustomerQuoteByID(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerQuoteResponse(quote, items))
}

// updateCustomerQuote godoc
// @Summary Edit a draft customer quote
// @Description Updates a draft quote and recomputes totals. Finalized quotes return 409.
// @Tags customer-quotes
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Customer quote ID"
// @Param quote body dto.UpdateCustomerQuoteRequest true "Fields to update"
// @Success 200 {object} dto.CustomerQuoteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes/{quote_id} [put]
func (h *customerQuoteHandler) updateCustomerQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	quote, items, err := h.quoteService.UpdateCustomerQuote(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerQuoteResponse(quote, items))
}

// sendCustomerQuote godoc
// @Summary Send a customer quote
// @Description Finalizes the quote, locking the base-currency rate
// @Tags customer-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Customer quote ID"
// @Success 200 {object} dto.CustomerQuoteResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes/{quote_id}/send [post]
func (h *customerQuoteHandler) sendCustomerQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quote, err := h.quoteService.SendCustomerQuote(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerQuoteResponse(quote, nil))
}

// approveCustomerQuote godoc
// @Summary Record client approval of a sent quote
// @Tags customer-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Customer quote ID"
// @Success 200 {object} dto.CustomerQuoteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes/{quote_id}/approve [post]
func (h *customerQuoteHandler) approveCustomerQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quote, err := h.quoteService.ApproveCustomerQuote(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerQuoteResponse(quote, nil))
}

// rejectCustomerQuote godoc
// @Summary Record client rejection of a sent quote
// @Tags customer-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Customer quote ID"
// @Success 200 {object} dto.CustomerQuoteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/customer-quotes/{quote_id}/reject [post]
func (h *customerQuoteHandler) rejectCustomerQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quote, err := h.quoteService.RejectCustomerQuote(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerQuoteResponse(quote, nil))
}
