package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// rfqHandler handles HTTP requests for RFQs and their supplier quotes.
type rfqHandler struct {
	rfqService   portssvc.RFQSvcFacade
	quoteService portssvc.SupplierQuoteSvcFacade
}

func newRFQHandler(rfqSvc portssvc.RFQSvcFacade, sqSvc portssvc.SupplierQuoteSvcFacade) *rfqHandler {
	return &rfqHandler{rfqService: rfqSvc, quoteService: sqSvc}
}

// registerRFQRoutes registers routes related to RFQs and supplier quotes.
func registerRFQRoutes(rg *gin.RouterGroup, rfqSvc portssvc.RFQSvcFacade, sqSvc portssvc.SupplierQuoteSvcFacade) {
	h := newRFQHandler(rfqSvc, sqSvc)

	rfqs := rg.Group("/rfqs")
	{
		rfqs.POST("", h.createRFQ)
		rfqs.GET("", h.listRFQs)
		rfqs.GET("/:rfq_id", h.getRFQByID)
		rfqs.PUT("/:rfq_id/status", h.updateRFQStatus)
		rfqs.GET("/:rfq_id/compare", h.compareQuotes)
		rfqs.GET("/:rfq_id/margin", h.getRFQMargin)

		rfqs.POST("/:rfq_id/quotes", h.registerSupplierQuote)
		rfqs.GET("/:rfq_id/quotes", h.listSupplierQuotes)
		rfqs.POST("/:rfq_id/quotes/:quote_id/select", h.selectQuote)
	}
	rg.GET("/supplier-quotes/:quote_id", h.getSupplierQuoteByID)
}

// createRFQ godoc
// @Summary Open a request for quotation
// @Description Creates an RFQ with a generated number and its product lines
// @Tags rfqs
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq body dto.CreateRFQRequest true "RFQ details"
// @Success 201 {object} dto.RFQResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs [post]
func (h *rfqHandler) createRFQ(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rfq, items, err := h.rfqService.CreateRFQ(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRFQResponse(rfq, items))
}

// listRFQs godoc
// @Summary List RFQs
// @Tags rfqs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.RFQResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs [get]
func (h *rfqHandler) listRFQs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var status *domain.RFQStatus
	if s := c.Query("status"); s != "" {
		st := domain.RFQStatus(s)
		status = &st
	}

	rfqs, total, err := h.rfqService.ListRFQs(c.Request.Context(), c.Param("org_id"), status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.RFQResponse]{
		Items:  dto.ToListRFQResponse(rfqs),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getRFQByID godoc
// @Summary Get an RFQ
// @Tags rfqs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Success 200 {object} dto.RFQResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id} [get]
func (h *rfqHandler) getRFQByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rfq, items, err := h.rfqService.GetRFQByID(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRFQResponse(rfq, items))
}

// updateRFQStatus godoc
// @Summary Move an RFQ through its lifecycle
// @Tags rfqs
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Param status body dto.UpdateRFQStatusRequest true "Target status"
// @Success 200 {object} dto.RFQResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/status [put]
func (h *rfqHandler) updateRFQStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateRFQStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rfq, err := h.rfqService.UpdateRFQStatus(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), domain.RFQStatus(req.Status), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRFQResponse(rfq, nil))
}

// compareQuotes godoc
// @Summary Compare supplier quotes
// @Description Returns the RFQ's quotes ordered by converted total, cheapest first
// @Tags rfqs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Success 200 {array} dto.SupplierQuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/compare [get]
func (h *rfqHandler) compareQuotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quotes, err := h.rfqService.CompareQuotes(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSupplierQuoteResponse(quotes))
}

// getRFQMargin godoc
// @Summary Get the RFQ margin
// @Description Computes the base-currency margin: customer quote revenue minus purchase costs minus shipment expenses
// @Tags rfqs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Success 200 {object} dto.RFQMarginResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/margin [get]
func (h *rfqHandler) getRFQMargin(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	margin, err := h.rfqService.GetRFQMargin(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, margin)
}

// selectQuote godoc
// @Summary Select the winning quote
// @Description Marks a supplier quote as selected, rejects the rest and closes the RFQ
// @Tags rfqs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Param quote_id path string true "Supplier quote ID"
// @Success 200 {object} dto.RFQResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/quotes/{quote_id}/select [post]
func (h *rfqHandler) selectQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rfq, err := h.rfqService.SelectQuote(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRFQResponse(rfq, nil))
}

// registerSupplierQuote godoc
// @Summary Register a supplier quote
// @Description Records a supplier's quote against an RFQ, applying commission and locking the conversion rate
// @Tags supplier-quotes
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Param quote body dto.CreateSupplierQuoteRequest true "Quote details"
// @Success 201 {object} dto.SupplierQuoteResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/quotes [post]
func (h *rfqHandler) registerSupplierQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSupplierQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	quote, items, err := h.quoteService.RegisterSupplierQuote(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierQuoteResponse(quote, items))
}

// listSupplierQuotes godoc
// @Summary List quotes against an RFQ
// @Tags supplier-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param rfq_id path string true "RFQ ID"
// @Success 200 {array} dto.SupplierQuoteResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/rfqs/{rfq_id}/quotes [get]
func (h *rfqHandler) listSupplierQuotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quotes, err := h.quoteService.ListSupplierQuotesByRFQ(c.Request.Context(), c.Param("org_id"), c.Param("rfq_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSupplierQuoteResponse(quotes))
}

// getSupplierQuoteByID godoc
// @Summary Get a supplier quote
// @Tags supplier-quotes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Supplier quote ID"
// @Success 200 {object} dto.SupplierQuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/supplier-quotes/{quote_id} [get]
func (h *rfqHandler) getSupplierQuoteByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	quote, items, err := h.quoteService.GetSupplierQuoteByID(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierQuoteResponse(quote, items))
}
