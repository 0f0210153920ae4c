package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoiceByID)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.POST("/:invoice_id/issue", h.issueInvoice)
		invoices.POST("/:invoice_id/void", h.voidInvoice)
	}
}

// createInvoice godoc
// @Summary Draft an invoice
// @Description Creates a draft invoice of the requested kind with a generated number
// @Tags invoices
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	inv, items, err := h.invoiceService.CreateInvoice(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv, items))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param kind query string false "Filter by kind"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.InvoiceResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var kind *domain.InvoiceKind
	if k := c.Query("kind"); k != "" {
		ik := domain.InvoiceKind(k)
		kind = &ik
	}
	var status *domain.InvoiceStatus
	if s := c.Query("status"); s != "" {
		st := domain.InvoiceStatus(s)
		status = &st
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("org_id"), kind, status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.InvoiceResponse]{
		Items:  dto.ToListInvoiceResponse(invoices),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getInvoiceByID godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoiceByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inv, items, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("org_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, items))
}

// updateInvoice godoc
// @Summary Edit a draft invoice
// @Description Updates a draft invoice and recomputes totals. Issued invoices return 409.
// @Tags invoices
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	inv, items, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("org_id"), c.Param("invoice_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, items))
}

// issueInvoice godoc
// @Summary Issue an invoice
// @Description Finalizes the invoice, locks the base-currency rate and, for non-proforma kinds, opens the matching receivable
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id}/issue [post]
func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.IssueInvoice(c.Request.Context(), c.Param("org_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, nil))
}

// voidInvoice godoc
// @Summary Void an issued invoice
// @Description Voids the invoice and cancels its ledger transaction
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.VoidInvoice(c.Request.Context(), c.Param("org_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, nil))
}
