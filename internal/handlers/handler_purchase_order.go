package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// purchaseOrderHandler handles HTTP requests related to purchase orders.
type purchaseOrderHandler struct {
	poService portssvc.PurchaseOrderSvcFacade
}

func newPurchaseOrderHandler(ps portssvc.PurchaseOrderSvcFacade) *purchaseOrderHandler {
	return &purchaseOrderHandler{poService: ps}
}

// registerPurchaseOrderRoutes registers routes related to purchase orders.
func registerPurchaseOrderRoutes(rg *gin.RouterGroup, poService portssvc.PurchaseOrderSvcFacade) {
	h := newPurchaseOrderHandler(poService)

	pos := rg.Group("/purchase-orders")
	{
		pos.POST("", h.createPurchaseOrder)
		pos.POST("/from-quote/:quote_id", h.createFromSupplierQuote)
		pos.GET("", h.listPurchaseOrders)
		pos.GET("/:po_id", h.getPurchaseOrderByID)
		pos.PUT("/:po_id", h.updatePurchaseOrder)
		pos.POST("/:po_id/send", h.sendPurchaseOrder)
		pos.POST("/:po_id/confirm", h.confirmPurchaseOrder)
		pos.POST("/:po_id/cancel", h.cancelPurchaseOrder)
		pos.POST("/:po_id/revise", h.revisePurchaseOrder)
	}
}

// createPurchaseOrder godoc
// @Summary Draft a purchase order
// @Description Creates a draft PO with a generated number and computed totals
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param order body dto.CreatePurchaseOrderRequest true "Purchase order details"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders [post]
func (h *purchaseOrderHandler) createPurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	po, items, err := h.poService.CreatePurchaseOrder(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(po, items))
}

// createFromSupplierQuote godoc
// @Summary Draft a purchase order from a selected supplier quote
// @Description Carries over the quote's items with their after-commission prices
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param quote_id path string true "Supplier quote ID"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/from-quote/{quote_id} [post]
func (h *purchaseOrderHandler) createFromSupplierQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, items, err := h.poService.CreateFromSupplierQuote(c.Request.Context(), c.Param("org_id"), c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(po, items))
}

// listPurchaseOrders godoc
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.PurchaseOrderResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders [get]
func (h *purchaseOrderHandler) listPurchaseOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var status *domain.PurchaseOrderStatus
	if s := c.Query("status"); s != "" {
		st := domain.PurchaseOrderStatus(s)
		status = &st
	}

	orders, total, err := h.poService.ListPurchaseOrders(c.Request.Context(), c.Param("org_id"), status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.PurchaseOrderResponse]{
		Items:  dto.ToListPurchaseOrderResponse(orders),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getPurchaseOrderByID godoc
// @Summary Get a purchase order
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id} [get]
func (h *purchaseOrderHandler) getPurchaseOrderByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, items, err := h.poService.GetPurchaseOrderByID(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po, items))
}

// updatePurchaseOrder godoc
// @Summary Edit a draft purchase order
// @Description Updates a draft PO and recomputes totals. Finalized orders return 409.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Param order body dto.UpdatePurchaseOrderRequest true "Fields to update"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id} [put]
func (h *purchaseOrderHandler) updatePurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	po, items, err := h.poService.UpdatePurchaseOrder(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po, items))
}

// sendPurchaseOrder godoc
// @Summary Send a purchase order
// @Description Finalizes the PO, locking the base-currency rate and freezing totals
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id}/send [post]
func (h *purchaseOrderHandler) sendPurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, err := h.poService.SendPurchaseOrder(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po, nil))
}

// confirmPurchaseOrder godoc
// @Summary Confirm a purchase order
// @Description Marks a sent PO as confirmed and opens the matching payable
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id}/confirm [post]
func (h *purchaseOrderHandler) confirmPurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, err := h.poService.ConfirmPurchaseOrder(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po, nil))
}

// cancelPurchaseOrder godoc
// @Summary Cancel a purchase order
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id}/cancel [post]
func (h *purchaseOrderHandler) cancelPurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, err := h.poService.CancelPurchaseOrder(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po, nil))
}

// revisePurchaseOrder godoc
// @Summary Revise a finalized purchase order
// @Description Clones a finalized PO into a new draft revision; the original stays immutable
// @Tags purchase-orders
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param po_id path string true "Purchase order ID"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/purchase-orders/{po_id}/revise [post]
func (h *purchaseOrderHandler) revisePurchaseOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	po, items, err := h.poService.ReviseFinalizedPurchaseOrder(c.Request.Context(), c.Param("org_id"), c.Param("po_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(po, items))
}
