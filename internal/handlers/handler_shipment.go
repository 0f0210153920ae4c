package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// shipmentHandler handles HTTP requests related to shipments.
type shipmentHandler struct {
	shipmentService portssvc.ShipmentSvcFacade
}

func newShipmentHandler(ss portssvc.ShipmentSvcFacade) *shipmentHandler {
	return &shipmentHandler{shipmentService: ss}
}

// registerShipmentRoutes registers routes related to shipments.
func registerShipmentRoutes(rg *gin.RouterGroup, shipmentService portssvc.ShipmentSvcFacade) {
	h := newShipmentHandler(shipmentService)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("", h.createShipment)
		shipments.GET("", h.listShipments)
		shipments.GET("/:shipment_id", h.getShipmentByID)
		shipments.PUT("/:shipment_id", h.updateShipment)
		shipments.PUT("/:shipment_id/status", h.updateShipmentStatus)
	}
}

// createShipment godoc
// @Summary Draft a shipment
// @Description Creates a draft shipment against a confirmed purchase order
// @Tags shipments
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param shipment body dto.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} dto.ShipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/shipments [post]
func (h *shipmentHandler) createShipment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	shipment, items, err := h.shipmentService.CreateShipment(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToShipmentResponse(shipment, items))
}

// listShipments godoc
// @Summary List shipments
// @Tags shipments
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.ShipmentResponse]
// @Security BearerAuth
// @Router /organizations/{org_id}/shipments [get]
func (h *shipmentHandler) listShipments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)

	var status *domain.ShipmentStatus
	if s := c.Query("status"); s != "" {
		st := domain.ShipmentStatus(s)
		status = &st
	}

	shipments, total, err := h.shipmentService.ListShipments(c.Request.Context(), c.Param("org_id"), status, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.ShipmentResponse]{
		Items:  dto.ToListShipmentResponse(shipments),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getShipmentByID godoc
// @Summary Get a shipment
// @Tags shipments
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param shipment_id path string true "Shipment ID"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/shipments/{shipment_id} [get]
func (h *shipmentHandler) getShipmentByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	shipment, items, err := h.shipmentService.GetShipmentByID(c.Request.Context(), c.Param("org_id"), c.Param("shipment_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment, items))
}

// updateShipment godoc
// @Summary Edit a draft shipment
// @Description Updates a draft shipment and recomputes the total cost
// @Tags shipments
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param shipment_id path string true "Shipment ID"
// @Param shipment body dto.UpdateShipmentRequest true "Fields to update"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/shipments/{shipment_id} [put]
func (h *shipmentHandler) updateShipment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	shipment, items, err := h.shipmentService.UpdateShipment(c.Request.Context(), c.Param("org_id"), c.Param("shipment_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment, items))
}

// updateShipmentStatus godoc
// @Summary Advance the shipment lifecycle
// @Description Confirming locks the base-currency rate and freezes costs
// @Tags shipments
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param shipment_id path string true "Shipment ID"
// @Param status body dto.UpdateShipmentStatusRequest true "Target status"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/shipments/{shipment_id}/status [put]
func (h *shipmentHandler) updateShipmentStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	shipment, err := h.shipmentService.UpdateShipmentStatus(c.Request.Context(), c.Param("org_id"), c.Param("shipment_id"), domain.ShipmentStatus(req.Status), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment, nil))
}
