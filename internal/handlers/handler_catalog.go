package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// catalogHandler handles HTTP requests for the product and client catalog.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers routes for products and clients under an
// organization scope.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:product_id", h.getProductByID)
		products.PUT("/:product_id", h.updateProduct)
		products.GET("/:product_id/cost-history", h.getProductCostHistory)
	}

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:client_id", h.getClientByID)
		clients.PUT("/:client_id", h.updateClient)
	}
}

// createProduct godoc
// @Summary Create a catalog product
// @Description Adds a product to the organization's catalog
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "SKU already exists"
// @Security BearerAuth
// @Router /organizations/{org_id}/products [post]
func (h *catalogHandler) createProduct(c *gin.Context) {
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), c.Param("org_id"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProductByID godoc
// @Summary Get a catalog product
// @Tags catalog
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   product_id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/products/{product_id} [get]
func (h *catalogHandler) getProductByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	product, err := h.catalogService.GetProductByID(c.Request.Context(), c.Param("org_id"), c.Param("product_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List catalog products
// @Tags catalog
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param active_only query bool false "Only active products"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.ProductResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)
	activeOnly := c.Query("active_only") == "true"

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), c.Param("org_id"), activeOnly, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.ProductResponse]{
		Items:  dto.ToListProductResponse(products),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// updateProduct godoc
// @Summary Update a catalog product
// @Description Edits product fields; a changed unit cost is recorded in the cost history
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   product_id path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/products/{product_id} [put]
func (h *catalogHandler) updateProduct(c *gin.Context) {
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("org_id"), c.Param("product_id"), req, updaterUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// getProductCostHistory godoc
// @Summary Get a product's cost change history
// @Tags catalog
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   product_id path string true "Product ID"
// @Success 200 {array} dto.ProductCostEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/products/{product_id}/cost-history [get]
func (h *catalogHandler) getProductCostHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.catalogService.GetProductCostHistory(c.Request.Context(), c.Param("org_id"), c.Param("product_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductCostEntryResponse(entries))
}

// createClient godoc
// @Summary Create a client
// @Description Adds a client; the code is derived from the name when omitted
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Client code already exists"
// @Security BearerAuth
// @Router /organizations/{org_id}/clients [post]
func (h *catalogHandler) createClient(c *gin.Context) {
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.catalogService.CreateClient(c.Request.Context(), c.Param("org_id"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClientByID godoc
// @Summary Get a client
// @Tags catalog
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   client_id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/clients/{client_id} [get]
func (h *catalogHandler) getClientByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.catalogService.GetClientByID(c.Request.Context(), c.Param("org_id"), c.Param("client_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Tags catalog
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param active_only query bool false "Only active clients"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListResponse[dto.ClientResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/clients [get]
func (h *catalogHandler) listClients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c)
	activeOnly := c.Query("active_only") == "true"

	clients, total, err := h.catalogService.ListClients(c.Request.Context(), c.Param("org_id"), activeOnly, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.ClientResponse]{
		Items:  dto.ToListClientResponse(clients),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// updateClient godoc
// @Summary Update a client
// @Description Edits mutable client fields; the code is fixed after creation
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   client_id path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/clients/{client_id} [put]
func (h *catalogHandler) updateClient(c *gin.Context) {
	updaterUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.catalogService.UpdateClient(c.Request.Context(), c.Param("org_id"), c.Param("client_id"), req, updaterUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}
