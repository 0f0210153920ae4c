package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{orgService: os}
}

// registerOrganizationRoutes registers routes related to organizations.
func registerOrganizationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(orgService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listUserOrganizations)
		orgs.GET("/:org_id", h.getOrganizationByID)
		orgs.PUT("/:org_id", h.updateOrganization)
		orgs.GET("/:org_id/members", h.listOrganizationUsers)
		orgs.POST("/:org_id/members", h.addUserToOrganization)
		orgs.DELETE("/:org_id/members/:user_id", h.removeUserFromOrganization)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization with the caller as admin
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listUserOrganizations godoc
// @Summary List the caller's organizations
// @Tags organizations
// @Produce json
// @Success 200 {array} dto.OrganizationResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgs, err := h.orgService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationResponse(orgs))
}

// getOrganizationByID godoc
// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id} [get]
func (h *organizationHandler) getOrganizationByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	org, err := h.orgService.GetOrganizationByID(c.Request.Context(), c.Param("org_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// updateOrganization godoc
// @Summary Update an organization
// @Description Updates mutable organization attributes (admin only)
// @Tags organizations
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id} [put]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.orgService.UpdateOrganization(c.Request.Context(), c.Param("org_id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// listOrganizationUsers godoc
// @Summary List organization members
// @Tags organizations
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {array} dto.OrganizationMemberResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/members [get]
func (h *organizationHandler) listOrganizationUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	members, err := h.orgService.ListOrganizationUsers(c.Request.Context(), c.Param("org_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationMemberResponse(members))
}

// addUserToOrganization godoc
// @Summary Add a member
// @Description Adds a user to the organization with a role (admin only)
// @Tags organizations
// @Accept json
// @Param org_id path string true "Organization ID"
// @Param member body dto.AddUserToOrganizationRequest true "User and role"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/members [post]
func (h *organizationHandler) addUserToOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.orgService.AddUserToOrganization(c.Request.Context(), c.Param("org_id"), req, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// removeUserFromOrganization godoc
// @Summary Remove a member
// @Description Marks a membership as removed (admin only)
// @Tags organizations
// @Param org_id path string true "Organization ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{org_id}/members/{user_id} [delete]
func (h *organizationHandler) removeUserFromOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.orgService.RemoveUserFromOrganization(c.Request.Context(), c.Param("org_id"), c.Param("user_id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
