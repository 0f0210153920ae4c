package dto

import (
	"time"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an organization.
type CreateOrganizationRequest struct {
	Name                string  `json:"name" binding:"required,min=1,max=100"`
	Description         string  `json:"description,omitempty"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
}

// UpdateOrganizationRequest defines the mutable organization attributes.
type UpdateOrganizationRequest struct {
	Name                *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description         *string `json:"description,omitempty"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
	IsActive            *bool   `json:"isActive,omitempty"`
}

// AddUserToOrganizationRequest adds a member with a role.
type AddUserToOrganizationRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID      string    `json:"organizationID"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}

// OrganizationMemberResponse describes one user's membership.
type OrganizationMemberResponse struct {
	UserID         string    `json:"userID"`
	UserName       string    `json:"userName"`
	OrganizationID string    `json:"organizationID"`
	Role           string    `json:"role"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// ToOrganizationResponse converts a domain.Organization to OrganizationResponse DTO
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:      org.OrganizationID,
		Name:                org.Name,
		Description:         org.Description,
		DefaultCurrencyCode: org.DefaultCurrencyCode,
		IsActive:            org.IsActive,
		CreatedAt:           org.CreatedAt,
		LastUpdatedAt:       org.LastUpdatedAt,
	}
}

// ToListOrganizationResponse converts memberships to OrganizationResponse DTOs.
func ToListOrganizationResponse(orgs []domain.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		res[i] = ToOrganizationResponse(&orgs[i])
	}
	return res
}

// ToOrganizationMemberResponse converts a domain.UserOrganization to its DTO.
func ToOrganizationMemberResponse(uo *domain.UserOrganization) OrganizationMemberResponse {
	return OrganizationMemberResponse{
		UserID:         uo.UserID,
		UserName:       uo.UserName,
		OrganizationID: uo.OrganizationID,
		Role:           string(uo.Role),
		JoinedAt:       uo.JoinedAt,
	}
}

// ToListOrganizationMemberResponse converts a membership slice to DTOs.
func ToListOrganizationMemberResponse(members []domain.UserOrganization) []OrganizationMemberResponse {
	res := make([]OrganizationMemberResponse, len(members))
	for i := range members {
		res[i] = ToOrganizationMemberResponse(&members[i])
	}
	return res
}
