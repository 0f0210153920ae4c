package services

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves an organization, enforcing membership.
	GetOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error)

	// ListUserOrganizations lists organizations the user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListOrganizationUsers lists members of an organization.
	ListOrganizationUsers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization creates an organization with the creator as admin.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates mutable organization attributes (admin only).
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error)

	// AddUserToOrganization adds a member with a role (admin only).
	AddUserToOrganization(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) error

	// RemoveUserFromOrganization marks a member as removed (admin only).
	RemoveUserFromOrganization(ctx context.Context, organizationID, userID, requestingUserID string) error
}

// OrganizationAuthorizerSvc answers membership and role questions for other services.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserForOrganization returns the user's role or ErrForbidden.
	AuthorizeUserForOrganization(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error)

	// AuthorizeUserCanWrite returns ErrForbidden unless the user holds a
	// writing role (admin or member).
	AuthorizeUserCanWrite(ctx context.Context, userID, organizationID string) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationAuthorizerSvc
}
