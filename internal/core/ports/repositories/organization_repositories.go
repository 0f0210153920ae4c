package repositories

import (
	"context"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// ListOrganizationUsers retrieves all memberships for an organization.
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)

	// FindUserOrganizationRole returns the role of a user in an organization,
	// or apperrors.ErrNotFound when the user is not a member.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// SaveUserOrganization persists a membership row (insert or role update).
	SaveUserOrganization(ctx context.Context, membership domain.UserOrganization) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
