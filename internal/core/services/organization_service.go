package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/middleware"
)

// OrganizationService handles business logic related to organizations and
// memberships. It also doubles as the authorizer used by the trade services.
type OrganizationService struct {
	orgRepo      portsrepo.OrganizationRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) *OrganizationService {
	return &OrganizationService{
		orgRepo:      orgRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// CreateOrganization creates a new organization and makes the creator the initial admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultCurrencyCode != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, *req.DefaultCurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, *req.DefaultCurrencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency code: %w", err)
		}
	}

	now := time.Now()
	newOrgID := uuid.NewString()

	org := domain.Organization{
		OrganizationID:      newOrgID,
		Name:                req.Name,
		Description:         req.Description,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: newOrgID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}
	if err := s.orgRepo.SaveUserOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new organization", slog.String("error", err.Error()), slog.String("organization_id", newOrgID))
		return nil, fmt.Errorf("failed to add creator to organization: %w", err)
	}

	logger.Info("Organization created", slog.String("organization_id", newOrgID), slog.String("creator_user_id", creatorUserID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization, enforcing membership.
func (s *OrganizationService) GetOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// ListUserOrganizations lists active organizations the user belongs to.
func (s *OrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListUserOrganizations(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list user organizations: %w", err)
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

// ListOrganizationUsers lists members of an organization.
func (s *OrganizationService) ListOrganizationUsers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	return members, nil
}

// UpdateOrganization updates mutable organization attributes (admin only).
func (s *OrganizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error) {
	if err := s.authorizeAdmin(ctx, requestingUserID, organizationID); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization for update: %w", err)
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.DefaultCurrencyCode != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, *req.DefaultCurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, *req.DefaultCurrencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency code: %w", err)
		}
		org.DefaultCurrencyCode = req.DefaultCurrencyCode
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}
	org.LastUpdatedAt = time.Now()
	org.LastUpdatedBy = requestingUserID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// AddUserToOrganization adds a member with a role (admin only).
func (s *OrganizationService) AddUserToOrganization(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) error {
	if err := s.authorizeAdmin(ctx, requestingUserID, organizationID); err != nil {
		return err
	}

	membership := domain.UserOrganization{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           domain.UserOrganizationRole(req.Role),
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.SaveUserOrganization(ctx, membership); err != nil {
		return fmt.Errorf("failed to add user to organization: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("User added to organization",
		slog.String("target_user_id", req.UserID),
		slog.String("organization_id", organizationID),
		slog.String("role", req.Role),
	)
	return nil
}

// RemoveUserFromOrganization marks a member as removed (admin only).
func (s *OrganizationService) RemoveUserFromOrganization(ctx context.Context, organizationID, userID, requestingUserID string) error {
	if err := s.authorizeAdmin(ctx, requestingUserID, organizationID); err != nil {
		return err
	}
	if userID == requestingUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}

	membership := domain.UserOrganization{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           domain.RoleRemoved,
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.SaveUserOrganization(ctx, membership); err != nil {
		return fmt.Errorf("failed to remove user from organization: %w", err)
	}
	return nil
}

// AuthorizeUserForOrganization returns the user's role or ErrForbidden.
func (s *OrganizationService) AuthorizeUserForOrganization(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error) {
	role, err := s.orgRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: user %s is not a member of organization %s", apperrors.ErrForbidden, userID, organizationID)
		}
		return "", fmt.Errorf("failed to check organization membership: %w", err)
	}
	if role == domain.RoleRemoved {
		return "", fmt.Errorf("%w: user %s was removed from organization %s", apperrors.ErrForbidden, userID, organizationID)
	}
	return role, nil
}

// AuthorizeUserCanWrite returns ErrForbidden unless the user holds a writing role.
func (s *OrganizationService) AuthorizeUserCanWrite(ctx context.Context, userID, organizationID string) error {
	role, err := s.AuthorizeUserForOrganization(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return fmt.Errorf("%w: role %s cannot modify organization data", apperrors.ErrForbidden, role)
	}
	return nil
}

// authorizeAdmin returns ErrForbidden unless the user is an organization admin.
func (s *OrganizationService) authorizeAdmin(ctx context.Context, userID, organizationID string) error {
	role, err := s.AuthorizeUserForOrganization(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins can perform this action", apperrors.ErrForbidden)
	}
	return nil
}
