package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-service/internal/domain"
	"github.com/spec-kit/profile-service/internal/events"
	"github.com/spec-kit/profile-service/internal/repository"
	apperrors "github.com/spec-kit/profile-service/pkg/util"
)

// OrganizationService manages tenant organizations and their registered
// applications. Every operation is scoped to the owning user.
type OrganizationService struct {
	orgs       repository.OrganizationRepository
	apps       repository.ApplicationRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrganizationDependencies encapsulates repo requirements.
type OrganizationDependencies struct {
	OrganizationRepo repository.OrganizationRepository
	ApplicationRepo  repository.ApplicationRepository
	Dispatcher       events.Dispatcher
}

// NewOrganizationService builds the service.
func NewOrganizationService(deps OrganizationDependencies, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		orgs:       deps.OrganizationRepo,
		apps:       deps.ApplicationRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateOrganization registers a new organization owned by the user.
func (s *OrganizationService) CreateOrganization(ctx context.Context, ownerID, name string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("organization name is required", nil)
	}

	org := &domain.Organization{
		Name:    name,
		OwnerID: ownerID,
		Status:  domain.OrganizationStatusActive,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrganizationCreated,
			UserID:    ownerID,
			Timestamp: time.Now(),
			Payload:   events.OrganizationCreatedPayload{OrganizationID: org.ID, Name: org.Name},
		})
	}
	return org, nil
}

// ListOrganizations returns the organizations the user owns.
func (s *OrganizationService) ListOrganizations(ctx context.Context, ownerID string) ([]domain.Organization, error) {
	return s.orgs.ListByOwner(ctx, ownerID)
}

// GetOrganization loads one organization, enforcing ownership.
func (s *OrganizationService) GetOrganization(ctx context.Context, ownerID, orgID string) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("not the organization owner")
	}
	return org, nil
}

// RenameOrganization updates the organization name.
func (s *OrganizationService) RenameOrganization(ctx context.Context, ownerID, orgID, name string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("organization name is required", nil)
	}
	org, err := s.GetOrganization(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}
	org.Name = name
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// ArchiveOrganization retires an organization; its applications stay but the
// tenant no longer accepts new ones.
func (s *OrganizationService) ArchiveOrganization(ctx context.Context, ownerID, orgID string) (*domain.Organization, error) {
	org, err := s.GetOrganization(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}
	org.Status = domain.OrganizationStatusArchived
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// CreateApplication registers an application under an organization the user
// owns and issues its API key.
func (s *OrganizationService) CreateApplication(ctx context.Context, ownerID, orgID, name string) (*domain.Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("application name is required", nil)
	}
	org, err := s.GetOrganization(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}
	if org.Status != domain.OrganizationStatusActive {
		return nil, apperrors.NewConflict("organization is archived", nil)
	}

	app := &domain.Application{
		OrganizationID: org.ID,
		Name:           name,
		APIKey:         uuid.NewString(),
		Status:         domain.ApplicationStatusActive,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications returns the applications registered under an organization
// the user owns.
func (s *OrganizationService) ListApplications(ctx context.Context, ownerID, orgID string) ([]domain.Application, error) {
	if _, err := s.GetOrganization(ctx, ownerID, orgID); err != nil {
		return nil, err
	}
	return s.apps.ListByOrganization(ctx, orgID)
}
