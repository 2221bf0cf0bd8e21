package dto

import (
	"time"

	"github.com/spec-kit/profile-service/internal/domain"
)

// OrganizationCreateRequest payload.
type OrganizationCreateRequest struct {
	Name string `json:"name"`
}

// OrganizationUpdateRequest payload.
type OrganizationUpdateRequest struct {
	Name string `json:"name"`
}

// ApplicationCreateRequest payload.
type ApplicationCreateRequest struct {
	Name string `json:"name"`
}

// OrganizationResponse wire form.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationResponse wire form.
type ApplicationResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	APIKey         string    `json:"api_key"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewOrganizationResponse converts a domain organization.
func NewOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Status:    string(org.Status),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

// NewApplicationResponse converts a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             app.ID,
		OrganizationID: app.OrganizationID,
		Name:           app.Name,
		APIKey:         app.APIKey,
		Status:         string(app.Status),
		CreatedAt:      app.CreatedAt,
	}
}
