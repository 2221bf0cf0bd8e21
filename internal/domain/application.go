package domain

import "time"

// ApplicationStatus enumerates lifecycle states for applications.
type ApplicationStatus string

const (
	ApplicationStatusActive   ApplicationStatus = "ACTIVE"
	ApplicationStatusDisabled ApplicationStatus = "DISABLED"
)

// Application is an integration registered under an organization. The APIKey
// is issued once at creation.
type Application struct {
	ID             string
	OrganizationID string
	Name           string
	APIKey         string
	Status         ApplicationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
