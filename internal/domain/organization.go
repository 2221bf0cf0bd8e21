package domain

import "time"

// OrganizationStatus enumerates lifecycle states for organizations.
type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "ACTIVE"
	OrganizationStatusArchived OrganizationStatus = "ARCHIVED"
)

// Organization is a tenant owned by a user; applications hang off it.
type Organization struct {
	ID        string
	Name      string
	OwnerID   string
	Status    OrganizationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
