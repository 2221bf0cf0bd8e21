package domain

import (
	"time"

	"github.com/spec-kit/profile-service/internal/flow"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for account holders. The profile fields
// (FirstName, LastName, PhoneNumber, PhoneVerified) are filled in through the
// guided setup flow after registration.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	PhoneNumber   string
	PhoneVerified bool
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot returns the read-only profile view consumed by the setup flow's
// completion predicates.
func (u *User) Snapshot() *flow.Snapshot {
	if u == nil {
		return nil
	}
	return &flow.Snapshot{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNumber:   u.PhoneNumber,
		PhoneVerified: u.PhoneVerified,
	}
}
