package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"   // Regular employee
	RoleAdmin      Role = "ADMIN"      // HR / team administration
	RoleSuperAdmin Role = "SUPERADMIN" // Organization owner - full access
)

// DefaultVacationDays is the annual entitlement used when a user has none configured.
const DefaultVacationDays = 30

type User struct {
	ID             string
	OrganizationID string
	Email          string
	Name           string
	FirstName      *string
	LastName       *string
	Role           Role
	Position       *string
	Department     *string
	WeeklyHours    *float64
	VacationDays   *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName prefers the structured first/last name and falls back to the
// first two words of Name.
func (u *User) DisplayName() string {
	parts := strings.Fields(u.Name)

	first := ""
	if u.FirstName != nil && *u.FirstName != "" {
		first = *u.FirstName
	} else if len(parts) > 0 {
		first = parts[0]
	}

	last := ""
	if u.LastName != nil && *u.LastName != "" {
		last = *u.LastName
	} else if len(parts) > 1 {
		last = parts[1]
	}

	return strings.TrimSpace(first + " " + last)
}

// AnnualVacationDays returns the configured entitlement or fallback when unset.
func (u *User) AnnualVacationDays(fallback int) int {
	if u.VacationDays != nil {
		return *u.VacationDays
	}
	return fallback
}

// IsAdmin checks if user is admin or super admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
