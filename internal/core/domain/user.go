package domain

import "time"

// UserRole is the server-stored role of a user. Capabilities are derived from
// the role on the server; they are never accepted from the client.
type UserRole string

const (
	// RoleEconome is the cashier/bursar: requests and executes movements.
	RoleEconome UserRole = "ECONOME"
	// RoleDirector authorizes or rejects pending requests.
	RoleDirector UserRole = "DIRECTOR"
	// RoleAdmin holds every capability.
	RoleAdmin UserRole = "ADMIN"
)

// Capability is a single permission within the approval workflow.
type Capability string

const (
	CanRequest   Capability = "CAN_REQUEST"
	CanAuthorize Capability = "CAN_AUTHORIZE"
	CanExecute   Capability = "CAN_EXECUTE"
)

// User represents an operator of the application.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasCapability reports whether the user's role grants the capability.
func (u User) HasCapability(cap Capability) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleEconome:
		return cap == CanRequest || cap == CanExecute
	case RoleDirector:
		return cap == CanAuthorize
	default:
		return false
	}
}
