package domain

import "github.com/google/uuid"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleAgent    = "agent"
	RoleClient   = "client"
)

// User is owned by the account system; this backend only reads it to resolve
// senders and notification recipients.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

// Caller is the resolved identity of the authenticated request.
type Caller struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (c *Caller) HasRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}
