package domain

// Role represents a permission label attached to a user account.
type Role string

const (
	// RoleUser grants standard user access. Every account carries it.
	RoleUser Role = "ROLE_USER"
	// RoleAdmin grants administrative access.
	RoleAdmin Role = "ROLE_ADMIN"
)

// User represents an authenticated user account in the system.
type User struct {
	Timestamps
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Roles        []Role `json:"roles"`
}

// DefaultRoles returns the role set assigned to newly registered users.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

// IsAdmin returns true if the user carries the admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// HasRole returns true if the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
