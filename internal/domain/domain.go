// Package domain defines the core entities of the Inkwell server: users,
// domains (per-user subject areas), notes, tags, subscriptions, and refresh
// tokens. Entities carry no persistence logic; the store layer owns that.
package domain

// Domain is a per-user named subject area that notes belong to.
// Deleting a domain deletes every note in it.
type Domain struct {
	Timestamps
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// Limits enforced on domain fields at the service boundary.
const (
	DomainNameMaxLen        = 100
	DomainDescriptionMaxLen = 1000
)
