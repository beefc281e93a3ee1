package domain

import "time"

// RefreshToken is one row of the refresh-token ledger. The opaque token
// value itself never touches the database; only its hash is stored.
// Tokens are single-use: a refresh revokes the presented token and issues a
// replacement, so a replayed token fails validation.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// Valid reports whether the token is usable at the given instant.
// A revoked token is never valid again.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
