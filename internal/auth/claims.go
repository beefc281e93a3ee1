package auth

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the JWT claims carried by an access token.
// Subject holds the user ID; Username is included so handlers can log
// without a store round trip.
type AccessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
