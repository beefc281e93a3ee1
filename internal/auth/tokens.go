package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
)

const (
	tokenIssuer   = "inkwell-server"
	tokenAudience = "inkwell-api"

	// Refresh tokens are 32 bytes of entropy, delivered base64url-encoded.
	refreshTokenBytes = 32
)

// TokenService issues and verifies access tokens, and generates the opaque
// refresh tokens tracked by the ledger.
type TokenService struct {
	signingKey      []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewTokenService creates a token service with the given HMAC signing key.
func NewTokenService(signingKey []byte, accessDuration, refreshDuration time.Duration) (*TokenService, error) {
	if len(signingKey) < 32 {
		return nil, fmt.Errorf("signing key must be at least 32 bytes, got %d", len(signingKey))
	}
	if accessDuration <= 0 || refreshDuration <= 0 {
		return nil, fmt.Errorf("token durations must be positive")
	}
	return &TokenService{
		signingKey:      signingKey,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}, nil
}

// AccessTokenDuration returns the lifetime of issued access tokens.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessDuration
}

// RefreshTokenDuration returns the lifetime of issued refresh tokens.
func (s *TokenService) RefreshTokenDuration() time.Duration {
	return s.refreshDuration
}

// GenerateAccessToken creates a signed JWT for the user.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   user.ID,
			ID:        id.MustGenerate("jti"),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken parses and validates a JWT, returning its claims.
// Expired tokens return errors.ErrTokenExpired; anything else invalid
// returns errors.ErrUnauthorized.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.TokenExpired("access token expired")
		}
		return nil, errors.Unauthorized("invalid access token")
	}
	if claims.Subject == "" {
		return nil, errors.Unauthorized("invalid access token")
	}
	return claims, nil
}

// GenerateRefreshToken creates a cryptographically random opaque token.
// The returned string is what the client holds; store only its hash.
func GenerateRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashRefreshToken returns the hex-encoded SHA-256 of a refresh token,
// the form in which tokens are persisted and looked up.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
