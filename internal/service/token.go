package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// TokenLedger manages the refresh-token lifecycle: issuance, validity
// lookup, revocation and expiry cleanup. Tokens are opaque random values;
// only their hash is persisted.
type TokenLedger struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewTokenLedger creates a new refresh-token ledger service.
func NewTokenLedger(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *TokenLedger {
	return &TokenLedger{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// ExpirationWindow returns the fixed validity window applied to new tokens.
func (l *TokenLedger) ExpirationWindow() time.Duration {
	return l.tokenService.RefreshTokenDuration()
}

// Issue creates and persists a fresh refresh token for the user. Multiple
// valid tokens may coexist per user (one per device). Returns the opaque
// token value to hand to the client alongside the ledger row.
func (l *TokenLedger) Issue(ctx context.Context, user *domain.User) (string, *domain.RefreshToken, error) {
	opaque, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	tokenID, err := id.Generate("rt")
	if err != nil {
		return "", nil, fmt.Errorf("generate token ID: %w", err)
	}

	now := time.Now()
	token := &domain.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		TokenHash: auth.HashRefreshToken(opaque),
		ExpiresAt: now.Add(l.ExpirationWindow()),
		CreatedAt: now,
	}

	if err := l.store.CreateRefreshToken(ctx, token); err != nil {
		return "", nil, fmt.Errorf("save refresh token: %w", err)
	}

	return opaque, token, nil
}

// FindValid resolves an opaque token to its ledger row if it is currently
// valid. Revoked, expired, and unknown tokens are indistinguishable: all
// return a token-expired error, so callers never learn which tokens ever
// existed.
func (l *TokenLedger) FindValid(ctx context.Context, opaque string) (*domain.RefreshToken, error) {
	token, err := l.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(opaque))
	if err != nil {
		return nil, domainerrors.TokenExpired("invalid or expired refresh token").WithCause(err)
	}
	return token, nil
}

// Revoke marks a ledger row revoked. Idempotent; a revoked token is never
// revalidated.
func (l *TokenLedger) Revoke(ctx context.Context, tokenID string) error {
	if err := l.store.RevokeRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll revokes every currently valid token belonging to the user
// (log out everywhere). Idempotent.
func (l *TokenLedger) RevokeAll(ctx context.Context, userID string) error {
	if err := l.store.RevokeUserRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}

// PurgeExpired hard-deletes ledger rows past expiry and returns the count
// removed. Pure maintenance; safe on any schedule.
func (l *TokenLedger) PurgeExpired(ctx context.Context) (int, error) {
	count, err := l.store.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired refresh tokens: %w", err)
	}
	if count > 0 && l.logger != nil {
		l.logger.Info("Purged expired refresh tokens", "count", count)
	}
	return count, nil
}
