package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// refreshTokenColumns must match the scan order in scanRefreshToken.
const refreshTokenColumns = `id, user_id, token_hash, expires_at, created_at, revoked`

// scanRefreshToken scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.RefreshToken.
func scanRefreshToken(scanner interface{ Scan(dest ...any) error }) (*domain.RefreshToken, error) {
	var t domain.RefreshToken

	var (
		expiresAt string
		createdAt string
		revoked   int
	)

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		&expiresAt,
		&createdAt,
		&revoked,
	)
	if err != nil {
		return nil, err
	}

	t.Revoked = revoked != 0

	t.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateRefreshToken inserts a new ledger row.
func (s *Store) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at, revoked)
		VALUES (?, ?, ?, ?, ?, ?)`,
		token.ID,
		token.UserID,
		token.TokenHash,
		formatTime(token.ExpiresAt),
		formatTime(token.CreatedAt),
		boolToInt(token.Revoked),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetRefreshTokenByHash looks up a currently valid token by hash.
// Revoked or expired rows return store.ErrNotFound, indistinguishable from
// tokens that never existed.
func (s *Store) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens
		 WHERE token_hash = ? AND revoked = 0 AND expires_at > ?`,
		tokenHash, formatTime(time.Now()))

	t, err := scanRefreshToken(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// RevokeRefreshToken marks a token revoked. Revoking an already-revoked or
// unknown token is a no-op; revocation is never undone.
func (s *Store) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE id = ?`, id)
	return err
}

// RevokeUserRefreshTokens revokes every unrevoked token belonging to the
// user. Idempotent.
func (s *Store) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE user_id = ? AND revoked = 0`, userID)
	return err
}

// DeleteExpiredRefreshTokens hard-deletes rows past expiry and returns the
// count removed. Pure maintenance; safe to run on any schedule.
func (s *Store) DeleteExpiredRefreshTokens(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, formatTime(time.Now()))
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
