package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
)

// newTestStore opens a throwaway SQLite store for a single test.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestTokenService creates a token service with short-lived tokens.
func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	key := []byte("0123456789abcdef0123456789abcdef")
	ts, err := auth.NewTokenService(key, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)
	return ts
}

func createTestUser(t *testing.T, s store.Store, id, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Roles:        domain.DefaultRoles(),
	}
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestDomain(t *testing.T, s store.Store, id, userID, name string) *domain.Domain {
	t.Helper()

	d := &domain.Domain{
		ID:     id,
		UserID: userID,
		Name:   name,
	}
	d.InitTimestamps()
	require.NoError(t, s.CreateDomain(context.Background(), d))
	return d
}

func createTestTag(t *testing.T, s store.Store, id, userID, name string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:     id,
		UserID: userID,
		Name:   name,
	}
	tag.InitTimestamps()
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}
