package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeTestUser creates a domain.User with sensible defaults for testing.
func makeTestUser(id, username string) *domain.User {
	now := time.Now()
	return &domain.User{
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$test",
		Roles:        domain.DefaultRoles(),
	}
}

// mustCreateUser inserts a user or fails the test.
func mustCreateUser(t *testing.T, s *Store, id, username string) *domain.User {
	t.Helper()
	u := makeTestUser(id, username)
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser %s: %v", id, err)
	}
	return u
}

// mustCreateDomain inserts a domain or fails the test.
func mustCreateDomain(t *testing.T, s *Store, id, userID, name string) *domain.Domain {
	t.Helper()
	now := time.Now()
	d := &domain.Domain{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id,
		UserID:     userID,
		Name:       name,
	}
	if err := s.CreateDomain(context.Background(), d); err != nil {
		t.Fatalf("CreateDomain %s: %v", id, err)
	}
	return d
}

// mustCreateNote inserts a note or fails the test.
func mustCreateNote(t *testing.T, s *Store, id, userID, domainID string, access domain.AccessType) *domain.Note {
	t.Helper()
	now := time.Now()
	n := &domain.Note{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id,
		UserID:     userID,
		DomainID:   domainID,
		Title:      "note " + id,
		Content:    "content of " + id,
		AccessType: access,
	}
	if err := s.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("CreateNote %s: %v", id, err)
	}
	return n
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "domains", "notes", "tags", "note_tags",
		"subscriptions", "refresh_tokens",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustCreateUser(t, s, "user-1", "ada")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Schema re-run must be idempotent and data must survive.
	s, err = Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	u, err := s.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetUser after reopen: %v", err)
	}
	if u.Username != "ada" {
		t.Errorf("Username: got %q, want %q", u.Username, "ada")
	}
}
