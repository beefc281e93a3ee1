// Package main provides a tool to seed the database with test content.
//
// It creates a handful of users with domains, tags, and notes across all
// access scopes, plus a subscription graph, so feeds and listings have
// something to show during development.
//
// Usage:
//
//	DATABASE_PATH=~/Inkwell/data/inkwell.db go run ./cmd/seed
//	go run ./cmd/seed --notes-per-domain 20
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
)

var notesPerDomain = flag.Int("notes-per-domain", 8, "Number of notes to create in each domain")

// seedPassword is the password every seeded account gets.
const seedPassword = "password123"

var seedUsers = []struct {
	username string
	email    string
}{
	{"ada", "ada@example.com"},
	{"grace", "grace@example.com"},
	{"edsger", "edsger@example.com"},
	{"barbara", "barbara@example.com"},
}

var domainNames = []string{"Programming", "Cooking", "Travel Notes"}

var tagNames = []string{"ideas", "drafts", "reference", "favorites"}

var accessTypes = []domain.AccessType{
	domain.AccessPublic,
	domain.AccessPublic,
	domain.AccessSubscribers,
	domain.AccessPrivate,
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Inkwell", "data", "inkwell.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	users := createUsers(ctx, s)
	for _, u := range users {
		seedContent(ctx, s, u)
	}
	createSubscriptions(ctx, s, users)

	fmt.Println("Done. All seeded accounts use the password:", seedPassword)
}

func createUsers(ctx context.Context, s *sqlite.Store) []*domain.User {
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		if existing, err := s.GetUserByUsername(ctx, su.username); err == nil {
			fmt.Printf("User %s already exists, reusing\n", su.username)
			users = append(users, existing)
			continue
		}

		u := &domain.User{
			ID:           id.MustGenerate("user"),
			Username:     su.username,
			Email:        su.email,
			PasswordHash: hash,
			Roles:        domain.DefaultRoles(),
		}
		u.InitTimestamps()
		if err := s.CreateUser(ctx, u); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.username, err)
		}
		fmt.Printf("Created user %s (%s)\n", u.Username, u.ID)
		users = append(users, u)
	}
	return users
}

func seedContent(ctx context.Context, s *sqlite.Store, u *domain.User) {
	tagIDs := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		tag := &domain.Tag{
			ID:     id.MustGenerate("tag"),
			UserID: u.ID,
			Name:   name,
		}
		tag.InitTimestamps()
		if err := s.CreateTag(ctx, tag); err != nil {
			log.Printf("Skipping tag %s for %s: %v", name, u.Username, err)
			continue
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	for i, name := range domainNames {
		d := &domain.Domain{
			ID:          id.MustGenerate("dom"),
			UserID:      u.ID,
			Name:        name,
			Description: fmt.Sprintf("%s's notes on %s", u.Username, name),
			IsPublic:    i%2 == 0,
		}
		d.InitTimestamps()
		if err := s.CreateDomain(ctx, d); err != nil {
			log.Fatalf("Failed to create domain %s for %s: %v", name, u.Username, err)
		}

		for n := 0; n < *notesPerDomain; n++ {
			note := &domain.Note{
				ID:         id.MustGenerate("note"),
				UserID:     u.ID,
				DomainID:   d.ID,
				Title:      fmt.Sprintf("%s entry %d", name, n+1),
				Content:    fmt.Sprintf("Notes by %s about %s, entry number %d.", u.Username, name, n+1),
				AccessType: accessTypes[rand.Intn(len(accessTypes))],
				TagIDs:     pickTags(tagIDs),
			}
			note.InitTimestamps()
			if err := s.CreateNote(ctx, note); err != nil {
				log.Fatalf("Failed to create note in %s: %v", name, err)
			}
		}
		fmt.Printf("  %s: domain %q with %d notes\n", u.Username, name, *notesPerDomain)
	}
}

// pickTags returns a random subset of the user's tags, possibly empty.
func pickTags(tagIDs []string) []string {
	if len(tagIDs) == 0 {
		return nil
	}
	count := rand.Intn(len(tagIDs) + 1)
	picked := make([]string, 0, count)
	for _, idx := range rand.Perm(len(tagIDs))[:count] {
		picked = append(picked, tagIDs[idx])
	}
	return picked
}

// createSubscriptions makes every seeded user follow the next one, so
// subscriber feeds are non-empty for each account.
func createSubscriptions(ctx context.Context, s *sqlite.Store, users []*domain.User) {
	for i, u := range users {
		author := users[(i+1)%len(users)]
		if author.ID == u.ID {
			continue
		}
		sub := &domain.Subscription{
			SubscriberID: u.ID,
			AuthorID:     author.ID,
			CreatedAt:    time.Now(),
		}
		if err := s.CreateSubscription(ctx, sub); err != nil {
			log.Printf("Skipping subscription %s -> %s: %v", u.Username, author.Username, err)
			continue
		}
		fmt.Printf("%s now follows %s\n", u.Username, author.Username)
	}
}
