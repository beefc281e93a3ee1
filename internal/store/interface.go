// Package store defines the persistence interface for the Inkwell server.
package store

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// NoteScope selects the visibility predicate applied when listing notes.
type NoteScope string

const (
	// ScopeOwn lists every note authored by the viewer.
	ScopeOwn NoteScope = "own"
	// ScopePublic lists public notes across all authors.
	ScopePublic NoteScope = "public"
	// ScopeSubscribers lists subscriber-scoped notes from authors the
	// viewer follows.
	ScopeSubscribers NoteScope = "subscribers"
)

// NoteQuery describes a note listing request.
type NoteQuery struct {
	Scope    NoteScope
	ViewerID string // Empty for anonymous public-feed reads
	Params   PageParams
	Filters  Filter
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Domains
	CreateDomain(ctx context.Context, d *domain.Domain) error
	GetDomain(ctx context.Context, id string) (*domain.Domain, error)
	UpdateDomain(ctx context.Context, d *domain.Domain) error
	DeleteDomain(ctx context.Context, id string) error
	ListDomains(ctx context.Context, userID string, params PageParams, filters Filter) (*Page[*domain.Domain], error)

	// Notes
	CreateNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	UpdateNote(ctx context.Context, note *domain.Note) error
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, q NoteQuery) (*Page[*domain.Note], error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context, userID string, params PageParams) (*Page[*domain.Tag], error)

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, authorID string) error
	SubscriptionExists(ctx context.Context, subscriberID, authorID string) (bool, error)
	ListSubscribedAuthors(ctx context.Context, subscriberID string, params PageParams) (*Page[*domain.User], error)
	ListSubscribers(ctx context.Context, authorID string, params PageParams) (*Page[*domain.User], error)

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int, error)
}
