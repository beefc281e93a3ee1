package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// NoteService manages notes and composes the public and subscriber feeds.
type NoteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// CreateNoteRequest contains new-note data.
type CreateNoteRequest struct {
	DomainID   string   `json:"domain_id" validate:"required"`
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	AccessType string   `json:"access_type" validate:"omitempty,oneof=public subscribers private"`
	TagIDs     []string `json:"tag_ids"`
}

// UpdateNoteRequest contains updated note data.
type UpdateNoteRequest struct {
	DomainID   string   `json:"domain_id" validate:"required"`
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	AccessType string   `json:"access_type" validate:"omitempty,oneof=public subscribers private"`
	TagIDs     []string `json:"tag_ids"`
}

// ListNotesQuery carries the list parameters for the owner's note listing.
type ListNotesQuery struct {
	Params     store.PageParams
	DomainID   string
	AccessType string
	TagID      string
	Search     string
	From       *time.Time
	To         *time.Time
}

// FeedQuery carries the list parameters for the public and subscriber feeds.
type FeedQuery struct {
	Params   store.PageParams
	DomainID string
	AuthorID string
	TagID    string
	Search   string
	From     *time.Time
	To       *time.Time
}

// ownDomain resolves a domain and confirms the user owns it. Domains that
// exist but belong to someone else look exactly like missing ones.
func (s *NoteService) ownDomain(ctx context.Context, userID, domainID string) error {
	d, err := s.store.GetDomain(ctx, domainID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("domain not found")
		}
		return fmt.Errorf("get domain: %w", err)
	}
	if d.UserID != userID {
		return domainerrors.NotFound("domain not found")
	}
	return nil
}

// ownTagIDs filters the requested tag IDs down to tags the user actually
// owns, preserving order and dropping duplicates. Unknown and foreign tag
// IDs are silently discarded.
func (s *NoteService) ownTagIDs(ctx context.Context, userID string, tagIDs []string) ([]string, error) {
	owned := make([]string, 0, len(tagIDs))
	seen := make(map[string]bool, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		tag, err := s.store.GetTag(ctx, tagID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get tag: %w", err)
		}
		if tag.UserID != userID {
			continue
		}
		owned = append(owned, tagID)
	}
	return owned, nil
}

// Create makes a new note in one of the user's domains.
func (s *NoteService) Create(ctx context.Context, userID string, req CreateNoteRequest) (*domain.Note, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if err := s.ownDomain(ctx, userID, req.DomainID); err != nil {
		return nil, err
	}

	tagIDs, err := s.ownTagIDs(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	accessType := domain.AccessType(req.AccessType)
	if accessType == "" {
		accessType = domain.AccessPublic
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	n := &domain.Note{
		ID:         noteID,
		UserID:     userID,
		DomainID:   req.DomainID,
		Title:      req.Title,
		Content:    req.Content,
		AccessType: accessType,
		TagIDs:     tagIDs,
	}
	n.InitTimestamps()

	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return s.Get(ctx, userID, n.ID)
}

// Get fetches one of the user's own notes. Single-note reads are owner
// only; other users reach notes through the feeds.
func (s *NoteService) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	n, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("note not found")
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	if n.UserID != userID {
		return nil, domainerrors.NotFound("note not found")
	}
	return n, nil
}

// Update replaces the mutable fields of one of the user's notes, including
// its tag set.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, req UpdateNoteRequest) (*domain.Note, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	n, err := s.Get(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.DomainID != n.DomainID {
		if err := s.ownDomain(ctx, userID, req.DomainID); err != nil {
			return nil, err
		}
	}

	tagIDs, err := s.ownTagIDs(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	accessType := domain.AccessType(req.AccessType)
	if accessType == "" {
		accessType = domain.AccessPublic
	}

	n.DomainID = req.DomainID
	n.Title = req.Title
	n.Content = req.Content
	n.AccessType = accessType
	n.TagIDs = tagIDs
	n.Touch()

	if err := s.store.UpdateNote(ctx, n); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.Get(ctx, userID, noteID)
}

// Delete removes one of the user's notes.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ListOwn returns one page of the user's own notes across all access
// scopes.
func (s *NoteService) ListOwn(ctx context.Context, userID string, q ListNotesQuery) (*store.Page[*domain.Note], error) {
	filters := store.Filter{}
	if q.DomainID != "" {
		filters["domain_id"] = q.DomainID
	}
	if q.AccessType != "" {
		if !domain.AccessType(q.AccessType).IsValid() {
			return nil, domainerrors.Validation("invalid access type")
		}
		filters["access_type"] = q.AccessType
	}
	if q.TagID != "" {
		filters["tag_id"] = q.TagID
	}
	if q.Search != "" {
		filters["search"] = q.Search
	}
	addTimeRange(filters, q.From, q.To)

	page, err := s.store.ListNotes(ctx, store.NoteQuery{
		Scope:    store.ScopeOwn,
		ViewerID: userID,
		Params:   q.Params,
		Filters:  filters,
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return page, nil
}

// PublicFeed returns one page of publicly visible notes from every author.
// No authentication is required.
func (s *NoteService) PublicFeed(ctx context.Context, q FeedQuery) (*store.Page[*domain.Note], error) {
	page, err := s.store.ListNotes(ctx, store.NoteQuery{
		Scope:   store.ScopePublic,
		Params:  q.Params,
		Filters: feedFilters(q),
	})
	if err != nil {
		return nil, fmt.Errorf("list public feed: %w", err)
	}
	return page, nil
}

// SubscriberFeed returns one page of subscriber-scoped notes written by
// authors the viewer subscribes to.
func (s *NoteService) SubscriberFeed(ctx context.Context, viewerID string, q FeedQuery) (*store.Page[*domain.Note], error) {
	page, err := s.store.ListNotes(ctx, store.NoteQuery{
		Scope:    store.ScopeSubscribers,
		ViewerID: viewerID,
		Params:   q.Params,
		Filters:  feedFilters(q),
	})
	if err != nil {
		return nil, fmt.Errorf("list subscriber feed: %w", err)
	}
	return page, nil
}

func feedFilters(q FeedQuery) store.Filter {
	filters := store.Filter{}
	if q.DomainID != "" {
		filters["domain_id"] = q.DomainID
	}
	if q.AuthorID != "" {
		filters["author_id"] = q.AuthorID
	}
	if q.TagID != "" {
		filters["tag_id"] = q.TagID
	}
	if q.Search != "" {
		filters["search"] = q.Search
	}
	addTimeRange(filters, q.From, q.To)
	return filters
}

func addTimeRange(filters store.Filter, from, to *time.Time) {
	if from != nil {
		filters["from_date"] = *from
	}
	if to != nil {
		filters["to_date"] = *to
	}
}
