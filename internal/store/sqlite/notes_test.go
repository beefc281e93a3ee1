package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// mustCreateTag inserts a tag or fails the test.
func mustCreateTag(t *testing.T, s *Store, id, userID, name string) *domain.Tag {
	t.Helper()
	now := time.Now()
	tag := &domain.Tag{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id,
		UserID:     userID,
		Name:       name,
	}
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag %s: %v", id, err)
	}
	return tag
}

// mustSubscribe creates a follower edge or fails the test.
func mustSubscribe(t *testing.T, s *Store, subscriberID, authorID string) {
	t.Helper()
	err := s.CreateSubscription(context.Background(), &domain.Subscription{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateSubscription %s -> %s: %v", subscriberID, authorID, err)
	}
}

func TestCreateAndGetNote_WithTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateTag(t, s, "tag-1", "user-1", "grammar")
	mustCreateTag(t, s, "tag-2", "user-1", "verbs")

	now := time.Now()
	note := &domain.Note{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         "note-1",
		UserID:     "user-1",
		DomainID:   "dom-1",
		Title:      "Irregular verbs",
		Content:    "ser, estar, ir",
		AccessType: domain.AccessPublic,
		TagIDs:     []string{"tag-1", "tag-2"},
	}
	if err := s.CreateNote(ctx, note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	got, err := s.GetNote(ctx, "note-1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Irregular verbs" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.AccessType != domain.AccessPublic {
		t.Errorf("AccessType: got %q", got.AccessType)
	}
	if got.AuthorUsername != "ada" {
		t.Errorf("AuthorUsername: got %q, want %q", got.AuthorUsername, "ada")
	}
	if len(got.TagIDs) != 2 {
		t.Fatalf("TagIDs: got %v, want 2 ids", got.TagIDs)
	}
	// Tag IDs are ordered by tag name (grammar before verbs).
	if got.TagIDs[0] != "tag-1" || got.TagIDs[1] != "tag-2" {
		t.Errorf("TagIDs: got %v", got.TagIDs)
	}
}

func TestGetNote_NoTags(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)

	got, err := s.GetNote(context.Background(), "note-1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.TagIDs == nil {
		t.Error("TagIDs: got nil, want empty slice")
	}
	if len(got.TagIDs) != 0 {
		t.Errorf("TagIDs: got %v, want empty", got.TagIDs)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetNote(context.Background(), "note-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateNote_ReplacesTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateTag(t, s, "tag-1", "user-1", "grammar")
	mustCreateTag(t, s, "tag-2", "user-1", "verbs")

	note := mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	note.TagIDs = []string{"tag-1"}
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	note.TagIDs = []string{"tag-2"}
	note.Title = "Renamed"
	note.AccessType = domain.AccessPrivate
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote second: %v", err)
	}

	got, err := s.GetNote(ctx, "note-1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.AccessType != domain.AccessPrivate {
		t.Errorf("AccessType: got %q", got.AccessType)
	}
	if len(got.TagIDs) != 1 || got.TagIDs[0] != "tag-2" {
		t.Errorf("TagIDs: got %v, want [tag-2]", got.TagIDs)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	s := newTestStore(t)

	note := &domain.Note{ID: "note-missing", AccessType: domain.AccessPublic}
	err := s.UpdateNote(context.Background(), note)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNote_LeavesTagsAndDomain(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateTag(t, s, "tag-1", "user-1", "grammar")

	note := mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	note.TagIDs = []string{"tag-1"}
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	if err := s.DeleteNote(ctx, "note-1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	if _, err := s.GetNote(ctx, "note-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("note still present: %v", err)
	}
	if _, err := s.GetTag(ctx, "tag-1"); err != nil {
		t.Errorf("tag should survive note delete: %v", err)
	}
	if _, err := s.GetDomain(ctx, "dom-1"); err != nil {
		t.Errorf("domain should survive note delete: %v", err)
	}
}

func TestDeleteTag_LeavesNotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateTag(t, s, "tag-1", "user-1", "grammar")

	note := mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	note.TagIDs = []string{"tag-1"}
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	if err := s.DeleteTag(ctx, "tag-1"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	got, err := s.GetNote(ctx, "note-1")
	if err != nil {
		t.Fatalf("note should survive tag delete: %v", err)
	}
	if len(got.TagIDs) != 0 {
		t.Errorf("association should be gone: got %v", got.TagIDs)
	}
}

func TestListNotes_OwnScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateUser(t, s, "user-2", "grace")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateDomain(t, s, "dom-2", "user-2", "Cooking")

	mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	mustCreateNote(t, s, "note-2", "user-1", "dom-1", domain.AccessPrivate)
	mustCreateNote(t, s, "note-3", "user-1", "dom-1", domain.AccessSubscribers)
	mustCreateNote(t, s, "note-other", "user-2", "dom-2", domain.AccessPublic)

	page, err := s.ListNotes(ctx, store.NoteQuery{Scope: store.ScopeOwn, ViewerID: "user-1"})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	// Own scope sees every access type, but only the viewer's notes.
	if page.Total != 3 {
		t.Errorf("Total: got %d, want 3", page.Total)
	}
	for _, n := range page.Items {
		if n.UserID != "user-1" {
			t.Errorf("foreign note leaked into own scope: %s", n.ID)
		}
	}
}

func TestListNotes_OwnScope_AccessTypeFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	mustCreateNote(t, s, "note-2", "user-1", "dom-1", domain.AccessPrivate)

	page, err := s.ListNotes(ctx, store.NoteQuery{
		Scope:    store.ScopeOwn,
		ViewerID: "user-1",
		Filters:  store.Filter{"access_type": "private"},
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "note-2" {
		t.Errorf("access_type filter: got %v", page.Items)
	}
}

func TestListNotes_PublicScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateUser(t, s, "user-2", "grace")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateDomain(t, s, "dom-2", "user-2", "Cooking")

	mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	mustCreateNote(t, s, "note-2", "user-1", "dom-1", domain.AccessPrivate)
	mustCreateNote(t, s, "note-3", "user-2", "dom-2", domain.AccessPublic)
	mustCreateNote(t, s, "note-4", "user-2", "dom-2", domain.AccessSubscribers)

	// Anonymous read: no viewer required.
	page, err := s.ListNotes(ctx, store.NoteQuery{Scope: store.ScopePublic})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("Total: got %d, want 2", page.Total)
	}
	for _, n := range page.Items {
		if n.AccessType != domain.AccessPublic {
			t.Errorf("non-public note leaked into public feed: %s", n.ID)
		}
	}
}

func TestListNotes_PublicScope_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")

	now := time.Now()
	note := &domain.Note{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         "note-1",
		UserID:     "user-1",
		DomainID:   "dom-1",
		Title:      "Verbs",
		Content:    "conjugation drills",
		AccessType: domain.AccessPublic,
	}
	if err := s.CreateNote(ctx, note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	mustCreateNote(t, s, "note-2", "user-1", "dom-1", domain.AccessPublic)

	// Matches title.
	page, err := s.ListNotes(ctx, store.NoteQuery{
		Scope:   store.ScopePublic,
		Filters: store.Filter{"search": "Verb"},
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "note-1" {
		t.Errorf("title search: got %v", page.Items)
	}

	// Matches content.
	page, err = s.ListNotes(ctx, store.NoteQuery{
		Scope:   store.ScopePublic,
		Filters: store.Filter{"search": "conjugation"},
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "note-1" {
		t.Errorf("content search: got %v", page.Items)
	}
}

func TestListNotes_SubscribersScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-author", "ada")
	mustCreateUser(t, s, "user-fan", "grace")
	mustCreateUser(t, s, "user-stranger", "linus")
	mustCreateDomain(t, s, "dom-1", "user-author", "Spanish")

	mustCreateNote(t, s, "note-sub", "user-author", "dom-1", domain.AccessSubscribers)
	mustCreateNote(t, s, "note-pub", "user-author", "dom-1", domain.AccessPublic)

	mustSubscribe(t, s, "user-fan", "user-author")

	// The follower sees the subscribers-only note.
	page, err := s.ListNotes(ctx, store.NoteQuery{Scope: store.ScopeSubscribers, ViewerID: "user-fan"})
	if err != nil {
		t.Fatalf("ListNotes fan: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "note-sub" {
		t.Errorf("fan feed: got %v", page.Items)
	}

	// A non-follower sees nothing.
	page, err = s.ListNotes(ctx, store.NoteQuery{Scope: store.ScopeSubscribers, ViewerID: "user-stranger"})
	if err != nil {
		t.Fatalf("ListNotes stranger: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("stranger feed should be empty: got %v", page.Items)
	}
}

func TestListNotes_TagFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")
	mustCreateTag(t, s, "tag-1", "user-1", "grammar")

	note := mustCreateNote(t, s, "note-1", "user-1", "dom-1", domain.AccessPublic)
	note.TagIDs = []string{"tag-1"}
	note.Touch()
	if err := s.UpdateNote(ctx, note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	mustCreateNote(t, s, "note-2", "user-1", "dom-1", domain.AccessPublic)

	page, err := s.ListNotes(ctx, store.NoteQuery{
		Scope:   store.ScopePublic,
		Filters: store.Filter{"tag_id": "tag-1"},
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "note-1" {
		t.Errorf("tag filter: got %v", page.Items)
	}
}

func TestListNotes_PaginationIsExhaustive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")

	// Identical timestamps force the id tie-break to do the ordering.
	now := time.Now()
	const total = 7
	for i := range total {
		note := &domain.Note{
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
			ID:         fmt.Sprintf("note-%d", i),
			UserID:     "user-1",
			DomainID:   "dom-1",
			Title:      "same",
			Content:    "same",
			AccessType: domain.AccessPublic,
		}
		if err := s.CreateNote(ctx, note); err != nil {
			t.Fatalf("CreateNote %d: %v", i, err)
		}
	}

	seen := make(map[string]bool)
	for pageNum := 1; pageNum <= 3; pageNum++ {
		page, err := s.ListNotes(ctx, store.NoteQuery{
			Scope:  store.ScopePublic,
			Params: store.PageParams{Page: pageNum, Limit: 3},
		})
		if err != nil {
			t.Fatalf("ListNotes page %d: %v", pageNum, err)
		}
		if page.Total != total {
			t.Errorf("page %d Total: got %d, want %d", pageNum, page.Total, total)
		}
		if page.TotalPages != 3 {
			t.Errorf("page %d TotalPages: got %d, want 3", pageNum, page.TotalPages)
		}
		for _, n := range page.Items {
			if seen[n.ID] {
				t.Errorf("note %s appeared on multiple pages", n.ID)
			}
			seen[n.ID] = true
		}
	}
	if len(seen) != total {
		t.Errorf("concatenated pages: got %d distinct notes, want %d", len(seen), total)
	}
}

func TestListNotes_SortByTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "ada")
	mustCreateDomain(t, s, "dom-1", "user-1", "Spanish")

	titles := []string{"banana", "apple", "cherry"}
	for i, title := range titles {
		now := time.Now()
		note := &domain.Note{
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
			ID:         fmt.Sprintf("note-%d", i),
			UserID:     "user-1",
			DomainID:   "dom-1",
			Title:      title,
			Content:    "c",
			AccessType: domain.AccessPublic,
		}
		if err := s.CreateNote(ctx, note); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	page, err := s.ListNotes(ctx, store.NoteQuery{
		Scope:  store.ScopePublic,
		Params: store.PageParams{Sort: "title"},
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	want := []string{"apple", "banana", "cherry"}
	for i, n := range page.Items {
		if n.Title != want[i] {
			t.Errorf("position %d: got %q, want %q", i, n.Title, want[i])
		}
	}

	// Descending.
	page, err = s.ListNotes(ctx, store.NoteQuery{
		Scope:  store.ScopePublic,
		Params: store.PageParams{Sort: "-title"},
	})
	if err != nil {
		t.Fatalf("ListNotes desc: %v", err)
	}
	if page.Items[0].Title != "cherry" {
		t.Errorf("descending first: got %q, want cherry", page.Items[0].Title)
	}
}
