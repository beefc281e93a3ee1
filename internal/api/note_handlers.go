package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes",
		Summary:     "List own notes",
		Description: "Returns the current user's notes across all access scopes",
		Tags:        []string{"Notes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "publicFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/feed",
		Summary:     "Public feed",
		Description: "Returns publicly visible notes from all authors; no authentication required",
		Tags:        []string{"Notes"},
	}, s.handlePublicFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "subscriberFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/feed/subscribers",
		Summary:     "Subscriber feed",
		Description: "Returns subscriber-scoped notes from authors the current user follows",
		Tags:        []string{"Notes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubscriberFeed)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createNote",
		Method:        http.MethodPost,
		Path:          "/api/v1/notes",
		Summary:       "Create note",
		Description:   "Creates a new note in one of the current user's domains",
		Tags:          []string{"Notes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNote",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Get note",
		Description: "Returns one of the current user's notes by ID",
		Tags:        []string{"Notes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPut,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Update note",
		Description: "Replaces a note's mutable fields including its tag set",
		Tags:        []string{"Notes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteNote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Delete note",
		Description: "Deletes a note",
		Tags:        []string{"Notes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteNote)
}

// === DTOs ===

// NoteRequest is the request body for creating or updating a note.
type NoteRequest struct {
	DomainID   string   `json:"domain_id" validate:"required" doc:"Owning domain ID"`
	Title      string   `json:"title" validate:"required,max=255" doc:"Note title"`
	Content    string   `json:"content" validate:"required" doc:"Note content"`
	AccessType string   `json:"access_type,omitempty" validate:"omitempty,oneof=public subscribers private" doc:"Visibility scope, defaults to public"`
	TagIDs     []string `json:"tag_ids,omitempty" doc:"Tag IDs to attach"`
}

// NoteResponse contains note data in API responses.
type NoteResponse struct {
	ID             string    `json:"id" doc:"Note ID"`
	DomainID       string    `json:"domain_id" doc:"Owning domain ID"`
	AuthorID       string    `json:"author_id" doc:"Author user ID"`
	AuthorUsername string    `json:"author_username" doc:"Author username"`
	Title          string    `json:"title" doc:"Note title"`
	Content        string    `json:"content" doc:"Note content"`
	AccessType     string    `json:"access_type" doc:"Visibility scope"`
	TagIDs         []string  `json:"tag_ids" doc:"Attached tag IDs"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time `json:"updated_at" doc:"Last update time"`
}

// NoteOutput wraps the note response for Huma.
type NoteOutput struct {
	Body NoteResponse
}

// CreateNoteInput wraps the create note request for Huma.
type CreateNoteInput struct {
	Body NoteRequest
}

// NoteIDInput contains the note ID path parameter.
type NoteIDInput struct {
	ID string `path:"id" doc:"Note ID"`
}

// UpdateNoteInput wraps the update note request for Huma.
type UpdateNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body NoteRequest
}

// ListNotesInput contains parameters for listing the user's own notes.
type ListNotesInput struct {
	PageInput
	DomainID   string    `query:"domain_id" doc:"Filter by domain"`
	AccessType string    `query:"access_type" doc:"Filter by visibility scope"`
	TagID      string    `query:"tag_id" doc:"Filter by tag"`
	Search     string    `query:"search" doc:"Substring match on title and content"`
	From       time.Time `query:"from" doc:"Only notes created at or after this time"`
	To         time.Time `query:"to" doc:"Only notes created at or before this time"`
}

// FeedInput contains parameters for the public and subscriber feeds.
type FeedInput struct {
	PageInput
	DomainID string    `query:"domain_id" doc:"Filter by domain"`
	AuthorID string    `query:"author_id" doc:"Filter by author"`
	TagID    string    `query:"tag_id" doc:"Filter by tag"`
	Search   string    `query:"search" doc:"Substring match on title and content"`
	From     time.Time `query:"from" doc:"Only notes created at or after this time"`
	To       time.Time `query:"to" doc:"Only notes created at or before this time"`
}

func (f *FeedInput) query() service.FeedQuery {
	return service.FeedQuery{
		Params:   f.params(),
		DomainID: f.DomainID,
		AuthorID: f.AuthorID,
		TagID:    f.TagID,
		Search:   f.Search,
		From:     timePtr(f.From),
		To:       timePtr(f.To),
	}
}

// ListNotesOutput wraps the note list for Huma.
type ListNotesOutput struct {
	Body PageResponse[NoteResponse]
}

// === Handlers ===

func (s *Server) handleListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Note.ListOwn(ctx, userID, service.ListNotesQuery{
		Params:     input.params(),
		DomainID:   input.DomainID,
		AccessType: input.AccessType,
		TagID:      input.TagID,
		Search:     input.Search,
		From:       timePtr(input.From),
		To:         timePtr(input.To),
	})
	if err != nil {
		return nil, err
	}
	return &ListNotesOutput{Body: mapPage(page, mapNoteResponse)}, nil
}

func (s *Server) handlePublicFeed(ctx context.Context, input *FeedInput) (*ListNotesOutput, error) {
	page, err := s.services.Note.PublicFeed(ctx, input.query())
	if err != nil {
		return nil, err
	}
	return &ListNotesOutput{Body: mapPage(page, mapNoteResponse)}, nil
}

func (s *Server) handleSubscriberFeed(ctx context.Context, input *FeedInput) (*ListNotesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Note.SubscriberFeed(ctx, userID, input.query())
	if err != nil {
		return nil, err
	}
	return &ListNotesOutput{Body: mapPage(page, mapNoteResponse)}, nil
}

func (s *Server) handleCreateNote(ctx context.Context, input *CreateNoteInput) (*NoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Note.Create(ctx, userID, service.CreateNoteRequest{
		DomainID:   input.Body.DomainID,
		Title:      input.Body.Title,
		Content:    input.Body.Content,
		AccessType: input.Body.AccessType,
		TagIDs:     input.Body.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: mapNoteResponse(n)}, nil
}

func (s *Server) handleGetNote(ctx context.Context, input *NoteIDInput) (*NoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Note.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: mapNoteResponse(n)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*NoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Note.Update(ctx, userID, input.ID, service.UpdateNoteRequest{
		DomainID:   input.Body.DomainID,
		Title:      input.Body.Title,
		Content:    input.Body.Content,
		AccessType: input.Body.AccessType,
		TagIDs:     input.Body.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: mapNoteResponse(n)}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *NoteIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Note.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Note deleted"}}, nil
}

// === Helpers ===

func mapNoteResponse(n *domain.Note) NoteResponse {
	tagIDs := n.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return NoteResponse{
		ID:             n.ID,
		DomainID:       n.DomainID,
		AuthorID:       n.UserID,
		AuthorUsername: n.AuthorUsername,
		Title:          n.Title,
		Content:        n.Content,
		AccessType:     string(n.AccessType),
		TagIDs:         tagIDs,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}
