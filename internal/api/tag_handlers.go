package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the current user's tags",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Renames a tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag; notes keep their other tags",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagRequest is the request body for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=50" doc:"Tag name"`
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body TagRequest
}

// TagIDInput contains the tag ID path parameter.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body TagRequest
}

// ListTagsInput contains parameters for listing tags.
type ListTagsInput struct {
	PageInput
}

// ListTagsOutput wraps the tag list for Huma.
type ListTagsOutput struct {
	Body PageResponse[TagResponse]
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Tag.List(ctx, userID, input.params())
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: mapPage(page, mapTagResponse)}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Create(ctx, userID, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: mapTagResponse(tag)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: mapTagResponse(tag)}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Update(ctx, userID, input.ID, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: mapTagResponse(tag)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}

// === Helpers ===

func mapTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}
