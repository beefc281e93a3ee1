package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// TagService manages a user's private tag vocabulary. Tag names are unique
// per user and case sensitive.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// TagRequest contains tag data for create and update.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// Create makes a new tag in the user's vocabulary.
func (s *TagService) Create(ctx context.Context, userID string, req TagRequest) (*domain.Tag, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:     tagID,
		UserID: userID,
		Name:   req.Name,
	}
	tag.InitTimestamps()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("tag name already in use")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// Get fetches one of the user's tags. Foreign tags look like missing ones.
func (s *TagService) Get(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag.UserID != userID {
		return nil, domainerrors.NotFound("tag not found")
	}
	return tag, nil
}

// Update renames one of the user's tags.
func (s *TagService) Update(ctx context.Context, userID, tagID string, req TagRequest) (*domain.Tag, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.Get(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	tag.Name = req.Name
	tag.Touch()

	if err := s.store.UpdateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("tag name already in use")
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes one of the user's tags. Notes keep their other tags; the
// association rows are cleaned up by the store.
func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	if _, err := s.Get(ctx, userID, tagID); err != nil {
		return err
	}
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// List returns one page of the user's tags.
func (s *TagService) List(ctx context.Context, userID string, params store.PageParams) (*store.Page[*domain.Tag], error) {
	page, err := s.store.ListTags(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return page, nil
}
